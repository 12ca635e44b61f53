package controllers

import (
	"errors"
	"net/http"

	"github.com/foodhubapp/foodhub/services"
	"github.com/gin-gonic/gin"
)

// currentUserID reads the authenticated user ID placed in the context by the
// auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// statusForError maps service sentinel errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidCoupon):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrDuplicateReview):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
