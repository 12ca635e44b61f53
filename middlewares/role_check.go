package middlewares

import (
	"errors"
	"net/http"

	"github.com/foodhubapp/foodhub/models"
	"github.com/foodhubapp/foodhub/utils"
	"github.com/gin-gonic/gin"
)

// RequireAdmin allows restaurant_admin and super_admin roles through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != models.RoleRestaurantAdmin && role != models.RoleSuperAdmin {
			utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin restricts a route to super admins.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleSuperAdmin {
			utils.RespondError(c, http.StatusForbidden, errors.New("super admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
