package services

import (
	"errors"
	"math"
	"strings"

	"github.com/foodhubapp/foodhub/models"
	"gorm.io/gorm"
)

const (
	// GSTRate is applied to the invoice subtotal.
	GSTRate = 0.05
	// DeliveryCharge applies to orders below FreeDeliveryThreshold.
	DeliveryCharge        = 40.0
	FreeDeliveryThreshold = 500.0
)

// InvoiceTotals breaks a subtotal down into the amounts printed on the
// invoice.
type InvoiceTotals struct {
	Subtotal float64
	GST      float64
	Delivery float64
	Final    float64
}

// CalculateInvoice computes GST (5%, rounded to paise), the delivery charge
// and the final amount for a subtotal.
func CalculateInvoice(subtotal float64) InvoiceTotals {
	gst := math.Round(subtotal*GSTRate*100) / 100

	delivery := 0.0
	if subtotal < FreeDeliveryThreshold {
		delivery = DeliveryCharge
	}

	return InvoiceTotals{
		Subtotal: subtotal,
		GST:      gst,
		Delivery: delivery,
		Final:    subtotal + gst + delivery,
	}
}

type BillingService struct {
	DB *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{DB: db}
}

// ApplyCoupon resolves a coupon code against the coupons table and returns
// the discounted total, clamped at zero. Unknown codes return
// ErrInvalidCoupon with the total unchanged. Nothing is persisted.
func (s *BillingService) ApplyCoupon(total float64, code string) (finalTotal, discount float64, err error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return total, 0, ErrInvalidCoupon
	}

	var coupon models.Coupon
	if err := s.DB.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return total, 0, ErrInvalidCoupon
		}
		return total, 0, err
	}

	discount = float64(coupon.Discount)
	finalTotal = math.Max(total-discount, 0)
	return finalTotal, discount, nil
}
