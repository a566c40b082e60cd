package subscription

import "github.com/nagoyameshi/go-api-server/internal/shared/handler"

type PaymentMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id" form:"payment_method_id" binding:"required,max=255"`
}

type IntentResponse struct {
	ClientSecret string `json:"client_secret"`
	Plan         string `json:"plan"`
	handler.Flash
}
