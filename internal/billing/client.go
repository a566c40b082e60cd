package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/nagoyameshi/go-api-server/internal/config"
	"github.com/stripe/stripe-go/v76"
	"gorm.io/gorm"
)

var (
	ErrNoSubscription        = errors.New("billing: no active subscription")
	ErrUnknownPlan           = errors.New("billing: unknown plan")
	ErrPaymentMethodRequired = errors.New("billing: payment method required")
	ErrUnknownCustomer       = errors.New("billing: unknown customer")
)

// Customer is what the collaborator needs to open a customer record.
// ProviderID is set once the customer exists on the billing side.
type Customer struct {
	MemberID   uint32
	Email      string
	Name       string
	ProviderID string
}

// Client is the external billing collaborator. Every call is live: nothing
// here is cached, so the answer always reflects the provider's current state.
type Client interface {
	EnsureCustomer(ctx context.Context, customer Customer) (string, error)
	CreateSetupIntent(ctx context.Context, customerID string) (string, error)
	IsSubscribed(ctx context.Context, customerID, plan string) (bool, error)
	Subscribe(ctx context.Context, customerID, plan, paymentMethodID string) error
	UpdateDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error
	CancelSubscription(ctx context.Context, customerID, plan string) error
}

// New builds the client selected by BILLING_DRIVER.
func New(cfg *config.Config, db *gorm.DB) (Client, error) {
	switch cfg.Billing.Driver {
	case config.BillingStripe:
		prices := map[string]string{cfg.Billing.PlanName: cfg.Billing.PremiumPriceID}
		return NewStripeClient(cfg.Billing.SecretKey, prices, nil), nil
	case config.BillingLocal:
		return NewLocalClient(db), nil
	default:
		return nil, fmt.Errorf("지원하지 않는 billing 드라이버: %s", cfg.Billing.Driver)
	}
}

// Backends builds stripe backends pointing at url. Used to aim the client at a
// stripe-mock or a test server.
func Backends(url string) *stripe.Backends {
	backendConfig := &stripe.BackendConfig{
		URL:               stripe.String(url),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig)
	return &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	}
}
