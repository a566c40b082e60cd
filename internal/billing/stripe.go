package billing

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// metadataPlanKey tags a stripe subscription with the local plan name.
const metadataPlanKey = "name"

// StripeClient talks to the Stripe API.
type StripeClient struct {
	api    *client.API
	prices map[string]string // plan name -> price id
}

// NewStripeClient creates a client. A nil backends uses the default Stripe endpoints.
func NewStripeClient(secretKey string, prices map[string]string, backends *stripe.Backends) *StripeClient {
	return &StripeClient{
		api:    client.New(secretKey, backends),
		prices: prices,
	}
}

func (s *StripeClient) EnsureCustomer(ctx context.Context, customer Customer) (string, error) {
	if customer.ProviderID != "" {
		return customer.ProviderID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(customer.Email),
		Name:  stripe.String(customer.Name),
	}
	params.Context = ctx
	params.AddMetadata("member_id", strconv.FormatUint(uint64(customer.MemberID), 10))

	c, err := s.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create customer: %w", err)
	}
	return c.ID, nil
}

func (s *StripeClient) CreateSetupIntent(ctx context.Context, customerID string) (string, error) {
	params := &stripe.SetupIntentParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := s.api.SetupIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create setup intent: %w", err)
	}
	return intent.ClientSecret, nil
}

func (s *StripeClient) IsSubscribed(ctx context.Context, customerID, plan string) (bool, error) {
	sub, err := s.findSubscription(ctx, customerID, plan)
	if err != nil {
		return false, err
	}
	return sub != nil, nil
}

func (s *StripeClient) Subscribe(ctx context.Context, customerID, plan, paymentMethodID string) error {
	price, ok := s.prices[plan]
	if !ok || price == "" {
		return fmt.Errorf("%w: %s", ErrUnknownPlan, plan)
	}
	if paymentMethodID == "" {
		return ErrPaymentMethodRequired
	}

	if err := s.UpdateDefaultPaymentMethod(ctx, customerID, paymentMethodID); err != nil {
		return err
	}

	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(price)},
		},
		DefaultPaymentMethod: stripe.String(paymentMethodID),
	}
	params.Context = ctx
	params.AddMetadata(metadataPlanKey, plan)

	if _, err := s.api.Subscriptions.New(params); err != nil {
		return fmt.Errorf("stripe create subscription: %w", err)
	}
	return nil
}

func (s *StripeClient) UpdateDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	if paymentMethodID == "" {
		return ErrPaymentMethodRequired
	}

	attach := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}
	attach.Context = ctx
	if _, err := s.api.PaymentMethods.Attach(paymentMethodID, attach); err != nil {
		return fmt.Errorf("stripe attach payment method: %w", err)
	}

	update := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
	update.Context = ctx
	if _, err := s.api.Customers.Update(customerID, update); err != nil {
		return fmt.Errorf("stripe update customer: %w", err)
	}
	return nil
}

func (s *StripeClient) CancelSubscription(ctx context.Context, customerID, plan string) error {
	sub, err := s.findSubscription(ctx, customerID, plan)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrNoSubscription
	}

	params := &stripe.SubscriptionCancelParams{}
	params.Context = ctx
	if _, err := s.api.Subscriptions.Cancel(sub.ID, params); err != nil {
		return fmt.Errorf("stripe cancel subscription: %w", err)
	}
	return nil
}

// findSubscription returns the customer's live subscription for plan, or nil.
func (s *StripeClient) findSubscription(ctx context.Context, customerID, plan string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	iter := s.api.Subscriptions.List(params)
	for iter.Next() {
		sub := iter.Subscription()
		if !isLive(sub.Status) {
			continue
		}
		if sub.Metadata[metadataPlanKey] == plan {
			return sub, nil
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe list subscriptions: %w", err)
	}
	return nil, nil
}

func isLive(status stripe.SubscriptionStatus) bool {
	switch status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return true
	}
	return false
}
