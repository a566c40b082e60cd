package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nagoyameshi/go-api-server/internal/model"
	"gorm.io/gorm"
)

// LocalClient keeps customers and subscriptions in the application database.
// It stands in for Stripe in local development and tests.
type LocalClient struct {
	db *gorm.DB
}

func NewLocalClient(db *gorm.DB) *LocalClient {
	return &LocalClient{db: db}
}

func (l *LocalClient) EnsureCustomer(ctx context.Context, customer Customer) (string, error) {
	if customer.ProviderID != "" {
		return customer.ProviderID, nil
	}

	record := &model.BillingCustomer{
		ID:       "cus_local_" + uuid.NewString(),
		MemberID: customer.MemberID,
		Email:    customer.Email,
	}
	if err := l.db.WithContext(ctx).Create(record).Error; err != nil {
		return "", fmt.Errorf("local create customer: %w", err)
	}
	return record.ID, nil
}

func (l *LocalClient) CreateSetupIntent(ctx context.Context, customerID string) (string, error) {
	if err := l.requireCustomer(ctx, customerID); err != nil {
		return "", err
	}
	return "seti_local_" + uuid.NewString() + "_secret", nil
}

func (l *LocalClient) IsSubscribed(ctx context.Context, customerID, plan string) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).
		Model(&model.BillingSubscription{}).
		Where("customer_id = ? AND name = ? AND status = ?", customerID, plan, model.SubscriptionStatusActive).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("local list subscriptions: %w", err)
	}
	return count > 0, nil
}

func (l *LocalClient) Subscribe(ctx context.Context, customerID, plan, paymentMethodID string) error {
	if paymentMethodID == "" {
		return ErrPaymentMethodRequired
	}
	if err := l.UpdateDefaultPaymentMethod(ctx, customerID, paymentMethodID); err != nil {
		return err
	}

	subscribed, err := l.IsSubscribed(ctx, customerID, plan)
	if err != nil {
		return err
	}
	if subscribed {
		return nil
	}

	sub := &model.BillingSubscription{
		ID:         "sub_local_" + uuid.NewString(),
		CustomerID: customerID,
		Name:       plan,
		Status:     model.SubscriptionStatusActive,
	}
	if err := l.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("local create subscription: %w", err)
	}
	return nil
}

func (l *LocalClient) UpdateDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	if paymentMethodID == "" {
		return ErrPaymentMethodRequired
	}

	result := l.db.WithContext(ctx).
		Model(&model.BillingCustomer{}).
		Where("id = ?", customerID).
		Update("default_payment_method", paymentMethodID)
	if result.Error != nil {
		return fmt.Errorf("local update customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUnknownCustomer
	}
	return nil
}

func (l *LocalClient) CancelSubscription(ctx context.Context, customerID, plan string) error {
	now := time.Now().UTC()
	result := l.db.WithContext(ctx).
		Model(&model.BillingSubscription{}).
		Where("customer_id = ? AND name = ? AND status = ?", customerID, plan, model.SubscriptionStatusActive).
		Updates(map[string]any{"status": model.SubscriptionStatusCanceled, "ends_at": now})
	if result.Error != nil {
		return fmt.Errorf("local cancel subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNoSubscription
	}
	return nil
}

func (l *LocalClient) requireCustomer(ctx context.Context, customerID string) error {
	var customer model.BillingCustomer
	err := l.db.WithContext(ctx).Where("id = ?", customerID).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUnknownCustomer
	}
	return err
}
