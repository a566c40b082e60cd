package testutil

import (
	"context"
	"sync"

	"github.com/nagoyameshi/go-api-server/internal/billing"
)

// MockBillingClient is an in-memory billing.Client. Active holds the customer
// ids with a live subscription; the *Func fields override individual calls.
type MockBillingClient struct {
	mu     sync.Mutex
	Active map[string]bool
	Calls  int

	IsSubscribedFunc func(ctx context.Context, customerID, plan string) (bool, error)
	SubscribeFunc    func(ctx context.Context, customerID, plan, paymentMethodID string) error
	CancelFunc       func(ctx context.Context, customerID, plan string) error
	UpdateFunc       func(ctx context.Context, customerID, paymentMethodID string) error
}

func NewMockBillingClient() *MockBillingClient {
	return &MockBillingClient{Active: map[string]bool{}}
}

// Activate marks customerID as subscribed.
func (m *MockBillingClient) Activate(customerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Active[customerID] = true
}

func (m *MockBillingClient) EnsureCustomer(_ context.Context, customer billing.Customer) (string, error) {
	m.count()
	if customer.ProviderID != "" {
		return customer.ProviderID, nil
	}
	return CustomerID(customer.MemberID), nil
}

func (m *MockBillingClient) CreateSetupIntent(_ context.Context, customerID string) (string, error) {
	m.count()
	return "seti_" + customerID + "_secret", nil
}

func (m *MockBillingClient) IsSubscribed(ctx context.Context, customerID, plan string) (bool, error) {
	m.count()
	if m.IsSubscribedFunc != nil {
		return m.IsSubscribedFunc(ctx, customerID, plan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Active[customerID], nil
}

func (m *MockBillingClient) Subscribe(ctx context.Context, customerID, plan, paymentMethodID string) error {
	m.count()
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx, customerID, plan, paymentMethodID)
	}
	if paymentMethodID == "" {
		return billing.ErrPaymentMethodRequired
	}
	m.Activate(customerID)
	return nil
}

func (m *MockBillingClient) UpdateDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	m.count()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, customerID, paymentMethodID)
	}
	return nil
}

func (m *MockBillingClient) CancelSubscription(ctx context.Context, customerID, plan string) error {
	m.count()
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, customerID, plan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Active[customerID] {
		return billing.ErrNoSubscription
	}
	delete(m.Active, customerID)
	return nil
}

func (m *MockBillingClient) count() {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
}

var _ billing.Client = (*MockBillingClient)(nil)
