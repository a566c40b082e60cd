package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/nagoyameshi/go-api-server/internal/billing"
	"github.com/nagoyameshi/go-api-server/internal/member"
	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/metrics"
	"gorm.io/gorm"
)

// Gate answers whether a member currently holds the paid plan. It keeps no
// state of its own: every question goes to the billing collaborator.
type Gate struct {
	db               *gorm.DB
	memberRepository *member.MemberRepository
	client           billing.Client
	plan             string
	metrics          *metrics.Metrics
}

func NewGate(db *gorm.DB, memberRepository *member.MemberRepository, client billing.Client, plan string, m *metrics.Metrics) *Gate {
	return &Gate{
		db:               db,
		memberRepository: memberRepository,
		client:           client,
		plan:             plan,
		metrics:          m,
	}
}

// IsActive reports whether memberID has a live subscription. A member without
// a billing customer has never subscribed.
func (g *Gate) IsActive(ctx context.Context, memberID uint32) (bool, error) {
	m, err := g.findMember(ctx, memberID)
	if err != nil {
		return false, err
	}
	if m.BillingCustomerID == nil || *m.BillingCustomerID == "" {
		return false, nil
	}

	active, err := g.client.IsSubscribed(ctx, *m.BillingCustomerID, g.plan)
	g.metrics.BillingCall("is_subscribed", err)
	if err != nil {
		return false, fmt.Errorf("check subscription: %w: %w", ErrBillingFailed, err)
	}
	return active, nil
}

// SetupIntent returns the client secret the payment form needs.
func (g *Gate) SetupIntent(ctx context.Context, memberID uint32) (string, error) {
	customerID, err := g.ensureCustomer(ctx, memberID)
	if err != nil {
		return "", err
	}

	secret, err := g.client.CreateSetupIntent(ctx, customerID)
	g.metrics.BillingCall("setup_intent", err)
	if err != nil {
		return "", fmt.Errorf("setup intent: %w: %w", ErrBillingFailed, err)
	}
	return secret, nil
}

func (g *Gate) Subscribe(ctx context.Context, memberID uint32, paymentMethodID string) error {
	customerID, err := g.ensureCustomer(ctx, memberID)
	if err != nil {
		return err
	}

	err = g.client.Subscribe(ctx, customerID, g.plan, paymentMethodID)
	g.metrics.BillingCall("subscribe", err)
	if err != nil {
		return fmt.Errorf("subscribe: %w: %w", ErrBillingFailed, err)
	}

	logger.FromContext(ctx).Info("Subscription created", "member_id", memberID, "plan", g.plan)
	return nil
}

func (g *Gate) UpdatePaymentMethod(ctx context.Context, memberID uint32, paymentMethodID string) error {
	customerID, err := g.ensureCustomer(ctx, memberID)
	if err != nil {
		return err
	}

	err = g.client.UpdateDefaultPaymentMethod(ctx, customerID, paymentMethodID)
	g.metrics.BillingCall("update_payment_method", err)
	if err != nil {
		return fmt.Errorf("update payment method: %w: %w", ErrBillingFailed, err)
	}
	return nil
}

func (g *Gate) Cancel(ctx context.Context, memberID uint32) error {
	customerID, err := g.ensureCustomer(ctx, memberID)
	if err != nil {
		return err
	}

	err = g.client.CancelSubscription(ctx, customerID, g.plan)
	g.metrics.BillingCall("cancel", err)
	if err != nil {
		return fmt.Errorf("cancel: %w: %w", ErrBillingFailed, err)
	}

	logger.FromContext(ctx).Info("Subscription cancelled", "member_id", memberID, "plan", g.plan)
	return nil
}

// ensureCustomer returns the member's billing customer, creating it on first use.
func (g *Gate) ensureCustomer(ctx context.Context, memberID uint32) (string, error) {
	m, err := g.findMember(ctx, memberID)
	if err != nil {
		return "", err
	}
	if m.BillingCustomerID != nil && *m.BillingCustomerID != "" {
		return *m.BillingCustomerID, nil
	}

	customerID, err := g.client.EnsureCustomer(ctx, billing.Customer{
		MemberID: m.ID,
		Email:    m.Email,
		Name:     m.Name,
	})
	g.metrics.BillingCall("ensure_customer", err)
	if err != nil {
		return "", fmt.Errorf("create customer: %w: %w", ErrBillingFailed, err)
	}

	stored, err := g.memberRepository.UpdateBillingCustomerID(ctx, g.db, memberID, customerID)
	if err != nil {
		return "", fmt.Errorf("store billing customer: %w", err)
	}
	if !stored {
		// another request stored one first
		m, err = g.findMember(ctx, memberID)
		if err != nil {
			return "", err
		}
		return *m.BillingCustomerID, nil
	}
	return customerID, nil
}

func (g *Gate) findMember(ctx context.Context, memberID uint32) (*model.Member, error) {
	m, err := g.memberRepository.FindByID(ctx, g.db, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("memberID=%d %w", memberID, member.ErrMemberNotFound)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}
	return m, nil
}
