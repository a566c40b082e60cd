package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nagoyameshi/go-api-server/internal/access"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker answers the subscription gate from a fixed value and counts calls.
type stubChecker struct {
	active bool
	err    error
	calls  int
}

func (s *stubChecker) IsActive(context.Context, uint32) (bool, error) {
	s.calls++
	return s.active, s.err
}

var (
	guest  = sharedContext.Principal{}
	member = sharedContext.Principal{Kind: sharedContext.KindMember, ID: 1}
	other  = sharedContext.Principal{Kind: sharedContext.KindMember, ID: 2}
	admin  = sharedContext.Principal{Kind: sharedContext.KindAdmin, ID: 1}
)

func TestEvaluate_Namespaces(t *testing.T) {
	tests := []struct {
		name       string
		namespace  access.Namespace
		principal  sharedContext.Principal
		allowed    bool
		reason     access.Reason
		redirectTo string
	}{
		{"guest on member route", access.NamespaceMember, guest, false, access.ReasonUnauthenticated, "/login"},
		{"admin on member route", access.NamespaceMember, admin, false, access.ReasonWrongRole, "/login"},
		{"member on member route", access.NamespaceMember, member, true, access.ReasonAllowed, ""},
		{"guest on admin route", access.NamespaceAdmin, guest, false, access.ReasonUnauthenticated, "/admin/login"},
		{"member on admin route", access.NamespaceAdmin, member, false, access.ReasonWrongRole, "/admin/login"},
		{"admin on admin route", access.NamespaceAdmin, admin, true, access.ReasonAllowed, ""},
		{"guest on public route", access.NamespaceGuest, guest, true, access.ReasonAllowed, ""},
		{"member on public route", access.NamespaceGuest, member, true, access.ReasonAllowed, ""},
		{"admin on public route", access.NamespaceGuest, admin, false, access.ReasonWrongRole, "/admin/home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &stubChecker{}

			decision, err := access.Evaluate(context.Background(), access.Request{
				Namespace: tt.namespace,
				Principal: tt.principal,
			}, checker)

			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)
			assert.Equal(t, tt.redirectTo, decision.RedirectTo)
			assert.Zero(t, checker.calls)
		})
	}
}

func TestEvaluate_Ownership(t *testing.T) {
	ownership := &access.Ownership{OwnerID: 1, IndexPath: "/reservations"}

	// Owner passes
	decision, err := access.Evaluate(context.Background(), access.Request{
		Namespace: access.NamespaceMember, Principal: member, Ownership: ownership,
	}, &stubChecker{})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	// Another member is bounced to the index with an error message
	decision, err = access.Evaluate(context.Background(), access.Request{
		Namespace: access.NamespaceMember, Principal: other, Ownership: ownership,
	}, &stubChecker{})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, access.ReasonNotOwner, decision.Reason)
	assert.Equal(t, "/reservations", decision.RedirectTo)
	assert.Equal(t, access.InvalidAccessMessage, decision.Message)
}

func TestEvaluate_Subscription(t *testing.T) {
	tests := []struct {
		name       string
		rule       access.SubscriptionRule
		active     bool
		allowed    bool
		redirectTo string
	}{
		{"required and active", access.SubscriptionRequired, true, true, ""},
		{"required and inactive", access.SubscriptionRequired, false, false, "/subscription/create"},
		{"forbidden and inactive", access.SubscriptionForbidden, false, true, ""},
		{"forbidden and active", access.SubscriptionForbidden, true, false, "/subscription/edit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &stubChecker{active: tt.active}

			decision, err := access.Evaluate(context.Background(), access.Request{
				Namespace: access.NamespaceMember, Principal: member, Subscription: tt.rule,
			}, checker)

			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.redirectTo, decision.RedirectTo)
			assert.Equal(t, 1, checker.calls)
		})
	}
}

func TestEvaluate_Precedence(t *testing.T) {
	// Unauthenticated wins over ownership and subscription; the gate is never asked
	checker := &stubChecker{}
	decision, err := access.Evaluate(context.Background(), access.Request{
		Namespace:    access.NamespaceMember,
		Principal:    guest,
		Ownership:    &access.Ownership{OwnerID: 1, IndexPath: "/reservations"},
		Subscription: access.SubscriptionRequired,
	}, checker)
	require.NoError(t, err)
	assert.Equal(t, access.ReasonUnauthenticated, decision.Reason)
	assert.Zero(t, checker.calls)

	// Ownership wins over subscription
	decision, err = access.Evaluate(context.Background(), access.Request{
		Namespace:    access.NamespaceMember,
		Principal:    other,
		Ownership:    &access.Ownership{OwnerID: 1, IndexPath: "/reservations"},
		Subscription: access.SubscriptionRequired,
	}, checker)
	require.NoError(t, err)
	assert.Equal(t, access.ReasonNotOwner, decision.Reason)
	assert.Zero(t, checker.calls)
}

func TestEvaluate_CheckerFailure(t *testing.T) {
	checker := &stubChecker{err: errors.New("billing down")}

	_, err := access.Evaluate(context.Background(), access.Request{
		Namespace: access.NamespaceMember, Principal: member, Subscription: access.SubscriptionRequired,
	}, checker)

	assert.Error(t, err)
}

func TestCheckOwner(t *testing.T) {
	assert.NoError(t, access.CheckOwner(member, 1))
	assert.ErrorIs(t, access.CheckOwner(other, 1), access.ErrNotOwner)
	assert.ErrorIs(t, access.CheckOwner(admin, 1), access.ErrNotOwner)
	assert.ErrorIs(t, access.CheckOwner(guest, 0), access.ErrNotOwner)
}
