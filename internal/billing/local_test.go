package billing_test

import (
	"context"
	"testing"

	"github.com/nagoyameshi/go-api-server/internal/billing"
	"github.com/nagoyameshi/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalClient_SubscriptionLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := billing.NewLocalClient(db)
	ctx := context.Background()

	// Given: a new customer
	customerID, err := client.EnsureCustomer(ctx, billing.Customer{MemberID: 1, Email: "taro@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, customerID)

	subscribed, err := client.IsSubscribed(ctx, customerID, "premium_plan")
	require.NoError(t, err)
	assert.False(t, subscribed)

	// When: the customer subscribes
	require.NoError(t, client.Subscribe(ctx, customerID, "premium_plan", "pm_card_visa"))

	// Then: the plan is active
	subscribed, err = client.IsSubscribed(ctx, customerID, "premium_plan")
	require.NoError(t, err)
	assert.True(t, subscribed)

	// When: the subscription is cancelled
	require.NoError(t, client.CancelSubscription(ctx, customerID, "premium_plan"))

	// Then: the plan is no longer active and a second cancel fails
	subscribed, err = client.IsSubscribed(ctx, customerID, "premium_plan")
	require.NoError(t, err)
	assert.False(t, subscribed)
	assert.ErrorIs(t, client.CancelSubscription(ctx, customerID, "premium_plan"), billing.ErrNoSubscription)
}

func TestLocalClient_EnsureCustomerKeepsExisting(t *testing.T) {
	client := billing.NewLocalClient(testutil.SetupTestDB(t))

	id, err := client.EnsureCustomer(context.Background(), billing.Customer{MemberID: 1, ProviderID: "cus_existing"})
	require.NoError(t, err)
	assert.Equal(t, "cus_existing", id)
}

func TestLocalClient_SubscribeRequiresPaymentMethod(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := billing.NewLocalClient(db)
	ctx := context.Background()

	customerID, err := client.EnsureCustomer(ctx, billing.Customer{MemberID: 1, Email: "taro@example.com"})
	require.NoError(t, err)

	assert.ErrorIs(t, client.Subscribe(ctx, customerID, "premium_plan", ""), billing.ErrPaymentMethodRequired)
	assert.Equal(t, int64(0), testutil.CountRows(t, db, "billing_subscriptions", ""))
}

func TestLocalClient_SubscribeIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := billing.NewLocalClient(db)
	ctx := context.Background()

	customerID, err := client.EnsureCustomer(ctx, billing.Customer{MemberID: 1, Email: "taro@example.com"})
	require.NoError(t, err)

	require.NoError(t, client.Subscribe(ctx, customerID, "premium_plan", "pm_1"))
	require.NoError(t, client.Subscribe(ctx, customerID, "premium_plan", "pm_2"))

	assert.Equal(t, int64(1), testutil.CountRows(t, db, "billing_subscriptions", "customer_id = ?", customerID))
	assert.Equal(t, int64(1), testutil.CountRows(t, db, "billing_customers", "default_payment_method = ?", "pm_2"))
}

func TestLocalClient_UnknownCustomer(t *testing.T) {
	client := billing.NewLocalClient(testutil.SetupTestDB(t))
	ctx := context.Background()

	_, err := client.CreateSetupIntent(ctx, "cus_missing")
	assert.ErrorIs(t, err, billing.ErrUnknownCustomer)
	assert.ErrorIs(t, client.UpdateDefaultPaymentMethod(ctx, "cus_missing", "pm_1"), billing.ErrUnknownCustomer)
}
