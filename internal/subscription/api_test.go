package subscription_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/access"
	"github.com/nagoyameshi/go-api-server/internal/config"
	"github.com/nagoyameshi/go-api-server/internal/member"
	"github.com/nagoyameshi/go-api-server/internal/shared/metrics"
	"github.com/nagoyameshi/go-api-server/internal/shared/middleware"
	"github.com/nagoyameshi/go-api-server/internal/shared/session"
	"github.com/nagoyameshi/go-api-server/internal/shared/testutil"
	"github.com/nagoyameshi/go-api-server/internal/shared/token"
	"github.com/nagoyameshi/go-api-server/internal/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	cfg     *config.Config
	db      *gorm.DB
	router  *gin.Engine
	billing *testutil.MockBillingClient
}

func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()

	cfg := testutil.NewTestConfig()
	db := testutil.SetupTestDB(t)
	m := metrics.New()
	billingClient := testutil.NewMockBillingClient()

	gate := subscription.NewGate(db, member.NewMemberRepository(), billingClient, cfg.Billing.PlanName, m)
	guard := access.NewGuard(gate, m)
	h := subscription.NewSubscriptionHandler(gate, guard, cfg.Billing.PlanName)

	router := testutil.SetupTestRouter()
	router.Use(middleware.Authenticate(session.NewNoopRevoker(),
		token.NewJWTManager(cfg, token.NamespaceMember),
		token.NewJWTManager(cfg, token.NamespaceAdmin),
	))
	router.GET("/subscription/create", guard.RequireNoSubscription(), h.Create)
	router.POST("/subscription", guard.RequireNoSubscription(), h.Store)
	router.GET("/subscription/edit", guard.RequireSubscription(), h.Edit)
	router.PATCH("/subscription", guard.RequireSubscription(), h.Update)
	router.DELETE("/subscription", guard.RequireSubscription(), h.Destroy)

	return &testEnv{cfg: cfg, db: db, router: router, billing: billingClient}
}

func (e *testEnv) paidMemberToken(t *testing.T) string {
	t.Helper()
	m := testutil.CreateSubscribedMember(t, e.db, "paid@example.com")
	e.billing.Activate(testutil.CustomerID(m.ID))
	return testutil.MemberToken(t, e.cfg, m.ID, m.Email)
}

func (e *testEnv) freeMemberToken(t *testing.T) string {
	t.Helper()
	m := testutil.CreateMember(t, e.db, "free@example.com")
	return testutil.MemberToken(t, e.cfg, m.ID, m.Email)
}

func TestCreate_ReturnsSetupIntent(t *testing.T) {
	env := setupTestEnvironment(t)
	tok := env.freeMemberToken(t)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/subscription/create",
		Token:  tok,
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	var response subscription.IntentResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.NotEmpty(t, response.ClientSecret)
	assert.Equal(t, "premium_plan", response.Plan)
}

func TestCreate_AlreadySubscribed(t *testing.T) {
	env := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/subscription/create",
		Token:  env.paidMemberToken(t),
	})

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/subscription/edit", recorder.Header().Get("Location"))
}

func TestStore_Subscribes(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)
	tok := env.freeMemberToken(t)

	// When
	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/subscription",
		Form:   map[string][]string{"payment_method_id": {"pm_card_visa"}},
		Token:  tok,
	})

	// Then
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))
	assert.Equal(t, "有料プランへの登録が完了しました。", testutil.FlashValue(recorder, "flash_message"))

	// and the edit page is now reachable
	recorder = testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/subscription/edit",
		Token:  tok,
	})
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestStore_MissingPaymentMethod(t *testing.T) {
	env := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/subscription",
		Form:   map[string][]string{},
		Token:  env.freeMemberToken(t),
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestStore_CollaboratorFailure(t *testing.T) {
	env := setupTestEnvironment(t)
	env.billing.SubscribeFunc = func(context.Context, string, string, string) error {
		return errors.New("card declined")
	}

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/subscription",
		Form:   map[string][]string{"payment_method_id": {"pm_card_visa"}},
		Token:  env.freeMemberToken(t),
	})

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/subscription/create", recorder.Header().Get("Location"))
	assert.Equal(t, "処理に失敗しました。", testutil.FlashValue(recorder, "error_message"))
}

func TestEdit_RequiresSubscription(t *testing.T) {
	env := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/subscription/edit",
		Token:  env.freeMemberToken(t),
	})

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/subscription/create", recorder.Header().Get("Location"))
}

func TestUpdate_PaymentMethod(t *testing.T) {
	env := setupTestEnvironment(t)
	var updated string
	env.billing.UpdateFunc = func(_ context.Context, _ string, paymentMethodID string) error {
		updated = paymentMethodID
		return nil
	}

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPatch,
		URL:    "/subscription",
		Form:   map[string][]string{"payment_method_id": {"pm_card_mastercard"}},
		Token:  env.paidMemberToken(t),
	})

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "お支払い方法を変更しました。", testutil.FlashValue(recorder, "flash_message"))
	assert.Equal(t, "pm_card_mastercard", updated)
}

func TestDestroy_Cancels(t *testing.T) {
	env := setupTestEnvironment(t)
	tok := env.paidMemberToken(t)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/subscription",
		Token:  tok,
	})

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "有料プランを解約しました。", testutil.FlashValue(recorder, "flash_message"))

	recorder = testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/subscription/edit",
		Token:  tok,
	})
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/subscription/create", recorder.Header().Get("Location"))
}
