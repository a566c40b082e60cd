package billing_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/nagoyameshi/go-api-server/internal/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStripe records the calls made to it and answers with canned JSON.
type fakeStripe struct {
	mu            sync.Mutex
	calls         []string
	subscriptions string
	failCreate    bool
}

func (f *fakeStripe) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/customers":
		fmt.Fprint(w, `{"id":"cus_123","object":"customer"}`)
	case r.Method == http.MethodPost && r.URL.Path == "/v1/customers/cus_123":
		fmt.Fprint(w, `{"id":"cus_123","object":"customer"}`)
	case r.Method == http.MethodPost && r.URL.Path == "/v1/setup_intents":
		fmt.Fprint(w, `{"id":"seti_1","object":"setup_intent","client_secret":"seti_1_secret_abc"}`)
	case r.Method == http.MethodPost && r.URL.Path == "/v1/payment_methods/pm_card/attach":
		fmt.Fprint(w, `{"id":"pm_card","object":"payment_method"}`)
	case r.Method == http.MethodPost && r.URL.Path == "/v1/subscriptions":
		if f.failCreate {
			w.WriteHeader(http.StatusPaymentRequired)
			fmt.Fprint(w, `{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`)
			return
		}
		fmt.Fprint(w, `{"id":"sub_new","object":"subscription","status":"active"}`)
	case r.Method == http.MethodGet && r.URL.Path == "/v1/subscriptions":
		fmt.Fprintf(w, `{"object":"list","url":"/v1/subscriptions","has_more":false,"data":[%s]}`, f.subscriptions)
	case r.Method == http.MethodDelete && r.URL.Path == "/v1/subscriptions/sub_live":
		fmt.Fprint(w, `{"id":"sub_live","object":"subscription","status":"canceled"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"type":"invalid_request_error","message":"no such route"}}`)
	}
}

func (f *fakeStripe) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func setupStripe(t *testing.T, fake *fakeStripe) *billing.StripeClient {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	prices := map[string]string{"premium_plan": "price_premium"}
	return billing.NewStripeClient("sk_test_123", prices, billing.Backends(server.URL))
}

const liveSubscription = `{"id":"sub_live","object":"subscription","status":"active","metadata":{"name":"premium_plan"}}`

func TestStripeClient_IsSubscribed(t *testing.T) {
	tests := []struct {
		name          string
		subscriptions string
		expected      bool
	}{
		{"active plan", liveSubscription, true},
		{"no subscriptions", "", false},
		{"other plan", `{"id":"sub_x","object":"subscription","status":"active","metadata":{"name":"other"}}`, false},
		{"past due", `{"id":"sub_x","object":"subscription","status":"past_due","metadata":{"name":"premium_plan"}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupStripe(t, &fakeStripe{subscriptions: tt.subscriptions})

			subscribed, err := client.IsSubscribed(context.Background(), "cus_123", "premium_plan")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, subscribed)
		})
	}
}

func TestStripeClient_EnsureCustomer(t *testing.T) {
	fake := &fakeStripe{}
	client := setupStripe(t, fake)

	id, err := client.EnsureCustomer(context.Background(), billing.Customer{MemberID: 7, Email: "taro@example.com", Name: "名古屋 太郎"})
	require.NoError(t, err)
	assert.Equal(t, "cus_123", id)
	assert.True(t, fake.called("POST /v1/customers"))
}

func TestStripeClient_Subscribe(t *testing.T) {
	fake := &fakeStripe{}
	client := setupStripe(t, fake)

	err := client.Subscribe(context.Background(), "cus_123", "premium_plan", "pm_card")
	require.NoError(t, err)

	assert.True(t, fake.called("POST /v1/payment_methods/pm_card/attach"))
	assert.True(t, fake.called("POST /v1/customers/cus_123"))
	assert.True(t, fake.called("POST /v1/subscriptions"))
}

func TestStripeClient_SubscribeDeclined(t *testing.T) {
	client := setupStripe(t, &fakeStripe{failCreate: true})

	err := client.Subscribe(context.Background(), "cus_123", "premium_plan", "pm_card")
	assert.Error(t, err)
}

func TestStripeClient_SubscribeUnknownPlan(t *testing.T) {
	fake := &fakeStripe{}
	client := setupStripe(t, fake)

	err := client.Subscribe(context.Background(), "cus_123", "gold_plan", "pm_card")
	assert.ErrorIs(t, err, billing.ErrUnknownPlan)
	assert.False(t, fake.called("POST /v1/subscriptions"))
}

func TestStripeClient_Cancel(t *testing.T) {
	fake := &fakeStripe{subscriptions: liveSubscription}
	client := setupStripe(t, fake)

	require.NoError(t, client.CancelSubscription(context.Background(), "cus_123", "premium_plan"))
	assert.True(t, fake.called("DELETE /v1/subscriptions/sub_live"))
}

func TestStripeClient_CancelWithoutSubscription(t *testing.T) {
	client := setupStripe(t, &fakeStripe{})

	err := client.CancelSubscription(context.Background(), "cus_123", "premium_plan")
	assert.ErrorIs(t, err, billing.ErrNoSubscription)
}

func TestStripeClient_CreateSetupIntent(t *testing.T) {
	client := setupStripe(t, &fakeStripe{})

	secret, err := client.CreateSetupIntent(context.Background(), "cus_123")
	require.NoError(t, err)
	assert.Equal(t, "seti_1_secret_abc", secret)
}
