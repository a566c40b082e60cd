package reservation_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/access"
	"github.com/nagoyameshi/go-api-server/internal/category"
	"github.com/nagoyameshi/go-api-server/internal/config"
	"github.com/nagoyameshi/go-api-server/internal/member"
	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/reservation"
	"github.com/nagoyameshi/go-api-server/internal/restaurant"
	"github.com/nagoyameshi/go-api-server/internal/shared/metrics"
	"github.com/nagoyameshi/go-api-server/internal/shared/middleware"
	"github.com/nagoyameshi/go-api-server/internal/shared/session"
	"github.com/nagoyameshi/go-api-server/internal/shared/testutil"
	"github.com/nagoyameshi/go-api-server/internal/shared/token"
	"github.com/nagoyameshi/go-api-server/internal/subscription"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var jst = time.FixedZone("JST", 9*60*60)

type testEnv struct {
	cfg     *config.Config
	db      *gorm.DB
	router  *gin.Engine
	billing *testutil.MockBillingClient
	metrics *metrics.Metrics
}

func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()

	cfg := testutil.NewTestConfig()
	db := testutil.SetupTestDB(t)
	m := metrics.New()
	billingClient := testutil.NewMockBillingClient()

	gate := subscription.NewGate(db, member.NewMemberRepository(), billingClient, cfg.Billing.PlanName, m)
	guard := access.NewGuard(gate, m)

	restaurantService := restaurant.NewRestaurantService(db, restaurant.NewRestaurantRepository(), category.NewCategoryRepository(), nil, 0)
	service := reservation.NewReservationService(db, reservation.NewReservationRepository(), restaurantService, jst, m)
	h := reservation.NewReservationHandler(service, guard)

	router := testutil.SetupTestRouter()
	router.Use(middleware.Authenticate(session.NewNoopRevoker(),
		token.NewJWTManager(cfg, token.NamespaceMember),
		token.NewJWTManager(cfg, token.NamespaceAdmin),
	))
	router.GET("/reservations", guard.RequireMember(), h.Index)
	router.GET("/restaurants/:id/reservations/create", guard.RequireSubscription(), h.Create)
	router.POST("/restaurants/:id/reservations", guard.RequireSubscription(), h.Store)
	router.DELETE("/reservations/:id", guard.RequireMember(), h.Destroy)

	return &testEnv{cfg: cfg, db: db, router: router, billing: billingClient, metrics: m}
}

// subscribedMember creates a member whose plan is active.
func (e *testEnv) subscribedMember(t *testing.T, email string) (*model.Member, string) {
	t.Helper()
	m := testutil.CreateSubscribedMember(t, e.db, email)
	e.billing.Activate(testutil.CustomerID(m.ID))
	return m, testutil.MemberToken(t, e.cfg, m.ID, m.Email)
}

func reservationForm(date, at string, people int) map[string][]string {
	return map[string][]string{
		"reservation_date": {date},
		"reservation_time": {at},
		"number_of_people": {fmt.Sprint(people)},
	}
}

func TestStore_Success(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)
	m, tok := env.subscribedMember(t, "member@example.com")
	r := testutil.CreateRestaurant(t, env.db, "矢場とん")

	// When
	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("/restaurants/%d/reservations", r.ID),
		Form:   reservationForm("2026-12-24", "19:30", 4),
		Token:  tok,
	})

	// Then
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/reservations", recorder.Header().Get("Location"))
	assert.Equal(t, "予約が完了しました。", testutil.FlashValue(recorder, "flash_message"))

	var saved model.Reservation
	require.NoError(t, env.db.Where("member_id = ?", m.ID).First(&saved).Error)
	assert.True(t, saved.ReservedDatetime.Equal(time.Date(2026, 12, 24, 19, 30, 0, 0, jst)))
	assert.Equal(t, 4, saved.NumberOfPeople)
	assert.Equal(t, r.ID, saved.RestaurantID)
	assert.Equal(t, float64(1), promtestutil.ToFloat64(env.metrics.ReservationsTotal.WithLabelValues("created")))
}

func TestStore_Validation(t *testing.T) {
	env := setupTestEnvironment(t)
	_, tok := env.subscribedMember(t, "member@example.com")
	r := testutil.CreateRestaurant(t, env.db, "矢場とん")

	cases := []struct {
		name  string
		form  map[string][]string
		field string
	}{
		{name: "party too large", form: reservationForm("2026-12-24", "19:30", 51), field: "number_of_people"},
		{name: "party empty", form: reservationForm("2026-12-24", "19:30", 0), field: "number_of_people"},
		{name: "bad date", form: reservationForm("2026/12/24", "19:30", 2), field: "reservation_date"},
		{name: "impossible date", form: reservationForm("2026-02-30", "19:30", 2), field: "reservation_date"},
		{name: "bad time", form: reservationForm("2026-12-24", "7pm", 2), field: "reservation_time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    fmt.Sprintf("/restaurants/%d/reservations", r.ID),
				Form:   tc.form,
				Token:  tok,
			})

			require.Equal(t, http.StatusBadRequest, recorder.Code)
			var response struct {
				Errors map[string]string `json:"errors"`
			}
			testutil.ParseResponse(t, recorder, &response)
			assert.Contains(t, response.Errors, tc.field)
			assert.Equal(t, int64(0), testutil.CountRows(t, env.db, "reservations", ""))
		})
	}
}

func TestStore_PartySizeBounds(t *testing.T) {
	env := setupTestEnvironment(t)
	m, tok := env.subscribedMember(t, "member@example.com")
	r := testutil.CreateRestaurant(t, env.db, "矢場とん")

	cases := []struct {
		name   string
		at     string
		people int
	}{
		{name: "single guest", at: "18:00", people: 1},
		{name: "largest party", at: "20:00", people: 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := testutil.CountRows(t, env.db, "reservations", "")

			recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    fmt.Sprintf("/restaurants/%d/reservations", r.ID),
				Form:   reservationForm("2026-12-24", tc.at, tc.people),
				Token:  tok,
			})

			require.Equal(t, http.StatusFound, recorder.Code)
			assert.Equal(t, "/reservations", recorder.Header().Get("Location"))
			assert.Equal(t, before+1, testutil.CountRows(t, env.db, "reservations", ""))

			var saved model.Reservation
			require.NoError(t, env.db.Where("member_id = ? AND number_of_people = ?", m.ID, tc.people).First(&saved).Error)
			assert.Equal(t, r.ID, saved.RestaurantID)
		})
	}
}

func TestStore_RequiresSubscription(t *testing.T) {
	// Given: a member without the paid plan
	env := setupTestEnvironment(t)
	m := testutil.CreateMember(t, env.db, "free@example.com")
	tok := testutil.MemberToken(t, env.cfg, m.ID, m.Email)
	r := testutil.CreateRestaurant(t, env.db, "矢場とん")

	// When
	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("/restaurants/%d/reservations", r.ID),
		Form:   reservationForm("2026-12-24", "19:30", 2),
		Token:  tok,
	})

	// Then
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/subscription/create", recorder.Header().Get("Location"))
	assert.Equal(t, int64(0), testutil.CountRows(t, env.db, "reservations", ""))
}

func TestStore_Unauthenticated(t *testing.T) {
	env := setupTestEnvironment(t)
	r := testutil.CreateRestaurant(t, env.db, "矢場とん")

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("/restaurants/%d/reservations", r.ID),
		Form:   reservationForm("2026-12-24", "19:30", 2),
	})

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/login", recorder.Header().Get("Location"))
	assert.Equal(t, int64(0), testutil.CountRows(t, env.db, "reservations", ""))
}

func TestStore_AdminIsSentToLogin(t *testing.T) {
	env := setupTestEnvironment(t)
	admin := testutil.CreateAdmin(t, env.db, "admin@example.com")
	r := testutil.CreateRestaurant(t, env.db, "矢場とん")

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("/restaurants/%d/reservations", r.ID),
		Form:   reservationForm("2026-12-24", "19:30", 2),
		Token:  testutil.AdminToken(t, env.cfg, admin.ID, admin.Email),
	})

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/login", recorder.Header().Get("Location"))
}

func TestStore_UnknownRestaurant(t *testing.T) {
	env := setupTestEnvironment(t)
	_, tok := env.subscribedMember(t, "member@example.com")

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/restaurants/999/reservations",
		Form:   reservationForm("2026-12-24", "19:30", 2),
		Token:  tok,
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCreateForm(t *testing.T) {
	env := setupTestEnvironment(t)
	_, tok := env.subscribedMember(t, "member@example.com")
	r := testutil.CreateRestaurant(t, env.db, "矢場とん")

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("/restaurants/%d/reservations/create", r.ID),
		Token:  tok,
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	var response reservation.CreateFormResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "矢場とん", response.Restaurant.Name)
	assert.Equal(t, "10:00", response.Restaurant.OpeningTime)
}

func TestIndex_OwnReservationsNewestFirst(t *testing.T) {
	// Given: two reservations of the member and one of someone else
	env := setupTestEnvironment(t)
	m := testutil.CreateMember(t, env.db, "member@example.com")
	other := testutil.CreateMember(t, env.db, "other@example.com")
	r := testutil.CreateRestaurant(t, env.db, "矢場とん")
	testutil.CreateReservation(t, env.db, m.ID, r.ID, time.Date(2026, 5, 1, 12, 0, 0, 0, jst))
	testutil.CreateReservation(t, env.db, m.ID, r.ID, time.Date(2026, 6, 1, 18, 0, 0, 0, jst))
	testutil.CreateReservation(t, env.db, other.ID, r.ID, time.Date(2026, 7, 1, 18, 0, 0, 0, jst))

	// When
	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/reservations",
		Token:  testutil.MemberToken(t, env.cfg, m.ID, m.Email),
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)
	var response reservation.ListResponse
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.Reservations, 2)
	assert.Equal(t, "2026-06-01 18:00", response.Reservations[0].ReservedDatetime)
	assert.Equal(t, "2026-05-01 12:00", response.Reservations[1].ReservedDatetime)
	require.NotNil(t, response.Reservations[0].Restaurant)
	assert.Equal(t, "矢場とん", response.Reservations[0].Restaurant.Name)
	assert.Equal(t, int64(2), response.Meta.Total)
}

func TestIndex_Pagination(t *testing.T) {
	env := setupTestEnvironment(t)
	m := testutil.CreateMember(t, env.db, "member@example.com")
	r := testutil.CreateRestaurant(t, env.db, "矢場とん")
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, jst)
	for i := 0; i < 16; i++ {
		testutil.CreateReservation(t, env.db, m.ID, r.ID, base.AddDate(0, 0, i))
	}

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/reservations?page=2",
		Token:  testutil.MemberToken(t, env.cfg, m.ID, m.Email),
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	var response reservation.ListResponse
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.Reservations, 1)
	assert.Equal(t, "2026-01-01 12:00", response.Reservations[0].ReservedDatetime)
	assert.Equal(t, 2, response.Meta.LastPage)
}

func TestDestroy_Owner(t *testing.T) {
	env := setupTestEnvironment(t)
	m := testutil.CreateMember(t, env.db, "member@example.com")
	r := testutil.CreateRestaurant(t, env.db, "矢場とん")
	res := testutil.CreateReservation(t, env.db, m.ID, r.ID, time.Now())

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    fmt.Sprintf("/reservations/%d", res.ID),
		Token:  testutil.MemberToken(t, env.cfg, m.ID, m.Email),
	})

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/reservations", recorder.Header().Get("Location"))
	assert.Equal(t, "予約をキャンセルしました。", testutil.FlashValue(recorder, "flash_message"))
	assert.Equal(t, int64(0), testutil.CountRows(t, env.db, "reservations", ""))
}

func TestDestroy_NotOwner(t *testing.T) {
	// Given: a reservation held by someone else
	env := setupTestEnvironment(t)
	owner := testutil.CreateMember(t, env.db, "owner@example.com")
	intruder := testutil.CreateMember(t, env.db, "intruder@example.com")
	r := testutil.CreateRestaurant(t, env.db, "矢場とん")
	res := testutil.CreateReservation(t, env.db, owner.ID, r.ID, time.Now())

	// When
	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    fmt.Sprintf("/reservations/%d", res.ID),
		Token:  testutil.MemberToken(t, env.cfg, intruder.ID, intruder.Email),
	})

	// Then: denied, nothing deleted
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/reservations", recorder.Header().Get("Location"))
	assert.Equal(t, "不正なアクセスです。", testutil.FlashValue(recorder, "error_message"))
	assert.Equal(t, int64(1), testutil.CountRows(t, env.db, "reservations", ""))
}

func TestDestroy_NotFound(t *testing.T) {
	env := setupTestEnvironment(t)
	m := testutil.CreateMember(t, env.db, "member@example.com")

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/reservations/999",
		Token:  testutil.MemberToken(t, env.cfg, m.ID, m.Email),
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "RESERVATION-001")
}
