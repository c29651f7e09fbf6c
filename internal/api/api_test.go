package api

import (
	"alcyxob/gym-admin/internal/dashboard"
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/metrics"
	"alcyxob/gym-admin/internal/repository"
	"alcyxob/gym-admin/internal/repository/memory"
	"alcyxob/gym-admin/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "test-secret"
	testEmail    = "admin@example.com"
	testPassword = "correct horse"
)

type testServer struct {
	handler http.Handler
	store   *repository.Store
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore().Repositories()
	require.NoError(t, memory.SeedDemoData(context.Background(), store, time.Now()))

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	logger := zerolog.Nop()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	locks := service.NewKeyedMutex()

	svc := Services{
		Auth:      service.NewAuthService(testEmail, string(hash), testSecret, time.Hour),
		Users:     service.NewUserService(store.Users, locks, logger),
		Plans:     service.NewPlanService(store.Plans),
		Content:   service.NewContentService(store.Content, nil, logger),
		Meetings:  service.NewMeetingService(store.Meetings, ""),
		Payments:  service.NewPaymentService(store, locks, nil, m, logger),
		Dashboard: service.NewDashboardService(store, dashboard.Options{}),
	}

	router := gin.New()
	SetupRoutes(router, testSecret, svc, m, reg, logger)
	ts := &testServer{handler: WithCORS(router, nil), store: store}

	w := ts.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": testEmail, "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	ts.token = resp.Token
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func firstPending(t *testing.T, ts *testServer) domain.PaymentRequest {
	t.Helper()
	payments, err := ts.store.Payments.List(context.Background())
	require.NoError(t, err)
	for _, p := range payments {
		if p.IsPending() {
			return p
		}
	}
	t.Fatal("seed has no pending payment")
	return domain.PaymentRequest{}
}

func TestPingAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gym_admin_http_request_duration_seconds")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)
	ts.token = ""

	w := ts.do(t, http.MethodGet, "/api/v1/users", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ts.token = "garbage"
	w = ts.do(t, http.MethodGet, "/api/v1/users", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFailure(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": testEmail, "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApproveEndpoint(t *testing.T) {
	ts := newTestServer(t)
	p := firstPending(t, ts)

	w := ts.do(t, http.MethodPost, "/api/v1/payments/"+p.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[PaymentResponse](t, w)
	assert.Equal(t, domain.PaymentApproved, resp.Status)
	assert.NotNil(t, resp.ProcessedAt)

	user, err := ts.store.Users.GetByID(context.Background(), p.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionActive, user.SubscriptionStatus)
	assert.Equal(t, p.PlanName, user.SubscriptionPlan)

	// Second attempt conflicts.
	w = ts.do(t, http.MethodPost, "/api/v1/payments/"+p.ID+"/approve", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/payments/missing/approve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRejectEndpoint(t *testing.T) {
	ts := newTestServer(t)
	p := firstPending(t, ts)

	w := ts.do(t, http.MethodPost, "/api/v1/payments/"+p.ID+"/reject", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "reason required")

	w = ts.do(t, http.MethodPost, "/api/v1/payments/"+p.ID+"/reject", RejectPaymentRequest{Reason: "blurry"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[PaymentResponse](t, w)
	assert.Equal(t, domain.PaymentRejected, resp.Status)
	assert.Equal(t, "blurry", resp.Notes)
}

func TestUpdatePaymentEndpoint(t *testing.T) {
	ts := newTestServer(t)
	p := firstPending(t, ts)

	w := ts.do(t, http.MethodPut, "/api/v1/payments/"+p.ID, UpdatePaymentRequest{Status: domain.PaymentPending})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPut, "/api/v1/payments/"+p.ID, UpdatePaymentRequest{Status: domain.PaymentRejected, Notes: "wrong amount"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.PaymentRejected, decode[PaymentResponse](t, w).Status)
}

func TestListPaymentsPendingFirst(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	payments := decode[[]PaymentResponse](t, w)
	require.NotEmpty(t, payments)

	seenProcessed := false
	for _, p := range payments {
		if p.Status != domain.PaymentPending {
			seenProcessed = true
		} else {
			assert.False(t, seenProcessed, "pending request listed after a processed one")
		}
	}
}

func TestUserEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/users", UserRequest{Name: "Lisa Park", Email: "lisa@example.com", JoinDate: "2024-02-01", SubscriptionStatus: domain.SubscriptionActive})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.User](t, w)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), created.JoinDate)

	w = ts.do(t, http.MethodPost, "/api/v1/users", UserRequest{Name: "Lisa", Email: "lisa@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/users", UserRequest{Name: "Bad", Email: "bad@example.com", JoinDate: "01/02/2024"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/users/"+created.ID+"/workouts", WorkoutRequest{WorkoutName: "HIIT", DurationMinutes: 30})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/api/v1/users/"+created.ID+"/workouts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[ProgressResponse](t, w)
	assert.Equal(t, 1, progress.WorkoutsThisMonth)
	assert.Equal(t, 0.5, progress.TotalHours)

	w = ts.do(t, http.MethodGet, "/api/v1/users?sortBy=name&order=asc&pageSize=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[service.Page[domain.User]](t, w)
	assert.Len(t, page.Items, 2)
	assert.Greater(t, page.Total, 2)

	w = ts.do(t, http.MethodGet, "/api/v1/users?sortBy=name&order=desc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[[]domain.User](t, w)
	assert.Equal(t, page.Total, len(users))
	for i := 1; i < len(users); i++ {
		assert.GreaterOrEqual(t, strings.ToLower(users[i-1].Name), strings.ToLower(users[i].Name))
	}

	w = ts.do(t, http.MethodGet, "/api/v1/users?order=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/v1/users/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(t, http.MethodGet, "/api/v1/users/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[DashboardResponse](t, w)

	users, err := ts.store.Users.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(users), resp.TotalUsers)
	assert.LessOrEqual(t, len(resp.RecentActivity), dashboard.DefaultActivityLimit)
	assert.LessOrEqual(t, len(resp.UpcomingMeetings), dashboard.DefaultUpcomingLimit)
	for _, a := range resp.RecentActivity {
		assert.True(t, strings.HasSuffix(a.TimeAgo, " ago"), a.TimeAgo)
	}
}

func TestContentAndMeetingEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/content/thumbnail-upload-url", ThumbnailUploadRequest{ContentType: "image/png"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/content", ContentRequest{Title: "Mobility", Type: domain.ContentVideo, ThumbnailURL: "https://cdn.example.com/m.jpg"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[ContentResponse](t, w)
	assert.Equal(t, "https://cdn.example.com/m.jpg", item.ResolvedThumbnailURL)

	start := time.Now().Add(2 * time.Hour).UTC().Format(time.RFC3339)
	w = ts.do(t, http.MethodPost, "/api/v1/meetings", MeetingRequest{Topic: "Form check", StartTime: start, Duration: 30, Host: "Coach"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/api/v1/meetings/upcoming", nil)
	require.Equal(t, http.StatusOK, w.Code)
	upcoming := decode[[]domain.ZoomMeeting](t, w)
	for i := 1; i < len(upcoming); i++ {
		assert.False(t, upcoming[i].StartTime.Before(upcoming[i-1].StartTime))
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2024-01-15T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), d)

	d, err = parseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = parseDate("yesterday")
	assert.Error(t, err)
}
