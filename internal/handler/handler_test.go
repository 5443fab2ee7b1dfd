package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/campushub/eventline/internal/database"
	"github.com/campushub/eventline/internal/handler"
	"github.com/campushub/eventline/internal/repository"
)

type HandlerTestSuite struct {
	suite.Suite
	pool    *pgxpool.Pool
	handler *handler.Handler
	mux     *http.ServeMux

	// Test fixtures
	adminToken       string
	organizerID      string
	organizerToken   string
	participantID    string
	participantToken string
}

func (s *HandlerTestSuite) SetupSuite() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		s.T().Skip("DATABASE_URL not set, skipping handler integration tests")
	}

	ctx := context.Background()
	db, err := database.New(ctx, databaseURL)
	s.Require().NoError(err)
	s.pool = db.Pool()

	err = database.RunMigrations(ctx, s.pool)
	s.Require().NoError(err)

	s.handler = handler.New(s.pool, handler.Config{
		SessionTTL:     time.Hour,
		StatusInterval: 5 * time.Minute,
		StatusEnabled:  false,
	})
	s.mux = http.NewServeMux()
	s.handler.RegisterRoutes(s.mux)
}

func (s *HandlerTestSuite) SetupTest() {
	ctx := context.Background()

	_, err := s.pool.Exec(ctx,
		"TRUNCATE users, sessions, events, enrollments, certificates, chat_messages, request_logs CASCADE")
	s.Require().NoError(err)

	_, err = s.pool.Exec(ctx, `
		INSERT INTO users (id, email, full_name, role)
		VALUES
			('00000000-0000-0000-0000-000000000001', 'admin@uni.edu', 'Admin', 'admin'),
			('00000000-0000-0000-0000-000000000002', 'organizer@uni.edu', 'Organizer', 'organizer'),
			('00000000-0000-0000-0000-000000000003', 'student@uni.edu', 'Student', 'participant')
	`)
	s.Require().NoError(err)
	s.organizerID = "00000000-0000-0000-0000-000000000002"
	s.participantID = "00000000-0000-0000-0000-000000000003"

	_, err = s.pool.Exec(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES
			('00000000-0000-0000-0000-000000000011', '00000000-0000-0000-0000-000000000001', NOW() + INTERVAL '1 hour'),
			('00000000-0000-0000-0000-000000000012', '00000000-0000-0000-0000-000000000002', NOW() + INTERVAL '1 hour'),
			('00000000-0000-0000-0000-000000000013', '00000000-0000-0000-0000-000000000003', NOW() + INTERVAL '1 hour')
	`)
	s.Require().NoError(err)
	s.adminToken = "00000000-0000-0000-0000-000000000011"
	s.organizerToken = "00000000-0000-0000-0000-000000000012"
	s.participantToken = "00000000-0000-0000-0000-000000000013"
}

func (s *HandlerTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// makeRequest performs a request against the registered routes.
func (s *HandlerTestSuite) makeRequest(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

// createEvent inserts an event directly and returns its ID.
func (s *HandlerTestSuite) createEvent(scheduledAt time.Time, status string) string {
	var eventID string
	err := s.pool.QueryRow(context.Background(), `
		INSERT INTO events (organizer_id, title, scheduled_at, status, completed_at)
		VALUES ($1, 'Robotics workshop', $2, $3,
			CASE WHEN $3 = 'completed' THEN NOW() END)
		RETURNING id
	`, s.organizerID, scheduledAt, status).Scan(&eventID)
	s.Require().NoError(err)
	return eventID
}

func (s *HandlerTestSuite) TestSignupLoginRoundtrip() {
	w := s.makeRequest(http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":     "new@uni.edu",
		"password":  "hunter2hunter2",
		"full_name": "New Student",
	})
	s.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "new@uni.edu",
		"password": "hunter2hunter2",
	})
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.NotEmpty(resp.Token)
	s.Equal("participant", resp.User.Role)
}

func (s *HandlerTestSuite) TestLogin_WrongPassword() {
	w := s.makeRequest(http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":     "new@uni.edu",
		"password":  "hunter2hunter2",
		"full_name": "New Student",
	})
	s.Equal(http.StatusCreated, w.Code)

	w = s.makeRequest(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "new@uni.edu",
		"password": "wrong-password",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestFederatedLogin_CreatesAccountOnce() {
	body := map[string]string{
		"provider": "campus-sso",
		"token":    "u-42:ada@uni.edu:Ada Lovelace",
	}

	w := s.makeRequest(http.MethodPost, "/api/v1/auth/federated", "", body)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodPost, "/api/v1/auth/federated", "", body)
	s.Equal(http.StatusOK, w.Code)

	var count int
	err := s.pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM users WHERE email = 'ada@uni.edu'").Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *HandlerTestSuite) TestCreateEvent_RequiresOrganizerRole() {
	body := map[string]interface{}{
		"title":        "Open lecture",
		"scheduled_at": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	}

	w := s.makeRequest(http.MethodPost, "/api/v1/events", s.participantToken, body)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.makeRequest(http.MethodPost, "/api/v1/events", s.organizerToken, body)
	s.Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Status            string `json:"status"`
		StatusUpdateCount int    `json:"status_update_count"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("upcoming", resp.Status)
	s.Equal(0, resp.StatusUpdateCount)
}

func (s *HandlerTestSuite) TestCancelEvent_IsTerminal() {
	eventID := s.createEvent(time.Now().Add(24*time.Hour), "upcoming")

	w := s.makeRequest(http.MethodPost, "/api/v1/events/"+eventID+"/cancel", s.organizerToken, nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	// Cancelling again conflicts.
	w = s.makeRequest(http.MethodPost, "/api/v1/events/"+eventID+"/cancel", s.organizerToken, nil)
	s.Equal(http.StatusConflict, w.Code)

	// A manual status-update pass must leave the cancelled event alone.
	w = s.makeRequest(http.MethodPost, "/api/v1/admin/status-updates", s.adminToken, nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	repo := repository.NewEventRepository(s.pool)
	event, err := repo.GetByID(context.Background(), eventID)
	s.Require().NoError(err)
	s.Equal("cancelled", string(event.Status))
	s.Nil(event.LastStatusUpdate)
	s.Equal(0, event.StatusUpdateCount)
}

func (s *HandlerTestSuite) TestRescheduleCompletedEvent_Rejected() {
	eventID := s.createEvent(time.Now().Add(-2*time.Hour), "completed")

	w := s.makeRequest(http.MethodPatch, "/api/v1/events/"+eventID, s.organizerToken, map[string]string{
		"scheduled_at": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	s.Equal(http.StatusConflict, w.Code, w.Body.String())
}

func (s *HandlerTestSuite) TestStatusUpdatePass_TransitionsStaleEvents() {
	pastID := s.createEvent(time.Now().Add(-45*time.Minute), "upcoming")
	futureID := s.createEvent(time.Now().Add(2*time.Hour), "upcoming")

	w := s.makeRequest(http.MethodPost, "/api/v1/admin/status-updates", s.adminToken, nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Updated     int            `json:"updated"`
		Transitions map[string]int `json:"transitions"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(1, resp.Updated)
	s.Equal(1, resp.Transitions["completed"])

	repo := repository.NewEventRepository(s.pool)

	past, err := repo.GetByID(context.Background(), pastID)
	s.Require().NoError(err)
	s.Equal("completed", string(past.Status))
	s.NotNil(past.CompletedAt)
	s.Equal(1, past.StatusUpdateCount)

	future, err := repo.GetByID(context.Background(), futureID)
	s.Require().NoError(err)
	s.Equal("upcoming", string(future.Status))
	s.Nil(future.CompletedAt)
}

func (s *HandlerTestSuite) TestStatusUpdateEndpoints_RequireAdmin() {
	w := s.makeRequest(http.MethodPost, "/api/v1/admin/status-updates", s.organizerToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.makeRequest(http.MethodGet, "/api/v1/admin/status-updates", s.adminToken, nil)
	s.Equal(http.StatusOK, w.Code)

	var resp struct {
		IsRunning bool   `json:"is_running"`
		Enabled   bool   `json:"enabled"`
		Interval  string `json:"update_interval"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.IsRunning)
	s.False(resp.Enabled)
	s.Equal("5m0s", resp.Interval)
}

func (s *HandlerTestSuite) TestIssueCertificate_RequiresEnrollmentAndCompletion() {
	eventID := s.createEvent(time.Now().Add(-2*time.Hour), "completed")

	body := map[string]string{"event_id": eventID, "user_id": s.participantID}

	// Not enrolled yet.
	w := s.makeRequest(http.MethodPost, "/api/v1/certificates", s.organizerToken, body)
	s.Equal(http.StatusConflict, w.Code, w.Body.String())

	_, err := s.pool.Exec(context.Background(),
		"INSERT INTO enrollments (event_id, user_id) VALUES ($1, $2)", eventID, s.participantID)
	s.Require().NoError(err)

	w = s.makeRequest(http.MethodPost, "/api/v1/certificates", s.organizerToken, body)
	s.Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID     string `json:"id"`
		Serial string `json:"serial"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.NotEmpty(resp.Serial)

	// Double issuance conflicts.
	w = s.makeRequest(http.MethodPost, "/api/v1/certificates", s.organizerToken, body)
	s.Equal(http.StatusConflict, w.Code)

	// Record is retrievable.
	w = s.makeRequest(http.MethodGet, "/api/v1/certificates/"+resp.ID, s.participantToken, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestIssueCertificate_RejectedForOngoingEvent() {
	eventID := s.createEvent(time.Now().Add(-10*time.Minute), "ongoing")

	_, err := s.pool.Exec(context.Background(),
		"INSERT INTO enrollments (event_id, user_id) VALUES ($1, $2)", eventID, s.participantID)
	s.Require().NoError(err)

	w := s.makeRequest(http.MethodPost, "/api/v1/certificates", s.organizerToken,
		map[string]string{"event_id": eventID, "user_id": s.participantID})
	s.Equal(http.StatusConflict, w.Code, w.Body.String())
}

func (s *HandlerTestSuite) TestChat_StoresBothTurns() {
	w := s.makeRequest(http.MethodPost, "/api/v1/chat", s.participantToken,
		map[string]string{"message": "How do I get my certificate?"})
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Message struct {
			Role string `json:"role"`
		} `json:"message"`
		Reply struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"reply"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("user", resp.Message.Role)
	s.Equal("assistant", resp.Reply.Role)
	s.NotEmpty(resp.Reply.Content)

	var count int
	err := s.pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM chat_messages WHERE user_id = $1", s.participantID).Scan(&count)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *HandlerTestSuite) TestUnauthenticatedRequestsRejected() {
	w := s.makeRequest(http.MethodPost, "/api/v1/chat", "", map[string]string{"message": "hi"})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.makeRequest(http.MethodGet, "/api/v1/events/00000000-0000-0000-0000-000000000099", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestHealthz() {
	w := s.makeRequest(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, w.Code)
}
