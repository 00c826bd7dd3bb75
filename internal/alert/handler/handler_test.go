package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"datasentinel/internal/alert/models"
	"datasentinel/internal/alert/service"
	"datasentinel/internal/alert/store"
)

type AlertHandlerSuite struct {
	suite.Suite
	service *service.Service
	router  chi.Router
}

func TestAlertHandlerSuite(t *testing.T) {
	suite.Run(t, new(AlertHandlerSuite))
}

func (s *AlertHandlerSuite) SetupTest() {
	s.service = service.New(store.New())
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *AlertHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(method, path, reader))
	return w
}

func (s *AlertHandlerSuite) TestAdminRouteIsNotAUserID() {
	s.Require().NoError(s.service.RaiseEscalation(context.Background(), "partner1", 88))

	w := s.do(http.MethodGet, "/alerts/admin", "")
	s.Require().Equal(http.StatusOK, w.Code)
	var alerts []AdminAlertResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&alerts))
	s.Require().Len(alerts, 1)
	s.Equal("user_escalation", alerts[0].Type)
	s.Equal("partner1", alerts[0].Partner)
	s.Equal(88, alerts[0].RiskScore)
}

func (s *AlertHandlerSuite) TestUserAlertsEmptyList() {
	w := s.do(http.MethodGet, "/alerts/user1", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *AlertHandlerSuite) TestRequestAdminAction() {
	w := s.do(http.MethodPost, "/request_admin_action", `{"user_id":"user1","partner_id":"partner2","reason":"spam"}`)
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/alerts/admin", "")
	var alerts []AdminAlertResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&alerts))
	s.Require().Len(alerts, 1)
	s.Equal("user1", alerts[0].User)
	s.Equal("user_request", alerts[0].Source)

	w = s.do(http.MethodPost, "/request_admin_action", `{"user_id":"user1"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *AlertHandlerSuite) TestNotificationsFilter() {
	ctx := context.Background()
	s.Require().NoError(s.service.Notify(ctx, "user1", "partner1", models.LevelWarning, "denied: no_consent"))
	s.Require().NoError(s.service.Notify(ctx, "user2", "partner1", models.LevelInfo, "granted"))

	w := s.do(http.MethodGet, "/user_notifications?user_id=user1", "")
	s.Require().Equal(http.StatusOK, w.Code)
	var ns []NotificationResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&ns))
	s.Require().Len(ns, 1)
	s.True(ns[0].CanEscalate)

	w = s.do(http.MethodGet, "/user_notifications", "")
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&ns))
	s.Len(ns, 2)
}
