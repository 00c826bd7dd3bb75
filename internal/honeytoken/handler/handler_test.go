package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"datasentinel/internal/honeytoken/handler/mocks"
	"datasentinel/internal/honeytoken/models"
)

type HoneytokenHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestHoneytokenHandlerSuite(t *testing.T) {
	suite.Run(t, new(HoneytokenHandlerSuite))
}

func (s *HoneytokenHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *HoneytokenHandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HoneytokenHandlerSuite) TestGenerate() {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Run("defaults to email", func() {
		s.service.EXPECT().Create(gomock.Any(), models.TypeEmail).Return(&models.Honeytoken{
			ID: "t1", Type: models.TypeEmail, Value: "a.b.000001@example.com", CreatedAt: created,
		}, nil)

		w := s.do(http.MethodGet, "/generate_honeytoken", nil)
		s.Equal(http.StatusOK, w.Code)

		var resp HoneytokenResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("t1", resp.ID)
		s.Equal("email", resp.Type)
		s.Equal(created, resp.CreatedAt)
	})

	s.Run("unknown type returns 400 without calling the service", func() {
		w := s.do(http.MethodGet, "/generate_honeytoken?type=passport", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("service failure returns 500", func() {
		s.service.EXPECT().Create(gomock.Any(), models.TypeID).Return(nil, errors.New("boom"))
		w := s.do(http.MethodGet, "/generate_honeytoken?type=ID", nil)
		s.Equal(http.StatusInternalServerError, w.Code)
	})
}

func (s *HoneytokenHandlerSuite) TestTrapInject() {
	s.Run("returns the redacted document and trap value", func() {
		s.service.EXPECT().
			InjectIntoDocument(gomock.Any(), "Name: [REDACTED]", models.TypeName).
			Return(&models.InjectResult{RedactedDocument: "Name: Ada L. Byron", TrapValue: "Ada L. Byron"}, nil)

		w := s.do(http.MethodPost, "/trap_inject", map[string]string{"document": "Name: [REDACTED]", "trap_type": "name"})
		s.Equal(http.StatusOK, w.Code)

		var resp TrapInjectResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("Name: Ada L. Byron", resp.RedactedDocument)
		s.Equal("Ada L. Byron", resp.TrapValue)
	})

	s.Run("blank document returns 400", func() {
		w := s.do(http.MethodPost, "/trap_inject", map[string]string{"document": "  ", "trap_type": "email"})
		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), "document must not be blank")
	})

	s.Run("invalid trap type returns 400", func() {
		w := s.do(http.MethodPost, "/trap_inject", map[string]string{"document": "x", "trap_type": "ssn"})
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HoneytokenHandlerSuite) TestKnownHoneytokens() {
	at := time.Now().UTC()
	s.service.EXPECT().List(gomock.Any()).Return([]*models.Honeytoken{
		{ID: "t1", Type: models.TypeEmail, Value: "a@example.com", CreatedAt: at},
		{ID: "t2", Type: models.TypeID, Value: "HT-ABC", CreatedAt: at, AssignedPartner: "partner1", AssignedAt: &at},
	}, nil)

	w := s.do(http.MethodGet, "/known_honeytokens", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp map[string]map[string]any
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Require().Len(resp, 2)
	s.Nil(resp["a@example.com"]["partner_id"])
	s.Equal("partner1", resp["HT-ABC"]["partner_id"])
	s.Equal("id", resp["HT-ABC"]["type"])
}
