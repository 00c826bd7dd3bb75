package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"datasentinel/internal/audit"
	"datasentinel/internal/watermark/codec"
	"datasentinel/internal/watermark/service"
	"datasentinel/internal/watermark/store"
)

// WatermarkHandlerSuite drives the handler against the real service and
// in-memory stores.
type WatermarkHandlerSuite struct {
	suite.Suite
	router chi.Router
}

func TestWatermarkHandlerSuite(t *testing.T) {
	suite.Run(t, new(WatermarkHandlerSuite))
}

func (s *WatermarkHandlerSuite) SetupTest() {
	c, err := codec.New("handler-secret", 0)
	s.Require().NoError(err)
	svc := service.New(store.New(), c, audit.NewPublisher(audit.NewInMemoryStore()))
	s.router = chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *WatermarkHandlerSuite) post(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload)))
	return w
}

func (s *WatermarkHandlerSuite) TestGenerateThenVerify() {
	w := s.post("/generate_watermark", map[string]string{
		"partner_id": "partner1",
		"user_id":    "user2",
		"timestamp":  "2024-01-01T00:00:00Z",
	})
	s.Require().Equal(http.StatusOK, w.Code)
	var generated GenerateResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&generated))
	s.Regexp(`^wm_[0-9a-f]{32}$`, generated.Watermark)

	w = s.post("/verify_watermark", map[string]string{"watermark": generated.Watermark})
	s.Require().Equal(http.StatusOK, w.Code)
	var verified VerifyResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&verified))
	s.Equal("partner1", verified.Culprit)
	s.Equal("2024-01-01T00:00:00Z", verified.Timestamp)

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/decode_log", nil))
	s.Require().Equal(http.StatusOK, w.Code)
	var log []DecodeLogEntry
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&log))
	s.Require().Len(log, 1)
	s.Equal(generated.Watermark, log[0].Leaked)
	s.Equal("partner1", log[0].Culprit)
	s.Equal("2024-01-01T00:00:00Z", log[0].Timestamp)
}

func (s *WatermarkHandlerSuite) TestVerifyUnknownIsNotFound() {
	w := s.post("/verify_watermark", map[string]string{"watermark": "wm_00000000000000000000000000000000"})
	s.Equal(http.StatusNotFound, w.Code)
	s.Contains(w.Body.String(), "not_found")

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/decode_log", nil))
	s.JSONEq(`[]`, w.Body.String())
}

func (s *WatermarkHandlerSuite) TestValidation() {
	cases := []struct {
		name string
		path string
		body map[string]string
	}{
		{"missing partner", "/generate_watermark", map[string]string{"user_id": "user1"}},
		{"partner with spaces", "/generate_watermark", map[string]string{"partner_id": "partner 1", "user_id": "user1"}},
		{"bad timestamp", "/generate_watermark", map[string]string{"partner_id": "p", "user_id": "u", "timestamp": "yesterday"}},
		{"blank watermark", "/verify_watermark", map[string]string{"watermark": " "}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			w := s.post(tc.path, tc.body)
			s.Equal(http.StatusBadRequest, w.Code)
		})
	}
}
