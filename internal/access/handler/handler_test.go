package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"datasentinel/internal/access/handler/mocks"
	"datasentinel/internal/access/models"
	"datasentinel/internal/access/service"
	"datasentinel/internal/audit"
	dErrors "datasentinel/pkg/domain-errors"
)

type AccessHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestAccessHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccessHandlerSuite))
}

func (s *AccessHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.Register(s.router)
	h.RegisterAdmin(s.router)
}

func (s *AccessHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(method, path, reader))
	return w
}

func (s *AccessHandlerSuite) TestRequestData() {
	expiry := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	s.Run("maps decisions by user", func() {
		s.service.EXPECT().RequestData(gomock.Any(), models.Request{
			PartnerID: "acme", Region: "EU", Purpose: "watermark", DaysValid: 30,
			UserIDs: []string{"user1", "user2"},
		}).Return([]models.Decision{
			{PartnerID: "acme", UserID: "user1", Status: models.StatusGranted, Reason: models.ReasonAllChecksPassed, Expiry: &expiry},
			{PartnerID: "acme", UserID: "user2", Status: models.StatusDenied, Reason: models.ReasonNoConsent},
		}, nil)

		w := s.do(http.MethodPost, "/partner_request_data",
			`{"partner_id":" acme ","region":"EU","purpose":"watermark","days_valid":30,"requested_users":["user1","user2"]}`)
		s.Require().Equal(http.StatusOK, w.Code)

		var resp map[string]DecisionResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("granted", resp["user1"].Status)
		s.Require().NotNil(resp["user1"].Expiry)
		s.Equal("2025-03-01", *resp["user1"].Expiry)
		s.Equal("denied", resp["user2"].Status)
		s.Equal("no_consent", resp["user2"].Reason)
		s.Nil(resp["user2"].Expiry)
	})

	s.Run("rejects requests without users", func() {
		w := s.do(http.MethodPost, "/partner_request_data",
			`{"partner_id":"acme","days_valid":30,"requested_users":[]}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("rejects out of range validity", func() {
		w := s.do(http.MethodPost, "/partner_request_data",
			`{"partner_id":"acme","days_valid":0,"requested_users":["user1"]}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("dependency failure surfaces as 503", func() {
		s.service.EXPECT().RequestData(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeDependency, "risk store unavailable"))
		w := s.do(http.MethodPost, "/partner_request_data",
			`{"partner_id":"acme","days_valid":5,"requested_users":["user1"]}`)
		s.Equal(http.StatusServiceUnavailable, w.Code)
	})
}

func (s *AccessHandlerSuite) TestBulkRequest() {
	s.service.EXPECT().BulkRequestData(gomock.Any(), gomock.Len(2)).Return([]service.BulkResult{
		{PartnerID: "acme", Decisions: []models.Decision{
			{PartnerID: "acme", UserID: "user1", Status: models.StatusDenied, Reason: models.ReasonRestricted},
		}},
		{PartnerID: "globex", Err: dErrors.New(dErrors.CodeValidation, "days_valid out of range")},
	}, nil)

	w := s.do(http.MethodPost, "/bulk_partner_request", `{"requests":[
		{"partner_id":"acme","users":["user1"],"days_valid":10},
		{"partner_id":"globex","users":["user2"],"days_valid":0}
	]}`)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp map[string]map[string]any
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	user1, ok := resp["acme"]["user1"].(map[string]any)
	s.Require().True(ok)
	s.Equal("restricted", user1["reason"])
	s.Equal("validation_error", resp["globex"]["error"])
}

func (s *AccessHandlerSuite) TestGeneratePolicy() {
	s.service.EXPECT().GeneratePolicy(gomock.Any(), "analytics", 90, "EU").Return(&models.Policy{
		Purpose:         "analytics",
		ExpiryDate:      time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		RetentionPolicy: models.RetentionStandard,
		GeoRestriction:  "EU",
	}, nil)

	w := s.do(http.MethodPost, "/generate_policy", `{"purpose":"analytics","days_valid":90,"region":"EU"}`)
	s.Require().Equal(http.StatusOK, w.Code)
	var resp PolicyResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Equal("2025-04-01", resp.ExpiryDate)
	s.Equal("standard", resp.RetentionPolicy)
}

func (s *AccessHandlerSuite) TestRestrictionFlow() {
	requested := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	s.Run("request restriction is accepted as pending", func() {
		s.service.EXPECT().RequestRestriction(gomock.Any(), "acme", "user1").
			Return(&models.RestrictionRequest{PartnerID: "acme", UserID: "user1", RequestedAt: requested}, nil)
		w := s.do(http.MethodPost, "/request_restriction", `{"partner_id":"acme","user_id":"user1"}`)
		s.Require().Equal(http.StatusAccepted, w.Code)
		var resp RestrictionRequestResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("pending", resp.Status)
	})

	s.Run("approve restriction", func() {
		s.service.EXPECT().ApproveRestriction(gomock.Any(), "acme", "user1").
			Return(&models.Restriction{PartnerID: "acme", UserID: "user1"}, nil)
		w := s.do(http.MethodPost, "/approve_restriction", `{"partner_id":"acme","user_id":"user1"}`)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("restrict access defaults to block", func() {
		s.service.EXPECT().SetRestriction(gomock.Any(), "acme", "user1", models.ActionBlock).Return(true, nil)
		w := s.do(http.MethodPost, "/restrict_access", `{"partner_id":"acme","user_id":"user1"}`)
		s.Require().Equal(http.StatusOK, w.Code)
		var resp RestrictResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.True(resp.Changed)
		s.Equal("block", resp.Action)
	})

	s.Run("restrict access rejects unknown action", func() {
		w := s.do(http.MethodPost, "/restrict_access", `{"partner_id":"acme","user_id":"user1","action":"nuke"}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("partner-wide unblock", func() {
		s.service.EXPECT().RestrictPartner(gomock.Any(), "acme", models.ActionUnblock).Return(false, nil)
		w := s.do(http.MethodPost, "/restrict_partner_access", `{"partner_id":"acme","action":"UNBLOCK"}`)
		s.Require().Equal(http.StatusOK, w.Code)
		var resp RestrictResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal(models.AllUsers, resp.UserID)
		s.False(resp.Changed)
	})

	s.Run("lists restriction requests", func() {
		approved := requested.Add(time.Hour)
		s.service.EXPECT().RestrictionRequests(gomock.Any()).Return([]*models.RestrictionRequest{
			{PartnerID: "acme", UserID: "user1", RequestedAt: requested, ApprovedAt: &approved},
		}, nil)
		w := s.do(http.MethodGet, "/restriction_requests", "")
		s.Require().Equal(http.StatusOK, w.Code)
		var resp []RestrictionRequestResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Require().Len(resp, 1)
		s.Equal("approved", resp[0].Status)
	})
}

func (s *AccessHandlerSuite) TestUserViews() {
	s.Run("access history", func() {
		at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		s.service.EXPECT().AccessHistory(gomock.Any(), "user1").Return([]audit.Entry{
			{Kind: audit.KindAccessDecision, PartnerID: "acme", UserID: "user1", Outcome: "denied", Reason: "high_risk", Subject: "policy", OccurredAt: at},
		}, nil)
		w := s.do(http.MethodGet, "/user_access_history/user1", "")
		s.Require().Equal(http.StatusOK, w.Code)
		var resp []HistoryEntry
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Require().Len(resp, 1)
		s.Equal("high_risk", resp[0].Reason)
		s.Equal("acme", resp[0].PartnerID)
	})

	s.Run("restricted partners", func() {
		s.service.EXPECT().RestrictedPartners(gomock.Any(), "user1").Return([]string{"acme", "globex"}, nil)
		w := s.do(http.MethodGet, "/user_restricted_partners/user1", "")
		s.Require().Equal(http.StatusOK, w.Code)
		var resp []string
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal([]string{"acme", "globex"}, resp)
	})

	s.Run("rejects malformed user id", func() {
		w := s.do(http.MethodGet, "/user_restricted_partners/a%20b", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}
