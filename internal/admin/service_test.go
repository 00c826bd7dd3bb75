package admin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	accessmodels "datasentinel/internal/access/models"
	accessservice "datasentinel/internal/access/service"
	accessstore "datasentinel/internal/access/store"
	"datasentinel/internal/audit"
	consentmodels "datasentinel/internal/consent/models"
	consentservice "datasentinel/internal/consent/service"
	consentstore "datasentinel/internal/consent/store"
	"datasentinel/internal/honeytoken/generator"
	htmodels "datasentinel/internal/honeytoken/models"
	htservice "datasentinel/internal/honeytoken/service"
	htstore "datasentinel/internal/honeytoken/store"
	riskmodels "datasentinel/internal/risk/models"
	riskservice "datasentinel/internal/risk/service"
	riskstore "datasentinel/internal/risk/store"
	"datasentinel/pkg/requestcontext"
)

type AdminSuite struct {
	suite.Suite
	ctx         context.Context
	now         time.Time
	auditor     *audit.Publisher
	risk        *riskservice.Engine
	access      *accessservice.Service
	honeytokens *htservice.Service
	service     *Service
}

func TestAdminSuite(t *testing.T) {
	suite.Run(t, new(AdminSuite))
}

func (s *AdminSuite) SetupTest() {
	s.now = time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.auditor = audit.NewPublisher(audit.NewInMemoryStore())
	s.risk = riskservice.New(riskstore.New())
	consent := consentservice.New(consentstore.New())
	s.Require().NoError(consent.Seed(s.ctx, &consentmodels.Record{
		UserID: "user1", Watermark: true, Policy: true, ExpiryDate: s.now.AddDate(1, 0, 0),
	}))
	s.access = accessservice.New(accessstore.New(), consent, s.risk, s.auditor)
	s.honeytokens = htservice.New(htstore.New(), generator.New())
	s.service = NewService(s.auditor, s.risk, s.access, s.honeytokens)

	s.seedActivity()
}

func (s *AdminSuite) seedActivity() {
	_, err := s.access.RequestData(s.ctx, accessmodels.Request{
		PartnerID: "partner1", Purpose: "policy", DaysValid: 10, UserIDs: []string{"user1", "user2"},
	})
	s.Require().NoError(err)

	for range 5 {
		_, err := s.risk.RecordEvent(s.ctx, riskmodels.TrapEvent{PartnerID: "partner2", RiskDelta: 20, Timestamp: s.now})
		s.Require().NoError(err)
	}
	_, err = s.auditor.Emit(s.ctx, audit.Entry{
		Kind: audit.KindTrapHit, PartnerID: "partner2", UserID: "user1", Outcome: audit.OutcomeHit, RiskDelta: 20,
	})
	s.Require().NoError(err)

	_, err = s.access.ApproveRestriction(s.ctx, "partner3", "user1")
	s.Require().NoError(err)
	_, err = s.access.RestrictPartner(s.ctx, "partner2", accessmodels.ActionBlock)
	s.Require().NoError(err)
	_, err = s.access.RequestRestriction(s.ctx, "partner1", "user1")
	s.Require().NoError(err)

	token, err := s.honeytokens.Create(s.ctx, htmodels.TypeEmail)
	s.Require().NoError(err)
	_, err = s.honeytokens.MarkUsed(s.ctx, token.ID, "partner2")
	s.Require().NoError(err)
	_, err = s.honeytokens.Create(s.ctx, htmodels.TypeID)
	s.Require().NoError(err)
}

func (s *AdminSuite) TestStats() {
	stats, err := s.service.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, stats.Honeytokens)
	s.Equal(1, stats.AttributedTokens)
	s.Equal(1, stats.HighRiskPartners)
	s.Equal(2, stats.Restrictions)
	s.Equal(1, stats.PendingRestrictions)
	s.Equal(1, stats.TrapHits)
	s.Equal(1, stats.AccessGranted)
	s.Equal(1, stats.AccessDenied)
}

func (s *AdminSuite) TestPartnerActivityOrdersByRisk() {
	partners, err := s.service.PartnerActivity(s.ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(partners)

	s.Equal("partner2", partners[0].PartnerID)
	s.True(partners[0].HighRisk)
	s.True(partners[0].PartnerWide)
	s.Equal(1, partners[0].TrapHits)

	byID := make(map[string]int)
	for i, p := range partners {
		byID[p.PartnerID] = i
	}
	p1 := partners[byID["partner1"]]
	s.Equal(2, p1.Requests)
	s.Equal(1, p1.Granted)
	s.Equal([]string{"user1"}, partners[byID["partner3"]].RestrictedTo)
}

func (s *AdminSuite) TestUserActivity() {
	users, err := s.service.UserActivity(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("user1", users[0].UserID)
	s.Equal(1, users[0].Granted)
	s.Equal(1, users[0].TrapHits)
	s.Equal([]string{"partner3"}, users[0].RestrictedPartners)
	s.Equal(1, users[1].Denied)
}

func (s *AdminSuite) TestRestrictedPartnersDetailed() {
	partners, err := s.service.RestrictedPartnersDetailed(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(partners, 2)
	s.Equal("partner2", partners[0].PartnerID)
	s.True(partners[0].PartnerWide)
	s.Equal(100, partners[0].RiskScore)
	s.Equal([]string{"user1"}, partners[1].Users)
}

func (s *AdminSuite) TestRecentAuditNewestFirst() {
	events, err := s.service.GetRecentAuditEvents(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Greater(events[0].Seq, events[1].Seq)
}

type failingAudit struct{}

func (failingAudit) List(context.Context, audit.Filter) ([]audit.Entry, error) {
	return nil, errors.New("connection reset")
}

func (s *AdminSuite) TestHandlerRoutes() {
	r := chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)

	for _, path := range []string{
		"/admin/stats",
		"/admin/partner_activity_summary",
		"/admin/user_activity_summary",
		"/admin/restricted_partners_detailed",
		"/admin/audit/recent?limit=5",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		s.Equal(http.StatusOK, w.Code, path)
	}

	broken := chi.NewRouter()
	New(NewService(failingAudit{}, s.risk, s.access, s.honeytokens), slog.New(slog.NewTextHandler(io.Discard, nil))).Register(broken)
	w := httptest.NewRecorder()
	broken.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), "connection reset")
}
