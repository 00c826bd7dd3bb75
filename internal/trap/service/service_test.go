package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	alertservice "datasentinel/internal/alert/service"
	alertstore "datasentinel/internal/alert/store"
	"datasentinel/internal/audit"
	"datasentinel/internal/honeytoken/generator"
	htmodels "datasentinel/internal/honeytoken/models"
	htservice "datasentinel/internal/honeytoken/service"
	htstore "datasentinel/internal/honeytoken/store"
	riskmodels "datasentinel/internal/risk/models"
	riskservice "datasentinel/internal/risk/service"
	riskstore "datasentinel/internal/risk/store"
	"datasentinel/internal/trap/models"
	"datasentinel/internal/trap/service/mocks"
	"datasentinel/internal/watermark/codec"
	wmservice "datasentinel/internal/watermark/service"
	wmstore "datasentinel/internal/watermark/store"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/requestcontext"
	"datasentinel/pkg/testutil"
)

type TrapServiceSuite struct {
	suite.Suite
	ctx         context.Context
	now         time.Time
	honeytokens *htservice.Service
	watermarks  *wmservice.Service
	risk        *riskservice.Engine
	alerts      *alertservice.Service
	auditor     *audit.Publisher
	service     *Service
}

func TestTrapServiceSuite(t *testing.T) {
	suite.Run(t, new(TrapServiceSuite))
}

func (s *TrapServiceSuite) SetupTest() {
	s.now = time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.ctx = requestcontext.WithClientMetadata(s.ctx, "10.0.0.7", "Mozilla/5.0")

	c, err := codec.New("trap-secret", 0)
	s.Require().NoError(err)
	s.auditor = audit.NewPublisher(audit.NewInMemoryStore())
	s.honeytokens = htservice.New(htstore.New(), generator.New())
	s.watermarks = wmservice.New(wmstore.New(), c, s.auditor)
	s.risk = riskservice.New(riskstore.New())
	s.alerts = alertservice.New(alertstore.New())
	s.service = New(s.honeytokens, s.watermarks, s.risk, s.auditor, WithAlerter(s.alerts))
}

func (s *TrapServiceSuite) TestNoMatchIsNotAnError() {
	result, err := s.service.TestValue(s.ctx, "partner1", "nobody@example.com")
	s.Require().NoError(err)
	s.False(result.Hit)
	s.Equal(models.MatchNone, result.Match)
	s.Nil(result.Score)

	score, err := s.risk.GetScore(s.ctx, "partner1")
	s.Require().NoError(err)
	s.Zero(score.Score)
}

func (s *TrapServiceSuite) TestHoneytokenHitAttributesAndScores() {
	token, err := s.honeytokens.Create(s.ctx, htmodels.TypeEmail)
	s.Require().NoError(err)

	result, err := s.service.TestValue(s.ctx, "partner1", token.Value)
	s.Require().NoError(err)
	s.True(result.Hit)
	s.Equal(models.MatchHoneytoken, result.Match)
	s.Equal("partner1", result.PartnerID)
	s.False(result.Mismatch)
	s.Equal(20, result.Score.Score)

	stored, err := s.honeytokens.Get(s.ctx, token.ID)
	s.Require().NoError(err)
	s.Equal("partner1", stored.AssignedPartner)

	hits, err := s.service.Logs(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(hits, 1)
	s.Equal(token.ID, hits[0].Subject)
	s.Equal("10.0.0.7", hits[0].IP)
	s.Equal(20, hits[0].RiskDelta)
}

func (s *TrapServiceSuite) TestHoneytokenMatchIsExact() {
	token, err := s.honeytokens.Create(s.ctx, htmodels.TypeEmail)
	s.Require().NoError(err)

	for _, variant := range []string{" " + token.Value, token.Value + "\n", strings.ToUpper(token.Value)} {
		result, err := s.service.TestValue(s.ctx, "partner1", variant)
		s.Require().NoError(err)
		s.False(result.Hit, "variant %q", variant)
	}

	stored, err := s.honeytokens.Get(s.ctx, token.ID)
	s.Require().NoError(err)
	s.Empty(stored.AssignedPartner)
}

func (s *TrapServiceSuite) TestHoneytokenKeepsFirstAttribution() {
	token, err := s.honeytokens.Create(s.ctx, htmodels.TypeID)
	s.Require().NoError(err)
	_, err = s.service.TestValue(s.ctx, "partner1", token.Value)
	s.Require().NoError(err)

	result, err := s.service.TestValue(s.ctx, "partner2", token.Value)
	s.Require().NoError(err)
	s.True(result.Mismatch)
	s.Equal("partner1", result.PartnerID)
	s.Contains(result.Detail, "warning")

	p1, err := s.risk.GetScore(s.ctx, "partner1")
	s.Require().NoError(err)
	s.Equal(40, p1.Score)
	p2, err := s.risk.GetScore(s.ctx, "partner2")
	s.Require().NoError(err)
	s.Zero(p2.Score)
}

func (s *TrapServiceSuite) TestWatermarkResolvedPartnerTakesPrecedence() {
	wm, err := s.watermarks.Generate(s.ctx, "partner1", "user2", s.now.Add(-time.Hour))
	s.Require().NoError(err)

	result, err := s.service.TestValue(s.ctx, "partner3", wm.Marker)
	s.Require().NoError(err)
	s.True(result.Hit)
	s.Equal(models.MatchWatermark, result.Match)
	s.Equal("partner1", result.PartnerID)
	s.Equal("partner3", result.SubmittedPartner)
	s.Equal("user2", result.UserID)
	s.True(result.Mismatch)

	alerts, err := s.alerts.UserAlerts(s.ctx, "user2")
	s.Require().NoError(err)
	s.Len(alerts, 1)

	byUser, err := s.service.Logs(s.ctx, "user2")
	s.Require().NoError(err)
	s.Len(byUser, 1)
}

func (s *TrapServiceSuite) TestValidation() {
	cases := []struct {
		name      string
		partnerID string
		value     string
	}{
		{"empty value", "partner1", "   "},
		{"empty partner", "", "x"},
		{"wildcard partner", "*", "x"},
		{"partner with spaces", "bad partner", "x"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.TestValue(s.ctx, tc.partnerID, tc.value)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func (s *TrapServiceSuite) TestSimulateHit() {
	s.Run("partner without attributed tokens misses by default", func() {
		result, err := s.service.SimulateHit(s.ctx, "partner2", "user1")
		s.Require().NoError(err)
		s.False(result.TrapHit)
		s.Zero(result.Score.Score)
	})

	s.Run("partner holding an attributed token always hits", func() {
		token, err := s.honeytokens.Create(s.ctx, htmodels.TypePhone)
		s.Require().NoError(err)
		_, err = s.honeytokens.MarkUsed(s.ctx, token.ID, "partner1")
		s.Require().NoError(err)

		for i := 1; i <= 6; i++ {
			result, err := s.service.SimulateHit(s.ctx, "partner1", "user1")
			s.Require().NoError(err)
			s.True(result.TrapHit)
			s.Equal(min(100, 20*i), result.Score.Score)
		}

		ns, err := s.alerts.Notifications(s.ctx, "user1")
		s.Require().NoError(err)
		s.Len(ns, 6)
	})

	s.Run("probability decides for other partners", func() {
		svc := New(s.honeytokens, s.watermarks, s.risk, s.auditor,
			WithHitProbability(0.5), WithRand(func() float64 { return 0.2 }), WithRiskDelta(15))
		result, err := svc.SimulateHit(s.ctx, "partner4", "user3")
		s.Require().NoError(err)
		s.True(result.TrapHit)
		s.Equal(15, result.Score.Score)
	})
}

func (s *TrapServiceSuite) TestConcurrentHitsDoNotLoseIncrements() {
	token, err := s.honeytokens.Create(s.ctx, htmodels.TypeName)
	s.Require().NoError(err)

	result := testutil.RunConcurrent(4, func(int) error {
		_, err := s.service.TestValue(s.ctx, "partner1", token.Value)
		return err
	})
	s.Equal(int32(4), result.Successes)

	score, err := s.risk.GetScore(s.ctx, "partner1")
	s.Require().NoError(err)
	s.Equal(80, score.Score)
}

func (s *TrapServiceSuite) TestAuditFailureLeavesScoreUntouched() {
	ctrl := gomock.NewController(s.T())
	auditor := mocks.NewMockAuditor(ctrl)
	risk := mocks.NewMockRisk(ctrl)
	honeytokens := mocks.NewMockHoneytokens(ctrl)

	token := &htmodels.Honeytoken{ID: "ht-1", Type: htmodels.TypeEmail, Value: "a@trap.test", AssignedPartner: "partner1"}
	honeytokens.EXPECT().ResolveUsage(gomock.Any(), token.Value).Return(&htmodels.Usage{IsKnown: true, Token: token}, nil)
	honeytokens.EXPECT().MarkUsed(gomock.Any(), "ht-1", "partner1").Return(token, nil)
	auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(audit.Entry{}, errors.New("disk full"))
	risk.EXPECT().RecordEvent(gomock.Any(), gomock.Any()).Times(0)

	svc := New(honeytokens, mocks.NewMockWatermarks(ctrl), risk, auditor)
	_, err := svc.TestValue(s.ctx, "partner1", token.Value)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *TrapServiceSuite) TestTrapEventCarriesClientMetadata() {
	ctrl := gomock.NewController(s.T())
	risk := mocks.NewMockRisk(ctrl)
	honeytokens := mocks.NewMockHoneytokens(ctrl)

	honeytokens.EXPECT().AssignedTo(gomock.Any(), "partner1").
		Return([]*htmodels.Honeytoken{{ID: "ht-9", AssignedPartner: "partner1"}}, nil)
	risk.EXPECT().RecordEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev riskmodels.TrapEvent) (*riskmodels.Score, error) {
			s.Equal("ht-9", ev.Matched)
			s.Equal("10.0.0.7", ev.IP)
			s.Equal("Mozilla/5.0", ev.UserAgent)
			s.Equal(s.now, ev.Timestamp)
			s.Equal(models.DefaultRiskDelta, ev.RiskDelta)
			return &riskmodels.Score{PartnerID: "partner1", Score: 20}, nil
		})

	svc := New(honeytokens, mocks.NewMockWatermarks(ctrl), risk, s.auditor)
	result, err := svc.SimulateHit(s.ctx, "partner1", "user1")
	s.Require().NoError(err)
	s.True(result.TrapHit)
}
