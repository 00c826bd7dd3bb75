package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"datasentinel/internal/honeytoken/generator"
	"datasentinel/internal/honeytoken/metrics"
	"datasentinel/internal/honeytoken/models"
	"datasentinel/internal/honeytoken/service/mocks"
	"datasentinel/internal/honeytoken/store"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/platform/sentinel"
	"datasentinel/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *store.InMemoryStore
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.New()
	s.service = New(s.store, generator.New(), WithMetrics(metrics.NewWith(prometheus.NewRegistry())))
}

func (s *ServiceSuite) TestCreate() {
	s.Run("every type produces a stored unassigned token", func() {
		for _, typ := range models.Types {
			token, err := s.service.Create(s.ctx, typ)
			s.Require().NoError(err)
			s.Equal(typ, token.Type)
			s.NotEmpty(token.Value)
			s.False(token.IsAssigned())
			s.False(token.CreatedAt.IsZero())
		}
	})

	s.Run("unknown type is a validation error", func() {
		_, err := s.service.Create(s.ctx, models.Type("passport"))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("created_at follows the request clock", func() {
		pinned := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
		token, err := s.service.Create(requestcontext.WithTime(s.ctx, pinned), models.TypeID)
		s.Require().NoError(err)
		s.Equal(pinned, token.CreatedAt)
	})
}

func (s *ServiceSuite) TestCreateRetriesOnCollision() {
	ctrl := gomock.NewController(s.T())
	gen := mocks.NewMockGenerator(ctrl)
	st := mocks.NewMockStore(ctrl)
	svc := New(st, gen, WithMaxAttempts(3))

	gomock.InOrder(
		gen.EXPECT().Generate(models.TypeEmail).Return("taken@example.com", nil),
		st.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict),
		gen.EXPECT().Generate(models.TypeEmail).Return("fresh@example.com", nil),
		st.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
	)

	token, err := svc.Create(s.ctx, models.TypeEmail)
	s.Require().NoError(err)
	s.Equal("fresh@example.com", token.Value)
}

func (s *ServiceSuite) TestCreateGivesUpAfterMaxAttempts() {
	ctrl := gomock.NewController(s.T())
	gen := mocks.NewMockGenerator(ctrl)
	st := mocks.NewMockStore(ctrl)
	svc := New(st, gen, WithMaxAttempts(2))

	gen.EXPECT().Generate(models.TypeID).Return("HT-SAME", nil).Times(2)
	st.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict).Times(2)

	_, err := svc.Create(s.ctx, models.TypeID)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestInjectIntoDocument() {
	s.Run("replaces the placeholder", func() {
		doc := "Customer contact: " + Placeholder + ". Do not share."
		result, err := s.service.InjectIntoDocument(s.ctx, doc, models.TypeEmail)
		s.Require().NoError(err)
		s.NotContains(result.RedactedDocument, Placeholder)
		s.Contains(result.RedactedDocument, result.TrapValue)
		s.True(strings.HasPrefix(result.RedactedDocument, "Customer contact: "))

		usage, err := s.service.ResolveUsage(s.ctx, result.TrapValue)
		s.Require().NoError(err)
		s.True(usage.IsKnown)
	})

	s.Run("appends when no placeholder is present", func() {
		result, err := s.service.InjectIntoDocument(s.ctx, "quarterly report\n", models.TypePhone)
		s.Require().NoError(err)
		s.Equal("quarterly report\n"+result.TrapValue, result.RedactedDocument)
	})

	s.Run("blank document is rejected", func() {
		_, err := s.service.InjectIntoDocument(s.ctx, "   \n", models.TypeEmail)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestResolveUsageNeverAssigns() {
	token, err := s.service.Create(s.ctx, models.TypeName)
	s.Require().NoError(err)

	for range 2 {
		usage, err := s.service.ResolveUsage(s.ctx, token.Value)
		s.Require().NoError(err)
		s.True(usage.IsKnown)
		s.False(usage.Token.IsAssigned())
	}

	usage, err := s.service.ResolveUsage(s.ctx, "never-issued")
	s.Require().NoError(err)
	s.False(usage.IsKnown)
	s.Nil(usage.Token)
}

func (s *ServiceSuite) TestMarkUsedKeepsFirstPartner() {
	token, err := s.service.Create(s.ctx, models.TypeEmail)
	s.Require().NoError(err)

	first, err := s.service.MarkUsed(s.ctx, token.ID, "partner1")
	s.Require().NoError(err)
	second, err := s.service.MarkUsed(s.ctx, token.ID, "partner2")
	s.Require().NoError(err)

	s.Equal("partner1", first.AssignedPartner)
	s.Equal("partner1", second.AssignedPartner)

	assigned, err := s.service.AssignedTo(s.ctx, "partner1")
	s.Require().NoError(err)
	s.Len(assigned, 1)

	_, err = s.service.MarkUsed(s.ctx, "missing", "partner1")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestStoreFailuresAreInternal() {
	ctrl := gomock.NewController(s.T())
	st := mocks.NewMockStore(ctrl)
	svc := New(st, generator.New())

	st.EXPECT().FindByValue(gomock.Any(), "x").Return(nil, errors.New("connection reset"))
	_, err := svc.ResolveUsage(s.ctx, "x")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	st.EXPECT().FindByID(gomock.Any(), "t1").Return(nil, sentinel.ErrNotFound)
	_, err = svc.Get(s.ctx, "t1")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
