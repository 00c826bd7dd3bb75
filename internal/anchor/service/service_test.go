package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"datasentinel/internal/anchor/models"
	"datasentinel/internal/anchor/registry"
	"datasentinel/internal/anchor/service/mocks"
	htmodels "datasentinel/internal/honeytoken/models"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/platform/sentinel"
)

type AnchorServiceSuite struct {
	suite.Suite
	ctx    context.Context
	ctrl   *gomock.Controller
	tokens *mocks.MockHoneytokens
	token  *htmodels.Honeytoken
}

func TestAnchorServiceSuite(t *testing.T) {
	suite.Run(t, new(AnchorServiceSuite))
}

func (s *AnchorServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.tokens = mocks.NewMockHoneytokens(s.ctrl)
	s.token = &htmodels.Honeytoken{
		ID: "ht-1", Type: htmodels.TypeEmail, Value: "jane.doe.a1b2c3@trap.test",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	s.tokens.EXPECT().Get(gomock.Any(), "ht-1").Return(s.token, nil).AnyTimes()
}

func (s *AnchorServiceSuite) TestAnchorIsIdempotent() {
	svc := New(s.tokens, registry.NewInMemory())

	status, err := svc.Status(s.ctx, "ht-1")
	s.Require().NoError(err)
	s.False(status.Registered)

	first, err := svc.Anchor(s.ctx, "ht-1")
	s.Require().NoError(err)
	s.True(first.Created)
	s.Equal(models.Hash(s.token.Value), first.Hash)

	second, err := svc.Anchor(s.ctx, "ht-1")
	s.Require().NoError(err)
	s.False(second.Created)
	s.True(second.Registered)

	status, err = svc.Status(s.ctx, "ht-1")
	s.Require().NoError(err)
	s.True(status.Registered)
}

func (s *AnchorServiceSuite) TestRegistrySendsHashNotValue() {
	reg := mocks.NewMockRegistry(s.ctrl)
	reg.EXPECT().Register(gomock.Any(), models.Hash(s.token.Value), models.Metadata{
		TokenID: "ht-1", Type: "email", CreatedAt: s.token.CreatedAt,
	}).Return(true, nil)

	_, err := New(s.tokens, reg).Anchor(s.ctx, "ht-1")
	s.Require().NoError(err)
}

func (s *AnchorServiceSuite) TestUnavailableRegistryIsDependencyError() {
	reg := mocks.NewMockRegistry(s.ctrl)
	reg.EXPECT().IsRegistered(gomock.Any(), gomock.Any()).
		Return(false, errors.Join(sentinel.ErrUnavailable, errors.New("connection refused")))

	_, err := New(s.tokens, reg).Status(s.ctx, "ht-1")
	s.True(dErrors.HasCode(err, dErrors.CodeDependency))
}

func (s *AnchorServiceSuite) TestRejectedRequestIsInternal() {
	reg := mocks.NewMockRegistry(s.ctrl)
	reg.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, errors.Join(sentinel.ErrInvalidInput, errors.New("400")))

	_, err := New(s.tokens, reg).Anchor(s.ctx, "ht-1")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *AnchorServiceSuite) TestUnknownToken() {
	tokens := mocks.NewMockHoneytokens(s.ctrl)
	tokens.EXPECT().Get(gomock.Any(), "missing").Return(nil, dErrors.New(dErrors.CodeNotFound, "honeytoken not found"))

	_, err := New(tokens, registry.NewInMemory()).Anchor(s.ctx, "missing")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
