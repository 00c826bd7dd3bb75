package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"datasentinel/internal/consent/models"
	"datasentinel/internal/consent/service/mocks"
	"datasentinel/internal/consent/store"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/platform/sentinel"
	"datasentinel/pkg/requestcontext"
	"datasentinel/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	now     time.Time
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.service = New(store.New())
}

func ptr[T any](v T) *T { return &v }

func (s *ServiceSuite) TestUpdateCreatesWithDefaultExpiry() {
	record, err := s.service.Update(s.ctx, "user1", models.Update{Policy: ptr(true)})
	s.Require().NoError(err)
	s.True(record.Policy)
	s.False(record.Watermark)
	s.Equal(models.EndOfDay(s.now.Add(defaultConsentTTL)), record.ExpiryDate)
	s.Equal(s.now, record.UpdatedAt)
}

func (s *ServiceSuite) TestUpdateKeepsUnsetFields() {
	expiry := time.Date(2030, 1, 1, 23, 59, 59, 0, time.UTC)
	_, err := s.service.Update(s.ctx, "user1", models.Update{
		Watermark: ptr(true), Policy: ptr(true), Honeytoken: ptr(true), ExpiryDate: &expiry,
	})
	s.Require().NoError(err)

	record, err := s.service.Update(s.ctx, "user1", models.Update{Policy: ptr(false)})
	s.Require().NoError(err)
	s.True(record.Watermark)
	s.False(record.Policy)
	s.True(record.Honeytoken)
	s.Equal(expiry, record.ExpiryDate)
}

func (s *ServiceSuite) TestUpdateValidation() {
	_, err := s.service.Update(s.ctx, "user1", models.Update{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.Update(s.ctx, "", models.Update{Policy: ptr(true)})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestGet() {
	s.Run("missing record is not found", func() {
		_, err := s.service.Get(s.ctx, "ghost")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("lookup treats missing as nil", func() {
		record, err := s.service.Lookup(s.ctx, "ghost")
		s.Require().NoError(err)
		s.Nil(record)
	})

	s.Run("seeded record is returned", func() {
		s.Require().NoError(s.service.Seed(s.ctx, &models.Record{
			UserID: "user2", Watermark: true, ExpiryDate: s.now.Add(time.Hour),
		}))
		record, err := s.service.Get(s.ctx, "user2")
		s.Require().NoError(err)
		s.True(record.Watermark)
		s.Equal(s.now, record.UpdatedAt)
	})
}

func (s *ServiceSuite) TestConcurrentUpdatesAllApply() {
	const users = 20
	result := testutil.RunConcurrent(users*3, func(idx int) error {
		userID := fmt.Sprintf("user%d", idx%users)
		var u models.Update
		switch idx / users {
		case 0:
			u.Watermark = ptr(true)
		case 1:
			u.Policy = ptr(true)
		default:
			u.Honeytoken = ptr(true)
		}
		_, err := s.service.Update(s.ctx, userID, u)
		return err
	})
	s.Equal(int32(users*3), result.Successes)

	records, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(records, users)
	for _, r := range records {
		s.True(r.Watermark && r.Policy && r.Honeytoken, r.UserID)
	}
}

func (s *ServiceSuite) TestStoreFailures() {
	ctrl := gomock.NewController(s.T())
	st := mocks.NewMockStore(ctrl)
	svc := New(st)

	st.EXPECT().Find(gomock.Any(), "user1").Return(nil, errors.New("connection reset"))
	_, err := svc.Get(s.ctx, "user1")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	st.EXPECT().Find(gomock.Any(), "user1").Return(nil, sentinel.ErrNotFound)
	_, err = svc.Get(s.ctx, "user1")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	st.EXPECT().Execute(gomock.Any(), "user1", gomock.Any()).Return(nil, errors.New("deadlock detected"))
	_, err = svc.Update(s.ctx, "user1", models.Update{Policy: ptr(true)})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
