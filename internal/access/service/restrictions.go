package service

import (
	"context"

	"datasentinel/internal/access/models"
	"datasentinel/internal/audit"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/platform/validation"
	"datasentinel/pkg/requestcontext"
)

const (
	restrictionRequested = "requested"
	restrictionApproved  = "approved"
	restrictionBlocked   = "blocked"
	restrictionUnblocked = "unblocked"
)

// RequestRestriction files a user's request to block a partner. It has no
// effect on access until ApproveRestriction.
func (s *Service) RequestRestriction(ctx context.Context, partnerID, userID string) (*models.RestrictionRequest, error) {
	if err := checkPair(partnerID, userID); err != nil {
		return nil, err
	}
	req, created, err := s.store.SaveRequest(ctx, &models.RestrictionRequest{
		PartnerID:   partnerID,
		UserID:      userID,
		RequestedAt: requestcontext.Now(ctx).UTC(),
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save restriction request")
	}
	if created {
		s.auditRestriction(ctx, partnerID, userID, restrictionRequested)
	}
	return req, nil
}

// ApproveRestriction enforces a restriction for the pair. Approving twice, or
// approving without a pending request, is not an error.
func (s *Service) ApproveRestriction(ctx context.Context, partnerID, userID string) (*models.Restriction, error) {
	if err := checkPair(partnerID, userID); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx).UTC()
	r := &models.Restriction{PartnerID: partnerID, UserID: userID, Reason: restrictionApproved, CreatedAt: now}
	created, err := s.store.Approve(ctx, r, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to approve restriction")
	}
	if created {
		s.changed(ctx, partnerID, userID, restrictionApproved)
	}
	return r, nil
}

// SetRestriction blocks or unblocks one user for a partner. It reports
// whether anything changed.
func (s *Service) SetRestriction(ctx context.Context, partnerID, userID string, action models.Action) (bool, error) {
	if err := checkPair(partnerID, userID); err != nil {
		return false, err
	}
	return s.apply(ctx, partnerID, userID, action)
}

// RestrictPartner blocks or unblocks a partner for every user.
func (s *Service) RestrictPartner(ctx context.Context, partnerID string, action models.Action) (bool, error) {
	if err := checkPartnerID(partnerID); err != nil {
		return false, err
	}
	return s.apply(ctx, partnerID, models.AllUsers, action)
}

func (s *Service) apply(ctx context.Context, partnerID, userID string, action models.Action) (bool, error) {
	switch action {
	case models.ActionBlock:
		created, err := s.store.Add(ctx, &models.Restriction{
			PartnerID: partnerID,
			UserID:    userID,
			Reason:    restrictionBlocked,
			CreatedAt: requestcontext.Now(ctx).UTC(),
		})
		if err != nil {
			return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add restriction")
		}
		if created {
			s.changed(ctx, partnerID, userID, restrictionBlocked)
		}
		return created, nil
	case models.ActionUnblock:
		removed, err := s.store.Remove(ctx, partnerID, userID)
		if err != nil {
			return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lift restriction")
		}
		if removed {
			s.changed(ctx, partnerID, userID, restrictionUnblocked)
		}
		return removed, nil
	default:
		return false, dErrors.New(dErrors.CodeValidation, "action must be block or unblock")
	}
}

func (s *Service) RestrictionRequests(ctx context.Context) ([]*models.RestrictionRequest, error) {
	reqs, err := s.store.ListRequests(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list restriction requests")
	}
	return reqs, nil
}

func (s *Service) changed(ctx context.Context, partnerID, userID, outcome string) {
	if s.metrics != nil {
		s.metrics.IncRestrictionChange(outcome)
	}
	s.auditRestriction(ctx, partnerID, userID, outcome)
}

func (s *Service) auditRestriction(ctx context.Context, partnerID, userID, outcome string) {
	if _, err := s.auditor.Emit(ctx, audit.Entry{
		Kind:      audit.KindRestriction,
		PartnerID: partnerID,
		UserID:    userID,
		Outcome:   outcome,
		IP:        requestcontext.ClientIP(ctx),
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to audit restriction change",
			"request_id", requestcontext.RequestID(ctx),
			"partner_id", partnerID,
			"user_id", userID,
			"outcome", outcome,
			"error", err,
		)
	}
}

func checkPair(partnerID, userID string) error {
	if err := checkPartnerID(partnerID); err != nil {
		return err
	}
	return checkUserID(userID)
}

func checkPartnerID(partnerID string) error {
	if partnerID == models.AllUsers {
		return dErrors.New(dErrors.CodeValidation, "partner_id must name a partner")
	}
	return validation.CheckReference("partner_id", partnerID)
}
