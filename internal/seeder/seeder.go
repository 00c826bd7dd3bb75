package seeder

import (
	"context"
	"fmt"
	"log/slog"

	accessmodels "datasentinel/internal/access/models"
	consentmodels "datasentinel/internal/consent/models"
	"datasentinel/internal/platform/config"
)

// ConsentStore defines how consent records are seeded.
type ConsentStore interface {
	Seed(ctx context.Context, record *consentmodels.Record) error
}

// Restrictions defines how restrictions are seeded.
type Restrictions interface {
	ApproveRestriction(ctx context.Context, partnerID, userID string) (*accessmodels.Restriction, error)
	RestrictPartner(ctx context.Context, partnerID string, action accessmodels.Action) (bool, error)
}

// Seeder loads bootstrap consent and restriction state at startup.
type Seeder struct {
	consents     ConsentStore
	restrictions Restrictions
	logger       *slog.Logger
}

func New(consents ConsentStore, restrictions Restrictions, logger *slog.Logger) *Seeder {
	return &Seeder{
		consents:     consents,
		restrictions: restrictions,
		logger:       logger,
	}
}

// SeedAll applies seed. Re-running it is harmless: consent records are
// replaced and restrictions are idempotent.
func (s *Seeder) SeedAll(ctx context.Context, seed *config.Seed) error {
	if seed == nil {
		return nil
	}
	s.logger.Info("seeding bootstrap data...")

	if err := s.seedConsents(ctx, seed.Consents); err != nil {
		return fmt.Errorf("failed to seed consents: %w", err)
	}
	restricted, err := s.seedRestrictions(ctx, seed.Restrictions)
	if err != nil {
		return fmt.Errorf("failed to seed restrictions: %w", err)
	}

	s.logger.Info("bootstrap data seeded",
		"consents", len(seed.Consents),
		"restrictions", restricted,
	)
	return nil
}

func (s *Seeder) seedConsents(ctx context.Context, consents []config.SeedConsent) error {
	for _, c := range consents {
		expiry, err := c.Expiry()
		if err != nil {
			return err
		}
		record := &consentmodels.Record{
			UserID:     c.UserID,
			Watermark:  c.Watermark,
			Policy:     c.Policy,
			Honeytoken: c.Honeytoken,
			ExpiryDate: expiry,
		}
		if err := s.consents.Seed(ctx, record); err != nil {
			return fmt.Errorf("consent %s: %w", c.UserID, err)
		}
	}
	return nil
}

func (s *Seeder) seedRestrictions(ctx context.Context, restrictions []config.SeedRestriction) (int, error) {
	count := 0
	for _, r := range restrictions {
		for _, userID := range r.Users {
			if userID == accessmodels.AllUsers {
				if _, err := s.restrictions.RestrictPartner(ctx, r.PartnerID, accessmodels.ActionBlock); err != nil {
					return count, fmt.Errorf("partner %s: %w", r.PartnerID, err)
				}
			} else if _, err := s.restrictions.ApproveRestriction(ctx, r.PartnerID, userID); err != nil {
				return count, fmt.Errorf("partner %s user %s: %w", r.PartnerID, userID, err)
			}
			count++
		}
	}
	return count, nil
}
