package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Seed describes demo or bootstrap state loaded at startup.
type Seed struct {
	Consents     []SeedConsent     `yaml:"consents"`
	Restrictions []SeedRestriction `yaml:"restrictions"`
}

// SeedConsent is one user's consent record. ExpiryDate uses YYYY-MM-DD.
type SeedConsent struct {
	UserID     string `yaml:"user_id"`
	Watermark  bool   `yaml:"watermark"`
	Policy     bool   `yaml:"policy"`
	Honeytoken bool   `yaml:"honeytoken"`
	ExpiryDate string `yaml:"expiry_date"`
}

// Expiry parses ExpiryDate as the end of that UTC day.
func (c SeedConsent) Expiry() (time.Time, error) {
	d, err := time.Parse(time.DateOnly, c.ExpiryDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("consent %s: invalid expiry_date %q: %w", c.UserID, c.ExpiryDate, err)
	}
	return d.Add(24*time.Hour - time.Second), nil
}

// SeedRestriction lists users blocked for a partner. "*" blocks every user.
type SeedRestriction struct {
	PartnerID string   `yaml:"partner_id"`
	Users     []string `yaml:"users"`
}

// LoadSeed reads a YAML seed file. An empty path yields an empty seed.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return &Seed{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes and validates seed content.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for _, c := range seed.Consents {
		if c.UserID == "" {
			return nil, fmt.Errorf("seed consent without user_id")
		}
		if _, err := c.Expiry(); err != nil {
			return nil, err
		}
	}
	for _, r := range seed.Restrictions {
		if r.PartnerID == "" {
			return nil, fmt.Errorf("seed restriction without partner_id")
		}
	}
	return &seed, nil
}
