package service

import (
	"sort"
	"strings"
	"time"

	"github.com/mssola/useragent"

	"datasentinel/internal/risk/models"
)

// TraitPolicy holds the thresholds used to derive traits from hit history.
type TraitPolicy struct {
	RepeatWindow     time.Duration
	RepeatCount      int
	VelocityInterval time.Duration
	OffHoursStart    int
	OffHoursEnd      int
}

// DefaultTraitPolicy: three hits in 24h, two hits within ten minutes, and
// activity between 00:00 and 06:59 UTC.
func DefaultTraitPolicy() TraitPolicy {
	return TraitPolicy{
		RepeatWindow:     24 * time.Hour,
		RepeatCount:      3,
		VelocityInterval: 10 * time.Minute,
		OffHoursStart:    0,
		OffHoursEnd:      6,
	}
}

// Traits evaluates the hits that fall inside the repeat window ending at now.
func (p TraitPolicy) Traits(hits []models.Hit, now time.Time) []string {
	recent := p.window(hits, now)
	if len(recent) == 0 {
		return []string{}
	}

	set := make(map[string]struct{})
	if len(recent) >= p.RepeatCount {
		set[models.TraitRepeatOffender] = struct{}{}
	}
	for i, h := range recent {
		if i > 0 && h.At.Sub(recent[i-1].At) <= p.VelocityInterval {
			set[models.TraitHighVelocity] = struct{}{}
		}
		if p.isOffHours(h.At) {
			set[models.TraitOffHours] = struct{}{}
		}
		if h.Automated {
			set[models.TraitAutomatedClient] = struct{}{}
		}
	}

	traits := make([]string, 0, len(set))
	for t := range set {
		traits = append(traits, t)
	}
	sort.Strings(traits)
	return traits
}

// window returns hits in (now-RepeatWindow, now], oldest first.
func (p TraitPolicy) window(hits []models.Hit, now time.Time) []models.Hit {
	cutoff := now.Add(-p.RepeatWindow)
	recent := make([]models.Hit, 0, len(hits))
	for _, h := range hits {
		if h.At.After(cutoff) && !h.At.After(now) {
			recent = append(recent, h)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].At.Before(recent[j].At) })
	return recent
}

// prune drops hits that can no longer affect any trait.
func (p TraitPolicy) prune(hits []models.Hit, now time.Time) []models.Hit {
	cutoff := now.Add(-p.RepeatWindow)
	kept := hits[:0]
	for _, h := range hits {
		if h.At.After(cutoff) {
			kept = append(kept, h)
		}
	}
	return kept
}

func (p TraitPolicy) isOffHours(t time.Time) bool {
	h := t.UTC().Hour()
	return h >= p.OffHoursStart && h <= p.OffHoursEnd
}

var automationPrefixes = []string{
	"curl/", "wget/", "python-requests/", "python-urllib/", "go-http-client/",
	"java/", "okhttp/", "libwww-perl/", "httpie/", "postmanruntime/", "scrapy/",
}

// IsAutomatedClient reports whether a user agent belongs to a bot or a
// scripted HTTP client rather than a browser.
func IsAutomatedClient(userAgent string) bool {
	ua := strings.TrimSpace(userAgent)
	if ua == "" {
		return false
	}
	lower := strings.ToLower(ua)
	for _, prefix := range automationPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return useragent.New(ua).Bot()
}
