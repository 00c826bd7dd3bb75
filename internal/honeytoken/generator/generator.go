// Package generator produces plausible but fictitious values for honeytokens.
package generator

import (
	"fmt"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"

	"datasentinel/internal/honeytoken/models"
)

const (
	DefaultDomain  = "example.com"
	idAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
	idSuffixLength = 12
)

// Generator is safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	faker  *gofakeit.Faker
	domain string
}

type Option func(*Generator)

// WithDomain sets the mail domain for email tokens. Reserved domains such as
// example.com keep the addresses undeliverable.
func WithDomain(domain string) Option {
	return func(g *Generator) {
		if domain = strings.TrimSpace(domain); domain != "" {
			g.domain = domain
		}
	}
}

// WithSeed makes output reproducible. Seed 0 picks a random seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.faker = gofakeit.New(seed)
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{
		faker:  gofakeit.New(0),
		domain: DefaultDomain,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a fresh value for t. Uniqueness is enforced by the store.
func (g *Generator) Generate(t models.Type) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch t {
	case models.TypeEmail:
		return fmt.Sprintf("%s.%s.%06x@%s",
			slug(g.faker.FirstName()),
			slug(g.faker.LastName()),
			g.faker.Number(0, 0xffffff),
			g.domain,
		), nil
	case models.TypePhone:
		// 555-0100 through 555-0199 is reserved for fictional use.
		return fmt.Sprintf("%d%02d-555-01%02d",
			g.faker.Number(2, 9),
			g.faker.Number(0, 99),
			g.faker.Number(0, 99),
		), nil
	case models.TypeName:
		return fmt.Sprintf("%s %c. %s",
			g.faker.FirstName(),
			rune('A'+g.faker.Number(0, 25)),
			g.faker.LastName(),
		), nil
	case models.TypeID:
		var b strings.Builder
		b.WriteString("HT-")
		for range idSuffixLength {
			b.WriteByte(idAlphabet[g.faker.Number(0, len(idAlphabet)-1)])
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("unsupported honeytoken type %q", t)
	}
}

// slug keeps only ASCII letters so the local part stays a valid address.
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "x"
	}
	return b.String()
}
