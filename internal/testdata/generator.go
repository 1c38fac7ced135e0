// Package testdata generates the ephemeral records specs feed into the
// shop: registrations, credentials and search terms. Records are
// syntactically valid; negative shapes violate exactly one rule so a spec
// can assert the shop rejects them for that reason and no other.
package testdata

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// emailDomain keeps generated accounts recognizable and undeliverable.
const emailDomain = "shopcheck.example"

// weakPassword is below the shop's six character minimum.
const weakPassword = "123"

// matchingTerms are catalog words the demo shop is known to stock.
// Searching any of them must return at least one product.
var matchingTerms = []string{"shirt", "jeans", "computer"}

// Registration is one sign-up form submission.
type Registration struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// Credentials identify an existing account to the login form.
type Credentials struct {
	Email    string
	Password string
}

// Generator produces records from a seedable pseudo-random source.
// The same seed yields the same sequence of records, which keeps
// failures reproducible; distinct seeds keep identities unique across
// runs, so no server-side cleanup is needed.
type Generator struct {
	faker *gofakeit.Faker
}

// New returns a Generator seeded with seed. Seed zero asks gofakeit for
// a crypto-random seed, which is what suite runs use by default.
func New(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Registration returns a record satisfying every rule the shop enforces:
// non-empty names, a well-formed unique email, and a password of at
// least six characters.
func (g *Generator) Registration() Registration {
	first := g.faker.FirstName()
	last := g.faker.LastName()
	username := fmt.Sprintf("%s.%s.%s",
		strings.ToLower(first),
		strings.ToLower(last),
		strings.ToLower(g.faker.LetterN(6)),
	)
	return Registration{
		FirstName: first,
		LastName:  last,
		Username:  username,
		Email:     username + "@" + emailDomain,
		Password:  g.faker.Password(true, true, true, false, false, 12),
	}
}

// WeakPasswordRegistration returns a record valid in every field except
// the password, which is under the minimum length.
func (g *Generator) WeakPasswordRegistration() Registration {
	rec := g.Registration()
	rec.Password = weakPassword
	return rec
}

// DuplicateRegistration returns a fresh record that reuses the identity
// of an already-registered record. Submitting it must surface the
// shop's "email already exists" error.
func (g *Generator) DuplicateRegistration(existing Registration) Registration {
	rec := g.Registration()
	rec.Username = existing.Username
	rec.Email = existing.Email
	return rec
}

// Credentials returns the login input matching the registration.
func (r Registration) Credentials() Credentials {
	return Credentials{Email: r.Email, Password: r.Password}
}

// WrongCredentials returns a login input for an account that cannot
// exist: a well-formed email nothing registered, with a valid-looking
// password.
func (g *Generator) WrongCredentials() Credentials {
	return Credentials{
		Email:    "ghost." + strings.ToLower(g.faker.LetterN(10)) + "@" + emailDomain,
		Password: g.faker.Password(true, true, true, false, false, 12),
	}
}

// MatchingSearchTerm returns a term with at least one catalog hit.
func (g *Generator) MatchingSearchTerm() string {
	return g.faker.RandomString(matchingTerms)
}

// NoMatchSearchTerm returns a term guaranteed to miss the catalog.
func (g *Generator) NoMatchSearchTerm() string {
	return "zz" + strings.ToLower(g.faker.LetterN(12))
}
