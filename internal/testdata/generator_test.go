package testdata

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration_SatisfiesShopRules(t *testing.T) {
	gen := New(1)

	for i := 0; i < 50; i++ {
		rec := gen.Registration()

		assert.NotEmpty(t, rec.FirstName)
		assert.NotEmpty(t, rec.LastName)
		assert.NotEmpty(t, rec.Username)
		assert.GreaterOrEqual(t, len(rec.Password), 6, "password must meet the shop minimum")

		_, err := mail.ParseAddress(rec.Email)
		require.NoError(t, err, "email %q must be well-formed", rec.Email)
		assert.True(t, strings.HasSuffix(rec.Email, "@"+emailDomain))
		assert.Contains(t, rec.Email, rec.Username)
	}
}

func TestRegistration_UniqueWithinRun(t *testing.T) {
	gen := New(2)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		rec := gen.Registration()
		require.False(t, seen[rec.Email], "duplicate email %q after %d records", rec.Email, i)
		seen[rec.Email] = true
	}
}

func TestGenerator_DeterministicForFixedSeed(t *testing.T) {
	a, b := New(42), New(42)

	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(a.Registration(), b.Registration()); diff != "" {
			t.Fatalf("record %d mismatch (-a +b):\n%s", i, diff)
		}
	}
	assert.Equal(t, a.MatchingSearchTerm(), b.MatchingSearchTerm())
	assert.Equal(t, a.NoMatchSearchTerm(), b.NoMatchSearchTerm())
}

func TestWeakPasswordRegistration_ViolatesOnlyPassword(t *testing.T) {
	rec := New(3).WeakPasswordRegistration()

	assert.Less(t, len(rec.Password), 6)

	_, err := mail.ParseAddress(rec.Email)
	assert.NoError(t, err, "all other fields stay valid")
	assert.NotEmpty(t, rec.FirstName)
	assert.NotEmpty(t, rec.LastName)
}

func TestDuplicateRegistration_ReusesIdentityOnly(t *testing.T) {
	gen := New(4)
	first := gen.Registration()
	dup := gen.DuplicateRegistration(first)

	assert.Equal(t, first.Email, dup.Email)
	assert.Equal(t, first.Username, dup.Username)
	assert.NotEqual(t, first.Password, dup.Password, "a new applicant brings their own password")
}

func TestCredentials_MatchRegistration(t *testing.T) {
	rec := New(5).Registration()
	creds := rec.Credentials()

	assert.Equal(t, rec.Email, creds.Email)
	assert.Equal(t, rec.Password, creds.Password)
}

func TestWrongCredentials_CannotCollide(t *testing.T) {
	gen := New(6)
	creds := gen.WrongCredentials()

	assert.True(t, strings.HasPrefix(creds.Email, "ghost."))
	assert.GreaterOrEqual(t, len(creds.Password), 6)
}

func TestSearchTerms(t *testing.T) {
	gen := New(7)

	assert.Contains(t, matchingTerms, gen.MatchingSearchTerm())

	miss := gen.NoMatchSearchTerm()
	assert.True(t, strings.HasPrefix(miss, "zz"))
	assert.Greater(t, len(miss), 10)
}
