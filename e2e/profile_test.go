//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webstore-qa/shopcheck/internal/pages"
)

// TestProfile_EditFirstName registers an account, changes the first name
// on the customer info screen and verifies the save stuck.
func TestProfile_EditFirstName(t *testing.T) {
	t.Parallel()

	s := fx.NewSession(t)
	gen := newGenerator(t)

	registerFreshAccount(t, s, gen)

	account := pages.NewAccount(s.Page)
	require.NoError(t, account.Visit())

	// A second generated record donates a fresh, different first name.
	updated := gen.Registration().FirstName
	require.NoError(t, account.UpdateFirstName(updated))

	// Re-open the form; the saved value must survive the round trip.
	require.NoError(t, account.Visit())
	got, err := account.FirstName()
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}
