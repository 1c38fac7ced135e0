//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/webstore-qa/shopcheck/internal/browser"
	"github.com/webstore-qa/shopcheck/internal/pages"
	"github.com/webstore-qa/shopcheck/internal/testdata"
)

// Messages the shop is known to surface. Specs assert on fragments, not
// full sentences, so copy tweaks on the shop side don't break the suite.
const (
	msgRegistrationCompleted = "Your registration completed"
	msgEmailExists           = "The specified email already exists"
	msgPasswordTooShort      = "at least 6 characters"
	msgLoginFailed           = "Login was unsuccessful"
	msgNoProducts            = "No products were found"
)

// registerFreshAccount signs up a brand-new customer in the session and
// requires it to succeed. The shop leaves the new customer logged in.
func registerFreshAccount(t *testing.T, s *browser.Session, gen *testdata.Generator) testdata.Registration {
	t.Helper()

	rec := gen.Registration()
	reg := pages.NewRegister(s.Page)
	require.NoError(t, reg.Visit())
	require.NoError(t, reg.Submit(rec))

	msg, err := reg.SuccessMessage()
	require.NoError(t, err, "registration of %s did not complete", rec.Email)
	require.Contains(t, msg, msgRegistrationCompleted)

	t.Logf("registered %s", rec.Email)
	return rec
}

// logout ends the current customer session via the header link.
func logout(t *testing.T, s *browser.Session) {
	t.Helper()
	home := pages.NewHome(s.Page)
	require.NoError(t, home.Logout())
}
