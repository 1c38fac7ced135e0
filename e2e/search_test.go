//go:build e2e

package e2e

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webstore-qa/shopcheck/internal/pages"
)

// TestSearch_MatchingTerm searches a catalog word and expects a non-empty
// result list whose titles all mention the term.
func TestSearch_MatchingTerm(t *testing.T) {
	t.Parallel()

	s := fx.NewSession(t)
	gen := newGenerator(t)
	term := gen.MatchingSearchTerm()

	home := pages.NewHome(s.Page)
	require.NoError(t, home.Visit())

	results, err := home.Search(term)
	require.NoError(t, err)

	titles, err := results.Titles()
	require.NoError(t, err)
	require.NotEmpty(t, titles, "term %q must match at least one product", term)

	for _, title := range titles {
		assert.Contains(t, strings.ToLower(title), term,
			"every result for %q should mention it", term)
	}
	t.Logf("term %q matched %d product(s)", term, len(titles))
}

// TestSearch_NoResults searches a term guaranteed to miss and expects an
// empty list plus the shop's no-results indicator.
func TestSearch_NoResults(t *testing.T) {
	t.Parallel()

	s := fx.NewSession(t)
	gen := newGenerator(t)
	term := gen.NoMatchSearchTerm()

	home := pages.NewHome(s.Page)
	require.NoError(t, home.Visit())

	results, err := home.Search(term)
	require.NoError(t, err)

	titles, err := results.Titles()
	require.NoError(t, err)
	assert.Empty(t, titles, "term %q must match nothing", term)

	msg, err := results.NoResultsMessage()
	require.NoError(t, err)
	assert.Contains(t, msg, msgNoProducts)
}
