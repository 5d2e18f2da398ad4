package display

import (
	"slices"
	"strings"

	"github.com/matzehuels/ghrepos/pkg/integrations/github"
)

// SortByUpdated returns a copy of repos ordered by UpdatedAt, newest first.
//
// The comparison is byte-wise on the raw timestamp string, not on parsed
// dates. For the uniform ISO-8601 UTC strings GitHub returns the two agree;
// for mixed offsets or precisions they may not, and the string order wins.
// Equal timestamps keep their input order.
func SortByUpdated(repos []github.Repository) []github.Repository {
	sorted := slices.Clone(repos)
	slices.SortStableFunc(sorted, func(a, b github.Repository) int {
		return strings.Compare(b.UpdatedAt, a.UpdatedAt)
	})
	return sorted
}
