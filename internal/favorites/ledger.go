// Package favorites derives the favorite counter shown next to each recipe.
package favorites

// baseModulus and baseOffset shape the per-recipe base value: (numericId mod 96) + 5.
const (
	baseModulus = 96
	baseOffset  = 5
)

// FavoriteChecker reports whether the current user favorited a recipe.
type FavoriteChecker interface {
	IsFavorite(recipeID string) bool
}

// Ledger computes favorite counts. The base is recomputed from the id on every
// call and never stored.
type Ledger struct {
	checker FavoriteChecker
}

// NewLedger returns a ledger backed by checker. A nil checker counts no user favorites.
func NewLedger(checker FavoriteChecker) *Ledger {
	return &Ledger{checker: checker}
}

// Count returns the base count for recipeID plus one if the user favorited it.
func (l *Ledger) Count(recipeID string) int {
	n := BaseCount(recipeID)
	if l.checker != nil && l.checker.IsFavorite(recipeID) {
		n++
	}
	return n
}

// BaseCount returns (numericId mod 96) + 5 where numericId is the number formed by
// the decimal digits of recipeID. An id without digits counts as zero.
func BaseCount(recipeID string) int {
	mod := 0
	for _, c := range recipeID {
		if c >= '0' && c <= '9' {
			mod = (mod*10 + int(c-'0')) % baseModulus
		}
	}
	return mod + baseOffset
}
