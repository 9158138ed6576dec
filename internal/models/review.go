package models

// Review is a user's rating and comment on a recipe.
type Review struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	UserName string  `json:"user_name"`
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment"`
	Date     string  `json:"date"`
}

// ReviewMap maps recipe ids to their reviews, newest first.
type ReviewMap map[string][]Review

// Clone returns a deep copy of m.
func (m ReviewMap) Clone() ReviewMap {
	out := make(ReviewMap, len(m))
	for id, reviews := range m {
		out[id] = append([]Review{}, reviews...)
	}
	return out
}
