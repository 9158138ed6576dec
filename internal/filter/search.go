package filter

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

// MatchThreshold is the largest normalized distance (0 exact, 1 unrelated) at
// which a field still counts as a match.
const MatchThreshold = 0.4

// searchField is one weighted recipe field considered by the relevance pass.
type searchField struct {
	name   string
	weight float64
	values func(r *models.Recipe) []string
}

var searchFields = []searchField{
	{name: "name", weight: 2.0, values: func(r *models.Recipe) []string { return []string{r.Name} }},
	{name: "description", weight: 1.0, values: func(r *models.Recipe) []string { return []string{r.Description} }},
	{name: "ingredients", weight: 1.0, values: ingredientNames},
	{name: "tags", weight: 0.5, values: func(r *models.Recipe) []string { return r.Tags }},
	{name: "cuisine_type", weight: 0.3, values: func(r *models.Recipe) []string { return r.CuisineType }},
	{name: "dish_type", weight: 0.3, values: func(r *models.Recipe) []string { return r.DishType }},
}

// SearchResult pairs a recipe with its relevance score; higher is better.
type SearchResult struct {
	Recipe models.Recipe
	Score  float64
}

// Search returns the recipes that approximately match query, best match first.
// Recipes with equal scores keep their input order. A query with no word
// characters imposes no constraint.
func Search(recipes []models.Recipe, query string) []models.Recipe {
	ranked := Rank(recipes, query)
	if ranked == nil {
		return recipes
	}
	out := make([]models.Recipe, len(ranked))
	for i, res := range ranked {
		out[i] = res.Recipe
	}
	return out
}

// Rank scores every recipe against query and returns the matches sorted by
// score. It returns nil when query has no searchable terms.
func Rank(recipes []models.Recipe, query string) []SearchResult {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}
	phrase := strings.Join(terms, " ")

	results := make([]SearchResult, 0, len(recipes))
	for i := range recipes {
		if score, ok := relevance(&recipes[i], terms, phrase); ok {
			results = append(results, SearchResult{Recipe: recipes[i], Score: score})
		}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results
}

// relevance returns the best weighted similarity across matching fields.
func relevance(r *models.Recipe, terms []string, phrase string) (float64, bool) {
	best := 0.0
	matched := false
	for _, field := range searchFields {
		dist := 1.0
		for _, v := range field.values(r) {
			if d := fieldDistance(terms, phrase, v); d < dist {
				dist = d
			}
		}
		if dist > MatchThreshold {
			continue
		}
		matched = true
		if score := field.weight * (1 - dist); score > best {
			best = score
		}
	}
	return best, matched
}

// fieldDistance averages, over query terms, the distance to the closest word in value.
func fieldDistance(terms []string, phrase, value string) float64 {
	words := tokenize(value)
	if len(words) == 0 {
		return 1
	}
	if strings.Contains(strings.Join(words, " "), phrase) {
		return 0
	}

	total := 0.0
	for _, term := range terms {
		closest := 1.0
		for _, w := range words {
			if d := termDistance(term, w); d < closest {
				closest = d
				if d == 0 {
					break
				}
			}
		}
		total += closest
	}
	return total / float64(len(terms))
}

// Short terms get fewer fuzzy comparisons: below minFuzzyRunes a term must
// appear verbatim, and only terms of minPrefixRunes or more are compared
// against word prefixes.
const (
	minFuzzyRunes  = 4
	minPrefixRunes = 5
)

// termDistance is the normalized edit distance between a query term and a
// word, also comparing against the word's prefix so partial terms match.
func termDistance(term, word string) float64 {
	if strings.Contains(word, term) {
		return 0
	}
	tr, wr := []rune(term), []rune(word)
	if len(tr) < minFuzzyRunes {
		return 1
	}
	dist := normalized(levenshtein.ComputeDistance(term, word), max(len(tr), len(wr)))
	if len(tr) >= minPrefixRunes && len(wr) > len(tr) {
		prefix := string(wr[:len(tr)])
		if d := normalized(levenshtein.ComputeDistance(term, prefix), len(tr)); d < dist {
			dist = d
		}
	}
	return dist
}

func normalized(dist, length int) float64 {
	if length == 0 {
		return 1
	}
	d := float64(dist) / float64(length)
	if d > 1 {
		return 1
	}
	return d
}

// tokenize lowercases s and splits it into letter/digit words.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func ingredientNames(r *models.Recipe) []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.Name
	}
	return names
}
