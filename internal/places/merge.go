package places

import (
	"sort"

	"github.com/listingkit/listingkit-backend/internal/models"
)

// batch is the raw response of one category search
type batch struct {
	category string
	places   []models.Place
}

// sortByRating orders places by descending rating, missing rating last,
// keeping arrival order among equal ratings.
func sortByRating(places []models.Place) {
	sort.SliceStable(places, func(i, j int) bool {
		return places[i].RatingValue() > places[j].RatingValue()
	})
}

// primaryType returns the first of the place's own tags, in upstream order,
// that was requested. Falls back to the category it was discovered under.
func primaryType(p *models.Place, requested map[string]bool, discoveredUnder string) string {
	for _, t := range p.Types {
		if requested[t] {
			return t
		}
	}
	return discoveredUnder
}

// merge dedups, assigns primary types and applies the per-category quota.
// Batches must be in requested-category order.
func merge(categories []string, batches []batch, quota int) (map[string][]models.Place, int) {
	requested := make(map[string]bool, len(categories))
	out := make(map[string][]models.Place, len(categories))
	for _, c := range categories {
		requested[c] = true
		out[c] = []models.Place{}
	}

	seen := make(map[string]bool)
	counts := make(map[string]int, len(categories))
	total := 0

	for _, b := range batches {
		candidates := make([]models.Place, len(b.places))
		copy(candidates, b.places)
		sortByRating(candidates)

		for _, p := range candidates {
			pt := primaryType(&p, requested, b.category)
			if counts[pt] >= quota || seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			counts[pt]++
			total++
			p.PrimaryType = pt
			out[pt] = append(out[pt], p)
		}
	}

	for _, list := range out {
		sortByRating(list)
	}
	return out, total
}
