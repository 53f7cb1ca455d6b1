// Package ranking assigns contiguous 1-based places.
package ranking

import (
	"sort"

	"github.com/noah-isme/academic-rating/internal/models"
)

// Order selects whether higher or lower scores rank first.
type Order int

const (
	HighestFirst Order = iota
	LowestFirst
)

// Places orders items by score and assigns places 1..N. Equal scores keep
// primary key order, so every item gets a distinct place.
func Places[T any](items []T, id func(T) int64, score func(T) float64, order Order) []models.PlaceAssignment {
	sorted := make([]T, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := score(sorted[i]), score(sorted[j])
		if si != sj {
			if order == LowestFirst {
				return si < sj
			}
			return si > sj
		}
		return id(sorted[i]) < id(sorted[j])
	})

	out := make([]models.PlaceAssignment, len(sorted))
	for i, item := range sorted {
		out[i] = models.PlaceAssignment{ID: id(item), Place: i + 1}
	}
	return out
}

// Index maps row IDs to their assigned place.
func Index(assignments []models.PlaceAssignment) map[int64]int {
	out := make(map[int64]int, len(assignments))
	for _, a := range assignments {
		out[a.ID] = a.Place
	}
	return out
}
