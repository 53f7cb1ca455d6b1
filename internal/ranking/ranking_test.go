package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/academic-rating/internal/models"
)

type row struct {
	id    int64
	score float64
}

func rowID(r row) int64      { return r.id }
func rowScore(r row) float64 { return r.score }

func TestPlacesHighestFirst(t *testing.T) {
	rows := []row{{id: 1, score: 40}, {id: 2, score: 80}}
	got := Places(rows, rowID, rowScore, HighestFirst)
	assert.Equal(t, []models.PlaceAssignment{{ID: 2, Place: 1}, {ID: 1, Place: 2}}, got)
}

func TestPlacesTiesKeepPrimaryKeyOrder(t *testing.T) {
	rows := []row{{id: 9, score: 3}, {id: 4, score: 3}, {id: 7, score: 1}}
	got := Index(Places(rows, rowID, rowScore, LowestFirst))
	assert.Equal(t, map[int64]int{7: 1, 4: 2, 9: 3}, got)
}

func TestPlacesAreContiguous(t *testing.T) {
	rows := make([]row, 0, 50)
	for i := 0; i < 50; i++ {
		rows = append(rows, row{id: int64(100 - i), score: float64(i % 7)})
	}
	seen := map[int]bool{}
	for _, a := range Places(rows, rowID, rowScore, HighestFirst) {
		seen[a.Place] = true
	}
	for p := 1; p <= 50; p++ {
		assert.True(t, seen[p], p)
	}
	assert.Len(t, seen, 50)
}

func TestPlacesDoesNotReorderInput(t *testing.T) {
	rows := []row{{id: 1, score: 1}, {id: 2, score: 2}}
	Places(rows, rowID, rowScore, HighestFirst)
	assert.Equal(t, int64(1), rows[0].id)
	assert.Empty(t, Places([]row{}, rowID, rowScore, HighestFirst))
}
