package scoring

import "github.com/noah-isme/academic-rating/internal/models"

// ScoreScientific returns the entered scientific total.
func ScoreScientific(in *models.ScientificInput, _ Context) float64 {
	if in == nil || in.TotalScore < 0 {
		return 0
	}
	return Round2(in.TotalScore)
}
