package scoring

import (
	"encoding/json"
	"fmt"

	"github.com/noah-isme/academic-rating/internal/models"
)

// Category binds a kind to its input type, scorer and adjust rate.
type Category struct {
	Kind       models.CategoryKind
	AdjustRate float64

	newInput func() models.Activity
	score    func(models.Activity, Context) float64
}

// NewInput returns a zero-valued input of the category's type.
func (c Category) NewInput() models.Activity {
	return c.newInput()
}

// Score computes the raw result of a. Inputs of another category score 0.
func (c Category) Score(a models.Activity, ctx Context) float64 {
	if a == nil || a.Kind() != c.Kind {
		return 0
	}
	return c.score(a, ctx)
}

// Decode unmarshals a stored payload; an empty payload yields the default input.
func (c Category) Decode(payload []byte) (models.Activity, error) {
	in := c.newInput()
	if len(payload) == 0 {
		return in, nil
	}
	if err := json.Unmarshal(payload, in); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", c.Kind, err)
	}
	return in, nil
}

// Encode marshals an input for storage.
func (c Category) Encode(a models.Activity) ([]byte, error) {
	if a == nil {
		a = c.newInput()
	}
	if a.Kind() != c.Kind {
		return nil, fmt.Errorf("cannot encode %s input as %s", a.Kind(), c.Kind)
	}
	return json.Marshal(a)
}

var registry = map[models.CategoryKind]Category{
	models.KindEducational: {
		Kind:       models.KindEducational,
		AdjustRate: 1,
		newInput:   func() models.Activity { return &models.EducationalInput{} },
		score: func(a models.Activity, c Context) float64 {
			switch in := a.(type) {
			case *models.EducationalInput:
				return ScoreEducational(in, c)
			case models.EducationalInput:
				return ScoreEducational(&in, c)
			}
			return 0
		},
	},
	models.KindScientific: {
		Kind:       models.KindScientific,
		AdjustRate: 1,
		newInput:   func() models.Activity { return &models.ScientificInput{} },
		score: func(a models.Activity, c Context) float64 {
			switch in := a.(type) {
			case *models.ScientificInput:
				return ScoreScientific(in, c)
			case models.ScientificInput:
				return ScoreScientific(&in, c)
			}
			return 0
		},
	},
	models.KindOrganizational: {
		Kind:       models.KindOrganizational,
		AdjustRate: 2,
		newInput:   func() models.Activity { return &models.OrganizationalInput{} },
		score: func(a models.Activity, c Context) float64 {
			switch in := a.(type) {
			case *models.OrganizationalInput:
				return ScoreOrganizational(in, c)
			case models.OrganizationalInput:
				return ScoreOrganizational(&in, c)
			}
			return 0
		},
	},
}

// For returns the category registered for kind.
func For(kind models.CategoryKind) (Category, bool) {
	c, ok := registry[kind]
	return c, ok
}

// MustFor is For for kinds already known to be valid.
func MustFor(kind models.CategoryKind) Category {
	c, ok := registry[kind]
	if !ok {
		panic(fmt.Sprintf("scoring: unknown category %q", kind))
	}
	return c
}
