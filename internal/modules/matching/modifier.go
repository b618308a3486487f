package matching

import (
	"math"

	"github.com/politiekmatcher/core/internal/models"
)

// ModifierScale maps cosine similarity in [-1, 1] onto score points.
const ModifierScale = 20.0

// Cosine returns the cosine similarity of two equal-length vectors. If either
// vector has zero magnitude the similarity is undefined and 0 is returned.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// DimensionModifier converts the alignment of two dimension vectors into a
// bounded score adjustment in [-20, 20]. A zero vector on either side
// contributes no adjustment.
func DimensionModifier(user, party models.DimensionVector) float64 {
	m := Cosine(user.Values(), party.Values()) * ModifierScale
	if m > ModifierScale {
		return ModifierScale
	}
	if m < -ModifierScale {
		return -ModifierScale
	}
	return m
}
