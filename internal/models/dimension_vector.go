package models

// DimensionAxes lists the seven political axes, in scoring order.
var DimensionAxes = []string{
	"economic",
	"social",
	"environmental",
	"immigration",
	"europe",
	"authority",
	"institutionality",
}

// DimensionVector scores a text on the seven political axes, each in [-1, 1].
// Confidence and Evidence are optional annotations set by whoever computed
// the vector.
type DimensionVector struct {
	Economic         float64 `json:"economic"`
	Social           float64 `json:"social"`
	Environmental    float64 `json:"environmental"`
	Immigration      float64 `json:"immigration"`
	Europe           float64 `json:"europe"`
	Authority        float64 `json:"authority"`
	Institutionality float64 `json:"institutionality"`

	Confidence *float64 `json:"confidence,omitempty"`
	Evidence   string   `json:"evidence,omitempty"`
}

// Values returns the axis scores in DimensionAxes order.
func (v DimensionVector) Values() []float64 {
	return []float64{
		v.Economic, v.Social, v.Environmental, v.Immigration,
		v.Europe, v.Authority, v.Institutionality,
	}
}

// VectorFromValues builds a DimensionVector from scores in DimensionAxes
// order, clamping every component to [-1, 1]. Missing components are zero.
func VectorFromValues(values []float64) DimensionVector {
	var padded [7]float64
	for i := 0; i < len(padded) && i < len(values); i++ {
		padded[i] = clampAxis(values[i])
	}
	return DimensionVector{
		Economic:         padded[0],
		Social:           padded[1],
		Environmental:    padded[2],
		Immigration:      padded[3],
		Europe:           padded[4],
		Authority:        padded[5],
		Institutionality: padded[6],
	}
}

// Clamped returns a copy with every component forced into [-1, 1].
func (v DimensionVector) Clamped() DimensionVector {
	out := VectorFromValues(v.Values())
	out.Confidence = v.Confidence
	out.Evidence = v.Evidence
	return out
}

func clampAxis(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}
