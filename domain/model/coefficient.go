package model

// CoefficientKind selects the shape of a term's coefficient
type CoefficientKind string

const (
	// CoefScalar is a single value, used by purely continuous terms
	CoefScalar CoefficientKind = "scalar"
	// CoefPerCategory holds one value per non-reference level of a categorical main effect
	CoefPerCategory CoefficientKind = "per_category"
	// CoefPerCombination holds one value per combination of non-reference design columns
	// of an interaction term
	CoefPerCombination CoefficientKind = "per_combination"
)

// Coefficient is the polymorphic coefficient attached to a declared term.
// The reference level's contribution is identically zero, so vector variants
// carry only non-reference entries and a length mismatch against the term's
// design matrix is detectable before sampling.
type Coefficient struct {
	Kind   CoefficientKind `json:"kind"`
	Value  float64         `json:"value,omitempty"`
	Values []float64       `json:"values,omitempty"`
}

// Scalar creates a scalar coefficient
func Scalar(v float64) Coefficient {
	return Coefficient{Kind: CoefScalar, Value: v}
}

// PerCategory creates a coefficient vector aligned to non-reference levels
func PerCategory(vs ...float64) Coefficient {
	return Coefficient{Kind: CoefPerCategory, Values: vs}
}

// PerCombination creates a coefficient vector aligned to non-reference level combinations
func PerCombination(vs ...float64) Coefficient {
	return Coefficient{Kind: CoefPerCombination, Values: vs}
}

// Entries returns the coefficient as a flat slice aligned to design columns,
// so the aggregation step is uniform regardless of term kind.
func (c Coefficient) Entries() []float64 {
	if c.Kind == CoefScalar {
		return []float64{c.Value}
	}
	return c.Values
}

// Len returns the number of design columns this coefficient covers
func (c Coefficient) Len() int {
	if c.Kind == CoefScalar {
		return 1
	}
	return len(c.Values)
}
