package design

import (
	"fmt"

	"simlm/domain/core"
	"simlm/domain/model"
)

// Matrix is a small column-major design matrix: one row per observation, one
// column per indicator (or indicator-times-continuous) term column.
type Matrix struct {
	Names []string
	Cols  [][]float64
}

// ColumnCount returns the number of design columns
func (m Matrix) ColumnCount() int {
	return len(m.Cols)
}

// RowCount returns the number of observations
func (m Matrix) RowCount() int {
	if len(m.Cols) == 0 {
		return 0
	}
	return len(m.Cols[0])
}

// Source supplies per-observation predictor values to the builder. Both the
// simulation engine (raw drawn values) and the fit step (frame columns)
// implement it.
type Source interface {
	Numeric(core.VariableKey) ([]float64, bool)
	Labels(core.VariableKey) ([]string, bool)
}

// MapSource is a Source over plain maps, used before a Frame exists
type MapSource struct {
	Num map[core.VariableKey][]float64
	Lab map[core.VariableKey][]string
}

func (s MapSource) Numeric(key core.VariableKey) ([]float64, bool) {
	v, ok := s.Num[key]
	return v, ok
}

func (s MapSource) Labels(key core.VariableKey) ([]string, bool) {
	v, ok := s.Lab[key]
	return v, ok
}

// Continuous wraps a raw value column as a one-column matrix
func Continuous(key core.VariableKey, values []float64) Matrix {
	return Matrix{Names: []string{string(key)}, Cols: [][]float64{values}}
}

// Indicator builds the full one-hot design for a categorical variable: one
// column per level, 1 where the observation carries that level, else 0.
func Indicator(key core.VariableKey, labels []string, levels []string) (Matrix, error) {
	if len(levels) == 0 {
		return Matrix{}, core.NewValidationError(string(key), "empty level set")
	}
	index := make(map[string]int, len(levels))
	for i, lvl := range levels {
		index[lvl] = i
	}
	cols := make([][]float64, len(levels))
	names := make([]string, len(levels))
	for i, lvl := range levels {
		cols[i] = make([]float64, len(labels))
		names[i] = fmt.Sprintf("%s[%s]", key, lvl)
	}
	for row, lab := range labels {
		i, ok := index[lab]
		if !ok {
			return Matrix{}, core.NewValidationError(string(key), fmt.Sprintf("label %q at row %d is not a declared level", lab, row))
		}
		cols[i][row] = 1
	}
	return Matrix{Names: names, Cols: cols}, nil
}

// Reduced builds the treatment-coded design for a categorical variable: one
// indicator column per non-reference level, in declared level order. The
// reference level contributes the all-zero row and carries no column, matching
// the coefficient convention where its effect is fixed at zero.
func Reduced(key core.VariableKey, labels []string, levels []string, reference string) (Matrix, error) {
	full, err := Indicator(key, labels, levels)
	if err != nil {
		return Matrix{}, err
	}
	out := Matrix{}
	for i, lvl := range levels {
		if lvl == reference {
			continue
		}
		out.Names = append(out.Names, full.Names[i])
		out.Cols = append(out.Cols, full.Cols[i])
	}
	if len(out.Cols) == 0 {
		return Matrix{}, core.NewValidationError(string(key), "no non-reference levels")
	}
	return out, nil
}

// Product builds the interaction design as the row-wise product of every
// column pair. Column order has b cycling fastest: a1:b1, a1:b2, ..., a2:b1.
// PerCombination coefficient vectors align to exactly this order.
func Product(a, b Matrix) Matrix {
	n := a.RowCount()
	out := Matrix{
		Names: make([]string, 0, len(a.Cols)*len(b.Cols)),
		Cols:  make([][]float64, 0, len(a.Cols)*len(b.Cols)),
	}
	for i := range a.Cols {
		for j := range b.Cols {
			col := make([]float64, n)
			for row := 0; row < n; row++ {
				col[row] = a.Cols[i][row] * b.Cols[j][row]
			}
			out.Names = append(out.Names, a.Names[i]+":"+b.Names[j])
			out.Cols = append(out.Cols, col)
		}
	}
	return out
}

// TermColumnNames returns the column names TermMatrix would produce for the
// term, without needing data. Categorical variables contribute one name per
// non-reference level; interaction names join with ":" and the later variable
// cycles fastest, matching Product.
func TermColumnNames(s model.Scenario, t model.TermSpec) ([]string, error) {
	names := []string{""}
	for _, v := range t.Variables {
		p, ok := s.Predictor(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrUndeclaredVariable, v)
		}
		var parts []string
		if p.Kind == model.KindCategorical {
			for _, lvl := range p.NonReferenceLevels() {
				parts = append(parts, fmt.Sprintf("%s[%s]", v, lvl))
			}
		} else {
			parts = []string{string(v)}
		}
		next := make([]string, 0, len(names)*len(parts))
		for _, prefix := range names {
			for _, part := range parts {
				if prefix == "" {
					next = append(next, part)
				} else {
					next = append(next, prefix+":"+part)
				}
			}
		}
		names = next
	}
	return names, nil
}

// TermMatrix builds the reduced design matrix for one declared term: the
// row-wise product of each participating variable's representation, where
// categorical variables contribute their non-reference indicator columns and
// continuous variables their raw values.
func TermMatrix(src Source, s model.Scenario, t model.TermSpec) (Matrix, error) {
	var acc Matrix
	for i, v := range t.Variables {
		p, ok := s.Predictor(v)
		if !ok {
			return Matrix{}, fmt.Errorf("%w: %s", core.ErrUndeclaredVariable, v)
		}
		var m Matrix
		switch p.Kind {
		case model.KindContinuous:
			values, ok := src.Numeric(v)
			if !ok {
				return Matrix{}, core.NewNotFoundError("numeric column", string(v))
			}
			m = Continuous(v, values)
		case model.KindCategorical:
			labels, ok := src.Labels(v)
			if !ok {
				return Matrix{}, core.NewNotFoundError("label column", string(v))
			}
			var err error
			m, err = Reduced(v, labels, p.Levels, p.Reference)
			if err != nil {
				return Matrix{}, err
			}
		default:
			return Matrix{}, core.NewValidationError(string(v), fmt.Sprintf("unknown predictor kind %q", p.Kind))
		}
		if i == 0 {
			acc = m
		} else {
			acc = Product(acc, m)
		}
	}
	return acc, nil
}
