package features

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	errEmptySchema   = errors.New("features: schema has no names")
	errEmptyName     = errors.New("features: schema contains an empty name")
	errDuplicateName = errors.New("features: schema contains a duplicate name")
)

// Set is an unordered partial feature set produced by one extractor.
type Set map[string]float64

// Schema is the ordered list of feature names a trained model expects.
// It is immutable once built.
type Schema struct {
	names []string
}

// NewSchema validates names and returns a Schema holding its own copy.
func NewSchema(names []string) (Schema, error) {
	if len(names) == 0 {
		return Schema{}, errEmptySchema
	}

	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		if n == "" {
			return Schema{}, fmt.Errorf("%w at position %d", errEmptyName, i)
		}
		if _, dup := seen[n]; dup {
			return Schema{}, fmt.Errorf("%w: %q", errDuplicateName, n)
		}
		seen[n] = struct{}{}
	}

	return Schema{names: slices.Clone(names)}, nil
}

// Names returns a copy of the schema's names in order.
func (s Schema) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of features in the schema.
func (s Schema) Len() int {
	return len(s.names)
}

// Missing returns the schema names none of the sets provide, in schema order.
func (s Schema) Missing(sets ...Set) []string {
	var missing []string
	for _, n := range s.names {
		if _, ok := lookup(n, sets); !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

// Vector is a feature vector aligned with a Schema.
type Vector struct {
	names  []string
	values []float64
}

// Assemble orders the merged sets by schema. Names the schema lists but no set
// provides are 0.0; names no schema lists are dropped. When several sets carry
// the same name, the last one wins. Non-finite values become 0.0.
func Assemble(schema Schema, sets ...Set) Vector {
	values := make([]float64, len(schema.names))
	for i, n := range schema.names {
		v, _ := lookup(n, sets)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		values[i] = v
	}
	return Vector{names: schema.names, values: values}
}

// Names returns the feature names in vector order.
func (v Vector) Names() []string {
	return slices.Clone(v.names)
}

// Values returns the feature values in vector order.
func (v Vector) Values() []float64 {
	return slices.Clone(v.values)
}

// Len returns the number of features.
func (v Vector) Len() int {
	return len(v.values)
}

// Get returns the value of the named feature.
func (v Vector) Get(name string) (float64, bool) {
	i := slices.Index(v.names, name)
	if i < 0 {
		return 0, false
	}
	return v.values[i], true
}

func lookup(name string, sets []Set) (float64, bool) {
	for i := len(sets) - 1; i >= 0; i-- {
		if v, ok := sets[i][name]; ok {
			return v, true
		}
	}
	return 0, false
}
