// Package classifier loads the trained phishing model and scores feature
// vectors with it. Training happens elsewhere; this package only reads the
// exported artifact.
package classifier

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/Bahjat/phish-verdict/internal/features"
	"gopkg.in/yaml.v3"
)

const defaultThreshold = 0.5

var (
	errNoFeatures  = errors.New("classifier: artifact lists no features and no features file was given")
	errWeightCount = errors.New("classifier: weight count does not match feature count")
	errScalerShape = errors.New("classifier: scaler shape does not match feature count")
	errThreshold   = errors.New("classifier: threshold must be in (0, 1)")
	errSchemaDrift = errors.New("classifier: vector does not follow the model schema")
)

// Artifact is the on-disk model: a standard scaler followed by a logistic
// regression, with the feature names both were fitted on.
type Artifact struct {
	Version  string   `yaml:"version"`
	Features []string `yaml:"features"`

	Scaler struct {
		Mean  []float64 `yaml:"mean"`
		Scale []float64 `yaml:"scale"`
	} `yaml:"scaler"`

	Weights   []float64 `yaml:"weights"`
	Bias      float64   `yaml:"bias"`
	Threshold float64   `yaml:"threshold"`
}

// Linear is a loaded, immutable model.
type Linear struct {
	version   string
	schema    features.Schema
	mean      []float64
	scale     []float64
	weights   []float64
	bias      float64
	threshold float64
}

// Load reads the artifact at path. When the artifact carries no feature names
// they are read from featuresPath, a YAML list.
func Load(path, featuresPath string) (*Linear, error) {
	var a Artifact
	if err := readYAML(path, &a); err != nil {
		return nil, err
	}

	if len(a.Features) == 0 {
		if featuresPath == "" {
			return nil, errNoFeatures
		}
		if err := readYAML(featuresPath, &a.Features); err != nil {
			return nil, err
		}
	}

	return New(a)
}

// New validates a and builds the model from it.
func New(a Artifact) (*Linear, error) {
	schema, err := features.NewSchema(a.Features)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}

	n := schema.Len()
	if len(a.Weights) != n {
		return nil, fmt.Errorf("%w: %d weights, %d features", errWeightCount, len(a.Weights), n)
	}

	mean, scale := a.Scaler.Mean, a.Scaler.Scale
	if mean == nil {
		mean = make([]float64, n)
	}
	if scale == nil {
		scale = slices.Repeat([]float64{1}, n)
	}
	if len(mean) != n || len(scale) != n {
		return nil, fmt.Errorf("%w: mean %d, scale %d, features %d", errScalerShape, len(mean), len(scale), n)
	}

	threshold := a.Threshold
	if threshold == 0 {
		threshold = defaultThreshold
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("%w: got %v", errThreshold, threshold)
	}

	return &Linear{
		version:   a.Version,
		schema:    schema,
		mean:      slices.Clone(mean),
		scale:     slices.Clone(scale),
		weights:   slices.Clone(a.Weights),
		bias:      a.Bias,
		threshold: threshold,
	}, nil
}

// Schema returns the feature order the model was trained on.
func (m *Linear) Schema() features.Schema {
	return m.schema
}

// Version returns the artifact version string.
func (m *Linear) Version() string {
	return m.version
}

// Probability returns the model's phishing probability for v.
func (m *Linear) Probability(v features.Vector) (float64, error) {
	if !slices.Equal(v.Names(), m.schema.Names()) {
		return 0, fmt.Errorf("%w: got %d features, want %d", errSchemaDrift, v.Len(), m.schema.Len())
	}

	z := m.bias
	for i, x := range v.Values() {
		s := m.scale[i]
		if s == 0 {
			s = 1
		}
		z += m.weights[i] * (x - m.mean[i]) / s
	}
	return 1 / (1 + math.Exp(-z)), nil
}

// Classify reports whether v is phishing.
func (m *Linear) Classify(v features.Vector) (bool, error) {
	p, err := m.Probability(v)
	if err != nil {
		return false, err
	}
	return p >= m.threshold, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("classifier: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("classifier: parse %s: %w", path, err)
	}
	return nil
}
