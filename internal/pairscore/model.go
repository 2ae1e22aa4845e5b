package pairscore

import (
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-json"

	"saju-match/internal/model"
)

// Layer is one dense layer: out = activation(W·in + b).
type Layer struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

// Network is a feed-forward regressor over the concatenated one-hot
// encoding of a pair. Its final layer must have a single output.
type Network struct {
	Layers []Layer `json:"layers"`
}

// Model holds the stem and branch networks. It is read-only after loading.
type Model struct {
	Stem   Network `json:"stem"`
	Branch Network `json:"branch"`
}

// LoadModel reads a JSON weights file and checks its dimensions.
func LoadModel(path string) (*Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m Model
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := m.Stem.check(20); err != nil {
		return nil, fmt.Errorf("stem network: %w", err)
	}
	if err := m.Branch.check(24); err != nil {
		return nil, fmt.Errorf("branch network: %w", err)
	}
	return &m, nil
}

func (m *Model) ScoreStem(a, b model.Stem) float64 {
	return m.Stem.forward(oneHot(10, int(a), int(b)))
}

func (m *Model) ScoreBranch(a, b model.Branch) float64 {
	return m.Branch.forward(oneHot(12, int(a), int(b)))
}

func (n Network) check(inputs int) error {
	if len(n.Layers) == 0 {
		return fmt.Errorf("no layers")
	}
	width := inputs
	for i, l := range n.Layers {
		if len(l.Weights) == 0 || len(l.Weights) != len(l.Bias) {
			return fmt.Errorf("layer %d: %d weight rows, %d biases", i, len(l.Weights), len(l.Bias))
		}
		for j, row := range l.Weights {
			if len(row) != width {
				return fmt.Errorf("layer %d row %d: width %d, want %d", i, j, len(row), width)
			}
		}
		switch l.Activation {
		case "", "linear", "relu", "sigmoid":
		default:
			return fmt.Errorf("layer %d: unknown activation %q", i, l.Activation)
		}
		width = len(l.Weights)
	}
	if width != 1 {
		return fmt.Errorf("output width %d, want 1", width)
	}
	return nil
}

func (n Network) forward(in []float64) float64 {
	for _, l := range n.Layers {
		out := make([]float64, len(l.Weights))
		for i, row := range l.Weights {
			sum := l.Bias[i]
			for j, w := range row {
				sum += w * in[j]
			}
			out[i] = activate(l.Activation, sum)
		}
		in = out
	}
	return in[0]
}

func activate(name string, x float64) float64 {
	switch name {
	case "relu":
		return math.Max(0, x)
	case "sigmoid":
		return 1 / (1 + math.Exp(-x))
	}
	return x
}

// oneHot encodes a and b (both 1-based) as two concatenated width-wide
// one-hot vectors.
func oneHot(width, a, b int) []float64 {
	v := make([]float64, 2*width)
	v[a-1] = 1
	v[width+b-1] = 1
	return v
}
