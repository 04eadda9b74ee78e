package inference

import (
	"context"
	"errors"
	"fmt"
)

// Tree ensemble tasks and aggregations.
const (
	TaskClassification = "classification"
	TaskRegression     = "regression"

	AggregateMean = "mean"
	AggregateSum  = "sum"
)

// Node is one split or leaf of an exported decision tree. A node with a
// negative Left child is a leaf and carries Value: class weights for
// classification, a single output for regression.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

// Tree is a flat node array rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// TreeEnsemble evaluates a forest or boosted ensemble exported from the
// training environment.
type TreeEnsemble struct {
	Task         string  `json:"task"`
	NumFeatures  int     `json:"n_features"`
	Classes      []int   `json:"classes"`
	Aggregation  string  `json:"aggregation"`
	BaseScore    float64 `json:"base_score"`
	LearningRate float64 `json:"learning_rate"`
	Trees        []Tree  `json:"trees"`
}

// LoadTreeEnsemble reads and validates an exported ensemble.
func LoadTreeEnsemble(path string) (*TreeEnsemble, error) {
	var m TreeEnsemble
	if err := loadJSON(path, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("tree ensemble %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks structural invariants once so evaluation can index without
// bounds surprises. Children must sit after their parent, which also rules
// out cycles.
func (m *TreeEnsemble) Validate() error {
	switch m.Task {
	case TaskClassification:
		if len(m.Classes) == 0 {
			return errors.New("classification ensemble without classes")
		}
	case TaskRegression:
	default:
		return fmt.Errorf("unknown task %q", m.Task)
	}
	switch m.Aggregation {
	case "":
		m.Aggregation = AggregateMean
	case AggregateMean, AggregateSum:
	default:
		return fmt.Errorf("unknown aggregation %q", m.Aggregation)
	}
	if m.Aggregation == AggregateSum && m.LearningRate == 0 {
		m.LearningRate = 1
	}
	if m.NumFeatures <= 0 {
		return errors.New("n_features must be positive")
	}
	if len(m.Trees) == 0 {
		return errors.New("ensemble has no trees")
	}

	for ti, tree := range m.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, n := range tree.Nodes {
			if n.Left < 0 {
				want := 1
				if m.Task == TaskClassification {
					want = len(m.Classes)
				}
				if len(n.Value) != want {
					return fmt.Errorf("tree %d leaf %d: expected %d values, got %d", ti, ni, want, len(n.Value))
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= m.NumFeatures {
				return fmt.Errorf("tree %d node %d: feature %d out of range", ti, ni, n.Feature)
			}
			if n.Left <= ni || n.Right <= ni || n.Left >= len(tree.Nodes) || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: bad children %d/%d", ti, ni, n.Left, n.Right)
			}
		}
	}
	return nil
}

func (t *Tree) leaf(x []float64) []float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Left < 0 {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// PredictClass averages the normalized leaf class weights across trees and
// returns the class id with the highest score. Ties go to the lower index.
func (m *TreeEnsemble) PredictClass(ctx context.Context, x []float64) (int, error) {
	if m.Task != TaskClassification {
		return 0, errors.New("ensemble is not a classifier")
	}
	if err := checkWidth(len(x), m.NumFeatures); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	scores := make([]float64, len(m.Classes))
	for i := range m.Trees {
		leaf := m.Trees[i].leaf(x)
		var total float64
		for _, w := range leaf {
			total += w
		}
		if total == 0 {
			continue
		}
		for c, w := range leaf {
			scores[c] += w / total
		}
	}

	best := 0
	for c := 1; c < len(scores); c++ {
		if scores[c] > scores[best] {
			best = c
		}
	}
	return m.Classes[best], nil
}

// PredictValue returns the mean of tree outputs, or base_score plus the
// learning-rate-weighted sum for boosted ensembles.
func (m *TreeEnsemble) PredictValue(ctx context.Context, x []float64) (float64, error) {
	if m.Task != TaskRegression {
		return 0, errors.New("ensemble is not a regressor")
	}
	if err := checkWidth(len(x), m.NumFeatures); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var sum float64
	for i := range m.Trees {
		sum += m.Trees[i].leaf(x)[0]
	}
	if m.Aggregation == AggregateSum {
		return m.BaseScore + m.LearningRate*sum, nil
	}
	return sum / float64(len(m.Trees)), nil
}
