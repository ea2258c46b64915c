package forecast

import (
	"errors"
	"math/rand"
)

// Forest is a bagged ensemble of regression trees; its prediction is the mean of
// the trees.
type Forest struct {
	trees []*RegressionTree
}

// TrainForest grows trees on bootstrap samples drawn from a PRNG seeded with seed,
// so identical input and seed give an identical forest.
func TrainForest(x [][]float64, y []float64, trees, maxDepth int, seed int64) (*Forest, error) {
	if len(x) == 0 {
		return nil, errors.New("forecast: empty training set")
	}
	if trees <= 0 {
		return nil, errors.New("forecast: tree count must be positive")
	}

	rng := rand.New(rand.NewSource(seed))
	n := len(x)
	f := &Forest{trees: make([]*RegressionTree, 0, trees)}
	for t := 0; t < trees; t++ {
		sample := make([]int, n)
		for i := range sample {
			sample[i] = rng.Intn(n)
		}
		tree := &RegressionTree{}
		if err := tree.Fit(x, y, sample, maxDepth); err != nil {
			return nil, err
		}
		f.trees = append(f.trees, tree)
	}
	return f, nil
}

// Predict averages the trees for one row.
func (f *Forest) Predict(row []float64) float64 {
	sum := 0.0
	for _, t := range f.trees {
		sum += t.Predict(row)
	}
	return sum / float64(len(f.trees))
}

// Size returns the number of trees.
func (f *Forest) Size() int { return len(f.trees) }
