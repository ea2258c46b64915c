package forecast

import (
	"errors"
	"sort"
)

// RegressionTree is a CART regressor stored as a flat node slice; node 0 is the root.
type RegressionTree struct {
	nodes []treeNode
}

type treeNode struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     float64
	Leaf      bool
}

// Fit grows the tree on the rows of x selected by idx (duplicates allowed, as in a
// bootstrap sample). Each split minimises the summed squared error of its children.
func (t *RegressionTree) Fit(x [][]float64, y []float64, idx []int, maxDepth int) error {
	if len(idx) == 0 {
		return errors.New("forecast: no training rows")
	}
	if len(x) != len(y) {
		return errors.New("forecast: features and targets size mismatch")
	}
	if maxDepth <= 0 {
		maxDepth = 1
	}
	t.nodes = t.build(x, y, idx, 0, maxDepth)
	return nil
}

// Predict walks the tree for one row.
func (t *RegressionTree) Predict(row []float64) float64 {
	i := 0
	for {
		n := t.nodes[i]
		if n.Leaf {
			return n.Value
		}
		if row[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Depth returns the longest root-to-leaf edge count.
func (t *RegressionTree) Depth() int {
	if len(t.nodes) == 0 {
		return 0
	}
	var walk func(i int) int
	walk = func(i int) int {
		n := t.nodes[i]
		if n.Leaf {
			return 0
		}
		return 1 + max(walk(n.Left), walk(n.Right))
	}
	return walk(0)
}

func (t *RegressionTree) build(x [][]float64, y []float64, idx []int, depth, maxDepth int) []treeNode {
	value, pure := meanAndPurity(y, idx)
	leaf := []treeNode{{Feature: -1, Left: -1, Right: -1, Value: value, Leaf: true}}
	if depth >= maxDepth || len(idx) < 2 || pure {
		return leaf
	}

	feature, threshold, ok := bestSplit(x, y, idx)
	if !ok {
		return leaf
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leaf
	}

	leftNodes := t.build(x, y, left, depth+1, maxDepth)
	rightNodes := t.build(x, y, right, depth+1, maxDepth)

	nodes := make([]treeNode, 0, 1+len(leftNodes)+len(rightNodes))
	nodes = append(nodes, treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      1,
		Right:     1 + len(leftNodes),
		Value:     value,
	})
	nodes = append(nodes, offset(leftNodes, 1)...)
	nodes = append(nodes, offset(rightNodes, 1+len(leftNodes))...)
	return nodes
}

// offset shifts child pointers of a subtree placed at position base.
func offset(nodes []treeNode, base int) []treeNode {
	for i := range nodes {
		if !nodes[i].Leaf {
			nodes[i].Left += base
			nodes[i].Right += base
		}
	}
	return nodes
}

// bestSplit scans every feature for the threshold with the lowest child SSE.
// Thresholds sit midway between consecutive distinct values. Ties keep the
// earliest feature and lowest threshold.
func bestSplit(x [][]float64, y []float64, idx []int) (int, float64, bool) {
	n := len(idx)
	var total, totalSq float64
	for _, i := range idx {
		total += y[i]
		totalSq += y[i] * y[i]
	}

	bestFeature := -1
	bestThreshold := 0.0
	bestCost := 0.0

	order := make([]int, n)
	for f := range x[idx[0]] {
		copy(order, idx)
		sort.SliceStable(order, func(a, b int) bool { return x[order[a]][f] < x[order[b]][f] })

		var ls, lq float64
		for k := 1; k < n; k++ {
			prev := order[k-1]
			ls += y[prev]
			lq += y[prev] * y[prev]

			lo, hi := x[prev][f], x[order[k]][f]
			if lo == hi {
				continue
			}
			nl, nr := float64(k), float64(n-k)
			rs := total - ls
			cost := (lq - ls*ls/nl) + ((totalSq - lq) - rs*rs/nr)
			if bestFeature == -1 || cost < bestCost {
				bestFeature = f
				bestCost = cost
				bestThreshold = lo + (hi-lo)/2
				if bestThreshold >= hi {
					bestThreshold = lo
				}
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature != -1
}

func meanAndPurity(y []float64, idx []int) (float64, bool) {
	sum := 0.0
	lo, hi := y[idx[0]], y[idx[0]]
	for _, i := range idx {
		v := y[i]
		sum += v
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return sum / float64(len(idx)), lo == hi
}
