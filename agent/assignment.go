package agent

import (
	"math"

	"ayto/game"
)

// Assign solves the maximum-weight perfect matching of the bipartite graph
// whose edge (i, j) weighs weights[i][j], returning the column assigned to
// each row. It runs the Hungarian algorithm with potentials in O(n^3). Ties
// go to the lowest column index. Non-finite weights count as zero.
func Assign(weights game.Matrix) []int {
	n := weights.Size()
	if n == 0 {
		return []int{}
	}

	// Maximise weight by minimising cost = top - weight >= 0
	top, bottom := math.Inf(-1), math.Inf(1)
	for _, row := range weights {
		for _, w := range row {
			top = math.Max(top, sanitize(w))
			bottom = math.Min(bottom, sanitize(w))
		}
	}
	cost := func(i, j int) float64 {
		return top - sanitize(weights[i-1][j-1])
	}

	// Rows and columns are 1-based; column 0 is a virtual start.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1) // Row matched to each column
	way := make([]int, n+1)
	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		for {
			used[j0] = true
			i0, delta, j1 := p[j0], math.Inf(1), 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				if cur := cost(i0, j) - u[i0] - v[j]; cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		// Flip the augmenting path
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assignment := make([]int, n)
	for j := 1; j <= n; j++ {
		assignment[p[j]-1] = j - 1
	}

	// With optimal potentials, the optimal assignments are exactly the perfect
	// matchings over zero reduced cost edges.
	eps := 1e-9 * math.Max(1, top-bottom)
	tight := make([][]bool, n)
	for i := range tight {
		tight[i] = make([]bool, n)
		for j := range tight[i] {
			tight[i][j] = cost(i+1, j+1)-u[i+1]-v[j+1] <= eps
		}
	}
	lowest(tight, assignment)
	return assignment
}

// lowest rewrites a perfect matching of the tight graph into its
// lexicographically smallest one. Rows are fixed in order, each to the lowest
// column that still leaves a perfect matching for the rows after it.
func lowest(tight [][]bool, assignment []int) {
	n := len(assignment)
	owner := make([]int, n) // Row holding each column, -1 when free
	for i, j := range assignment {
		owner[j] = i
	}
	for i := 0; i < n; i++ {
		for j := 0; j < assignment[i]; j++ {
			r := owner[j]
			if !tight[i][j] || r < i {
				continue
			}
			// Row i takes j and frees its column; r must reach it through
			// rows after i.
			free := assignment[i]
			owner[j], owner[free] = i, -1
			if augment(r, i, tight, assignment, owner, make([]bool, n)) {
				assignment[i] = j
				break
			}
			owner[j], owner[free] = r, i
		}
	}
}

// augment looks for an alternating path from row r to the free column,
// skipping columns held by rows up to fixed. The path is applied on success.
func augment(r, fixed int, tight [][]bool, assignment, owner []int, visited []bool) bool {
	for k, ok := range tight[r] {
		if !ok || visited[k] {
			continue
		}
		o := owner[k]
		if o != -1 && o <= fixed {
			continue
		}
		visited[k] = true
		if o == -1 || augment(o, fixed, tight, assignment, owner, visited) {
			owner[k] = r
			assignment[r] = k
			return true
		}
	}
	return false
}

// Weight sums the weights picked by an assignment.
func Weight(weights game.Matrix, assignment []int) float64 {
	total := 0.0
	for i, j := range assignment {
		total += sanitize(weights[i][j])
	}
	return total
}

func sanitize(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0
	}
	return w
}
