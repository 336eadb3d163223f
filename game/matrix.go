package game

// Matrix is a square matrix over (group A index, group B index) pairs.
type Matrix [][]float64

// NewMatrix returns an n×n matrix with every entry set to fill.
func NewMatrix(n int, fill float64) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			m[i][j] = fill
		}
	}
	return m
}

func (m Matrix) Size() int {
	return len(m)
}

func (m Matrix) Copy() Matrix {
	c := make(Matrix, len(m))
	for i, row := range m {
		c[i] = append([]float64(nil), row...)
	}
	return c
}

// Sum adds every entry.
func (m Matrix) Sum() float64 {
	total := 0.0
	for _, row := range m {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// IsPermutation reports whether m is a 0/1 matrix with exactly one 1 per row
// and per column.
func (m Matrix) IsPermutation() bool {
	n := len(m)
	cols := make([]int, n)
	for _, row := range m {
		if len(row) != n {
			return false
		}
		ones := 0
		for j, v := range row {
			switch v {
			case 0:
			case 1:
				ones++
				cols[j]++
			default:
				return false
			}
		}
		if ones != 1 {
			return false
		}
	}
	for _, c := range cols {
		if c != 1 {
			return false
		}
	}
	return true
}
