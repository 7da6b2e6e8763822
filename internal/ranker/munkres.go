package ranker

import "math"

// kuhnMunkresMin solves the square minimum-cost bipartite assignment
// problem: for an n×n cost matrix, find a permutation of columns minimizing
// the sum of cost[i][perm[i]]. Hand-rolled, per DESIGN.md: the original
// source's `pathfinding::kuhn_munkres_min` has no Go equivalent in the
// corpus, so this is the textbook O(n³) Hungarian algorithm with row/column
// potentials (the Jonker–Volgenant-free "shortest augmenting path" form
// commonly published for competitive programming), translated directly
// rather than adapted from any example file.
//
// cost must be square; callers pad with padSquare before calling.
// Returns the total cost and, for each row, the column assigned to it.
func kuhnMunkresMin(cost [][]int64) (total int64, colForRow []int) {
	n := len(cost)
	if n == 0 {
		return 0, nil
	}

	const inf = math.MaxInt64 / 2

	u := make([]int64, n+1)
	v := make([]int64, n+1)
	p := make([]int, n+1) // p[j] = row currently matched to column j (1-indexed), 0 = unmatched
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0

		minv := make([]int64, n+1)
		used := make([]bool, n+1)

		for j := range minv {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]

			delta := int64(inf)
			j1 := -1

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}

				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
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

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	colForRow = make([]int, n)

	for j := 1; j <= n; j++ {
		if p[j] != 0 {
			colForRow[p[j]-1] = j - 1
		}
	}

	for i, j := range colForRow {
		total += cost[i][j]
	}

	return total, colForRow
}

// padSquare pads an m×n cost matrix to an n×n square (n = max(rows, cols))
// with dummy rows/columns of max(matrix)+1, per spec.md §4.6.1: when m > n,
// add columns so every source track still gets an assignment; when n > m,
// dummy rows are needed instead so the square Kuhn–Munkres solver below has
// a matrix to run on at all. Callers discard any assignment touching a
// padded row or column.
func padSquare(cost [][]int64, rows, cols int) [][]int64 {
	n := max(rows, cols)
	if rows == cols {
		return cost
	}

	fill := int64(0)

	for _, row := range cost {
		for _, v := range row {
			if v > fill {
				fill = v
			}
		}
	}

	fill++

	padded := make([][]int64, n)
	for i := range padded {
		padded[i] = make([]int64, n)
		for j := range padded[i] {
			padded[i][j] = fill
		}

		if i < rows {
			copy(padded[i], cost[i])
		}
	}

	return padded
}
