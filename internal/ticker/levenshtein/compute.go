package levenshtein

// Compute returns the edit script that turns old into next.
//
// The script comes from a Levenshtein matrix where inserts and deletes cost
// one and a diagonal move costs zero for equal units and one for different
// units. A diagonal move on different units is emitted as Same: the column
// survives and scrolls to its new unit. When several moves lead to an
// optimal path the backtrace prefers Same, then Delete, then Insert, which
// keeps as many existing columns alive as the alignment allows.
func Compute(old, next []rune) Script {
	m, n := len(old), len(next)

	switch {
	case m == 0 && n == 0:
		return Script{}
	case m == 0:
		return repeat(Insert, n)
	case n == 0:
		return repeat(Delete, m)
	}

	d := matrix(old, next)

	s := make(Script, 0, max(m, n))
	row, col := m, n
	for row > 0 || col > 0 {
		switch {
		case row > 0 && col > 0 && d[row][col] == d[row-1][col-1]+substitutionCost(old[row-1], next[col-1]):
			s = append(s, Same)
			row--
			col--
		case row > 0 && d[row][col] == d[row-1][col]+1:
			s = append(s, Delete)
			row--
		default:
			s = append(s, Insert)
			col--
		}
	}

	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return s
}

// Distance returns the Levenshtein distance between old and next with unit
// insert, delete, and substitution costs.
func Distance(old, next []rune) int {
	if len(old) == 0 {
		return len(next)
	}
	if len(next) == 0 {
		return len(old)
	}
	return matrix(old, next)[len(old)][len(next)]
}

// matrix builds the (len(old)+1) x (len(next)+1) cost table.
func matrix(old, next []rune) [][]int {
	m, n := len(old), len(next)

	d := make([][]int, m+1)
	cells := make([]int, (m+1)*(n+1))
	for i := range d {
		d[i] = cells[i*(n+1) : (i+1)*(n+1)]
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			d[i][j] = min(
				d[i-1][j]+1,
				d[i][j-1]+1,
				d[i-1][j-1]+substitutionCost(old[i-1], next[j-1]),
			)
		}
	}
	return d
}

func substitutionCost(a, b rune) int {
	if a == b {
		return 0
	}
	return 1
}

func repeat(a Action, n int) Script {
	s := make(Script, n)
	for i := range s {
		s[i] = a
	}
	return s
}
