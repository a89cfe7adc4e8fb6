package search

// fuzzyDistance is the maximum edit distance at which two tokens are
// considered a fuzzy match.
const fuzzyDistance = 2

// levenshtein computes the edit distance between a and b with unit cost for
// substitution, insertion, and deletion.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	rows := len(rb) + 1
	cols := len(ra) + 1

	matrix := make([][]int, rows)
	for i := range matrix {
		matrix[i] = make([]int, cols)
		matrix[i][0] = i
	}
	for j := 1; j < cols; j++ {
		matrix[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if rb[i-1] == ra[j-1] {
				cost = 0
			}
			deletion := matrix[i][j-1] + 1
			insertion := matrix[i-1][j] + 1
			substitution := matrix[i-1][j-1] + cost

			min := substitution
			if deletion < min {
				min = deletion
			}
			if insertion < min {
				min = insertion
			}
			matrix[i][j] = min
		}
	}

	return matrix[rows-1][cols-1]
}
