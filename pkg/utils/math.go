package utils

// CeilDiv returns ceil(a/b) for positive b, and 0 otherwise.
func CeilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
