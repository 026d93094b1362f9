package instruction

// NotFound is returned by Find when the keyword does not occur.
const NotFound = -1

// Find returns the index of the first token equal to keyword at or after startFrom.
func Find(tokens []string, keyword string, startFrom int) int {
	if startFrom < 0 {
		startFrom = 0
	}
	for i := startFrom; i < len(tokens); i++ {
		if tokens[i] == keyword {
			return i
		}
	}
	return NotFound
}
