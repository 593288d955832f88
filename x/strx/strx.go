package strx

// First returns the first non-empty string, or "" when all are empty.
func First(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
