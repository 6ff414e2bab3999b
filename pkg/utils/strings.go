package utils

// RemoveEmptyStrings drops empty entries, as produced by splitting a
// comma-separated env value with trailing separators.
func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s != "" {
			result = append(result, s)
		}
	}

	return result
}
