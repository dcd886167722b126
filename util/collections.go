package util

// ListContainsElement returns true if the given list contains the given element
func ListContainsElement[S ~[]E, E comparable](list S, element E) bool {
	for _, item := range list {
		if item == element {
			return true
		}
	}

	return false
}

// RemoveDuplicatesFromList returns a copy of the given list with all duplicates removed,
// keeping the first occurrence of each element
func RemoveDuplicatesFromList[S ~[]E, E comparable](list S) S {
	out := make(S, 0, len(list))
	present := make(map[E]bool)

	for _, value := range list {
		if present[value] {
			continue
		}

		out = append(out, value)
		present[value] = true
	}

	return out
}

// CloneStringMap returns a copy of the given map of strings
func CloneStringMap(mapToClone map[string]string) map[string]string {
	out := map[string]string{}

	for key, value := range mapToClone {
		out[key] = value
	}

	return out
}
