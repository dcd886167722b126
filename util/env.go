package util

import "strings"

// ParseEnvironmentVariables converts a list of NAME=value strings, as returned by os.Environ,
// into a map. Entries without an equals sign are dropped and whitespace around each name is
// trimmed; values are kept as is.
func ParseEnvironmentVariables(environment []string) map[string]string {
	environmentMap := make(map[string]string)

	for _, variable := range environment {
		variableSplit := strings.SplitN(variable, "=", 2)

		if len(variableSplit) == 2 {
			environmentMap[strings.TrimSpace(variableSplit[0])] = variableSplit[1]
		}
	}

	return environmentMap
}
