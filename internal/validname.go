package internal

import (
	"regexp"
)

// Name rules enforced by the C library (NC_EBADNAME), checked here
// first so callers get a clear message before any native call.
const (
	// A valid name must start with a letter, digit or underscore.
	// It may contain any character after that except control and slash.
	pattern = `^[\pL\pN_][^\pC/]*$`
	// It may not end with a whitespace character.
	antiPattern = `\pZ$`
)

// Longest name the C library accepts (NC_MAX_NAME).
const maxNameLen = 256

var (
	re     = regexp.MustCompile(pattern)
	antiRe = regexp.MustCompile(antiPattern)
)

// IsValidNetCDFName returns true if name is a valid NetCDF object name.
func IsValidNetCDFName(name string) bool {
	if len(name) > maxNameLen {
		return false
	}
	return re.MatchString(name) && !antiRe.MatchString(name)
}
