package util

import (
	"fmt"
	"os"
	"regexp"
)

var safeNameTransformer = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SafeFilename replaces any characters unsafe for a filename with dashes.
func SafeFilename(name string) string {
	return safeNameTransformer.ReplaceAllString(name, "-")
}

// Pluralize returns a human friendly count phrase.
func Pluralize(count int, singular string, plural string) string {
	if count == 0 {
		return fmt.Sprintf("no %s", plural)
	}
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Exists returns true if the filename or directory specified by fn exists.
func Exists(fn string) bool {
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		return false
	}
	return true
}
