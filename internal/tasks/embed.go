package tasks

import (
	"embed"
	"strings"
)

//go:embed data
var embeddedData embed.FS

type embeddedLoader struct{}

func (embeddedLoader) Load(name string) ([]byte, error) {
	// Ensure the path starts with "data/"
	if !strings.HasPrefix(name, "data/") {
		name = "data/" + name
	}
	return embeddedData.ReadFile(name)
}

// Embedded returns a Loader over the starter templates bundled with the
// binary.
func Embedded() Loader {
	return embeddedLoader{}
}
