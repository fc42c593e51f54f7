// Package mconfig loads the interpreter's tunable limits from YAML,
// following the teacher's own dependency on gopkg.in/yaml.v3 for
// config-shaped structs.
package mconfig

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Settings holds the interpreter's tunable limits (spec §5/§9's
// "implementation-defined constants" made explicit and configurable).
type Settings struct {
	// MaxRecursionDepth bounds user-function call nesting before the
	// evaluator raises interrors.RecursionExceeded.
	MaxRecursionDepth int `yaml:"max_recursion_depth"`
	// AllocatorChunkSize is loaded and stored but not read by any
	// package: value.Buffer requests exactly the bytes a value needs.
	AllocatorChunkSize int `yaml:"allocator_chunk_size"`
	// DisplayWidth is loaded and stored but not read by any package:
	// the display formatter does not truncate rows, and cell/struct
	// summaries use a fixed limit of 20 elements.
	DisplayWidth int `yaml:"display_width"`
}

// Default returns the built-in Settings used when no configuration
// file is supplied.
func Default() Settings {
	return Settings{
		MaxRecursionDepth:  500,
		AllocatorChunkSize: 4096,
		DisplayWidth:       80,
	}
}

// Load reads Settings from r as YAML, starting from Default() so a
// partial document only overrides the fields it names.
func Load(r io.Reader) (Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return Settings{}, err
	}
	return s, nil
}
