// Package compiler is the seam between flattened shader sources and
// whatever turns them into an executable program object.
//
// glslpp itself never calls a graphics API: it hands each flattened Unit to
// a Compiler and stays indifferent to what happens next. For WGSL units the
// package ships a naga-backed implementation producing SPIR-V; GLSL units
// are compiled by the GL driver behind whichever Compiler the application
// supplies.
package compiler

import (
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/glslpp"
)

// Compiler turns one flattened shader unit into a compiled artifact.
type Compiler interface {
	Compile(unit glslpp.Unit) ([]byte, error)
}

// WGSL compiles flattened WGSL units to SPIR-V through naga.
type WGSL struct {
	Options naga.CompileOptions
}

// NewWGSL creates a WGSL compiler with naga's default options.
func NewWGSL() *WGSL {
	return &WGSL{Options: naga.DefaultOptions()}
}

// Compile translates a flattened WGSL unit to SPIR-V binary.
func (c *WGSL) Compile(unit glslpp.Unit) ([]byte, error) {
	if unit.Kind != glslpp.KindWGSL {
		return nil, fmt.Errorf("no compiler registered for %s units", unit.Kind)
	}
	spv, err := naga.CompileWithOptions(unit.Source, c.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", unit.Path, err)
	}
	return spv, nil
}

// Words converts a SPIR-V byte stream into the little-endian 32-bit words
// that shader-module descriptors expect.
func Words(spirv []byte) []uint32 {
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = uint32(spirv[i*4]) |
			uint32(spirv[i*4+1])<<8 |
			uint32(spirv[i*4+2])<<16 |
			uint32(spirv[i*4+3])<<24
	}
	return words
}
