// Package config loads glslpp project manifests.
//
// A manifest names the include search directories, an optional output
// directory for flattened sources, and the shader programs to build:
//
//	include_dirs = ["shaders/include"]
//	output_dir   = "build/flattened"
//
//	program "SingleColor" {
//	  files = ["shaders/color.vert", "shaders/color.frag"]
//	}
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Manifest is the decoded project configuration consumed by the glslppc
// command.
type Manifest struct {
	IncludeDirs []string  `hcl:"include_dirs,optional"`
	OutputDir   string    `hcl:"output_dir,optional"`
	Programs    []Program `hcl:"program,block"`
}

// Program names one shader program and lists its component source files.
type Program struct {
	Name  string   `hcl:"name,label"`
	Files []string `hcl:"files"`
}

// Load reads and decodes the manifest at path. The file extension selects
// the syntax (.hcl native, .json HCL-JSON).
func Load(path string) (*Manifest, error) {
	var m Manifest
	if err := hclsimple.DecodeFile(path, nil, &m); err != nil {
		return nil, fmt.Errorf("loading manifest %s: %w", path, err)
	}
	return &m, nil
}
