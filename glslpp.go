// Package glslpp flattens shading-language source files for the GoGPU
// ecosystem.
//
// glslpp resolves an extended directive dialect (#include composition,
// #ifndef/#define/#endif single-inclusion guards, #pragma once and a
// once-per-program #version line) into a single directive-free source
// string with comments stripped and blank-line runs condensed, ready to hand
// to a shader compiler.
//
// Example usage:
//
//	pp := glslpp.NewProcessor(glslpp.Options{
//	    IncludeDirs: []string{"assets/shaders/include"},
//	})
//	source, err := pp.ProcessUnit("assets/shaders/color.frag")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Whole programs classify each component by file extension:
//
//	prog, err := pp.ProcessProgram("SingleColor",
//	    "assets/shaders/color.vert",
//	    "assets/shaders/color.frag",
//	)
//
// The flattened units can then be fed to the compiler package, which bridges
// WGSL units to github.com/gogpu/naga.
package glslpp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/glslpp/preprocess"
)

// Options configure a Processor.
type Options struct {
	// IncludeDirs seeds the search list for angle-bracketed includes.
	// Registration order is search order; AddIncludeDirectory appends more.
	IncludeDirs []string

	// OutputDir, when set, receives a flattened copy of every processed
	// unit, named by the unit's base file name. Purely observational; the
	// directory is created on first use.
	OutputDir string

	// AllowMissingVersion flattens units that carry no #version directive
	// (WGSL sources) instead of dropping everything ahead of one.
	AllowMissingVersion bool

	// KeepTrailingNewline preserves the single trailing newline on the
	// flattened output instead of trimming it.
	KeepTrailingNewline bool
}

// Processor preprocesses shading-language source units. Its configuration
// is process-wide setup state: mutate it only while no ProcessUnit call is
// in flight. Independent ProcessUnit calls may run concurrently, since each
// one owns its session and takes a snapshot of the include-directory list.
type Processor struct {
	opts Options
}

// NewProcessor creates a Processor with the given options. Include
// directories are slash-normalized at registration.
func NewProcessor(opts Options) *Processor {
	p := &Processor{opts: Options{
		OutputDir:           opts.OutputDir,
		AllowMissingVersion: opts.AllowMissingVersion,
		KeepTrailingNewline: opts.KeepTrailingNewline,
	}}
	for _, dir := range opts.IncludeDirs {
		p.AddIncludeDirectory(dir)
	}
	return p
}

// AddIncludeDirectory appends a directory to the search list consulted for
// angle-bracketed includes.
func (p *Processor) AddIncludeDirectory(dir string) {
	p.opts.IncludeDirs = append(p.opts.IncludeDirs, filepath.ToSlash(dir))
}

// SetOutputDirectory configures flattened-source materialization. Pass ""
// to disable it.
func (p *Processor) SetOutputDirectory(dir string) {
	p.opts.OutputDir = dir
}

// ProcessUnit flattens the source unit at path. Either the complete
// flattened source is returned or an error; there is no partial output.
// Parse failures are *preprocess.SourceError values carrying file, line and
// inclusion-trail context.
func (p *Processor) ProcessUnit(path string) (string, error) {
	Logger().Debug("preprocessing unit", "path", path)

	sess := preprocess.NewSession(preprocess.Options{
		IncludeDirs:         append([]string(nil), p.opts.IncludeDirs...),
		AllowMissingVersion: p.opts.AllowMissingVersion,
	})
	text, err := sess.Process(path)
	if err != nil {
		return "", err
	}
	text = preprocess.CollapseNewlines(text, !p.opts.KeepTrailingNewline)

	if p.opts.OutputDir != "" {
		if err := p.materialize(path, text); err != nil {
			return "", err
		}
	}
	return text, nil
}

// ProcessProgram flattens every component of a named shader program,
// classifying each by its file extension.
func (p *Processor) ProcessProgram(name string, paths ...string) (*Program, error) {
	prog := &Program{Name: name}
	for _, path := range paths {
		ext := filepath.Ext(path)
		if ext == "" {
			return nil, fmt.Errorf("program %s: no shader extension on file %q", name, path)
		}
		kind := KindFromPath(path)
		if kind == KindUnknown {
			return nil, fmt.Errorf("program %s: unknown or unsupported shader of type %q",
				name, strings.TrimPrefix(ext, "."))
		}
		source, err := p.ProcessUnit(path)
		if err != nil {
			return nil, fmt.Errorf("program %s: %w", name, err)
		}
		prog.Units = append(prog.Units, Unit{Path: path, Kind: kind, Source: source})
	}
	return prog, nil
}

// Unit is one flattened shader component, ready for a downstream compiler.
type Unit struct {
	Path   string
	Kind   ShaderKind
	Source string
}

// Program groups the flattened units of one shader program.
type Program struct {
	Name  string
	Units []Unit
}

// materialize writes the flattened text next to its siblings in the
// configured output directory. The output is never read back.
func (p *Processor) materialize(unitPath, text string) error {
	if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	out := filepath.Join(p.opts.OutputDir, AssetName(unitPath))
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing flattened source: %w", err)
	}
	Logger().Info("wrote flattened source", "path", out)
	return nil
}

// AssetName returns the base file name of path, accepting both windows and
// unix style separators regardless of host platform.
func AssetName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
