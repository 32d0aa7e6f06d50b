// Command glslppc flattens shading-language source files.
//
// Usage:
//
//	glslppc [options] <input...>
//
// Examples:
//
//	glslppc shader.frag                      # Flatten to stdout
//	glslppc -I shaders/include shader.frag   # With an include directory
//	glslppc -o build/flattened shader.frag   # Write into a directory
//	glslppc -config project.hcl              # Process a project manifest
//	glslppc -spirv -o build lighting.wgsl    # Also compile WGSL to SPIR-V
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/glslpp"
	"github.com/gogpu/glslpp/compiler"
	"github.com/gogpu/glslpp/config"
)

// dirList collects repeated -I flags in registration order.
type dirList []string

func (d *dirList) String() string     { return strings.Join(*d, ",") }
func (d *dirList) Set(v string) error { *d = append(*d, v); return nil }

var (
	includes dirList
	output   = flag.String("o", "", "output directory for flattened sources (default: stdout)")
	manifest = flag.String("config", "", "HCL project manifest")
	noVerGat = flag.Bool("no-version-gate", false, "flatten units that carry no #version directive")
	spirv    = flag.Bool("spirv", false, "also compile WGSL units to SPIR-V (requires -o)")
	version  = flag.Bool("version", false, "print version")
)

const glslppVersion = "0.1.0-dev"

func main() {
	flag.Var(&includes, "I", "include search directory (repeatable, searched in order)")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("glslppc version %s\n", glslppVersion)
		return
	}
	if *spirv && *output == "" {
		fmt.Fprintln(os.Stderr, "Error: -spirv requires -o")
		os.Exit(1)
	}

	opts := glslpp.Options{
		IncludeDirs:         includes,
		OutputDir:           *output,
		AllowMissingVersion: *noVerGat,
	}

	if *manifest != "" {
		if err := runManifest(*manifest, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	pp := glslpp.NewProcessor(opts)
	for _, input := range args {
		if err := runUnit(pp, input); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
}

// runUnit flattens one unit, printing to stdout unless an output directory
// captures it, and compiles WGSL units when requested.
func runUnit(pp *glslpp.Processor, input string) error {
	source, err := pp.ProcessUnit(input)
	if err != nil {
		return err
	}
	if *output == "" {
		fmt.Println(source)
		return nil
	}
	if *spirv && glslpp.KindFromPath(input) == glslpp.KindWGSL {
		return compileWGSL(input, source)
	}
	return nil
}

func compileWGSL(input, source string) error {
	unit := glslpp.Unit{Path: input, Kind: glslpp.KindWGSL, Source: source}
	spv, err := compiler.NewWGSL().Compile(unit)
	if err != nil {
		return err
	}
	base := glslpp.AssetName(input)
	out := filepath.Join(*output, strings.TrimSuffix(base, filepath.Ext(base))+".spv")
	if err := os.WriteFile(out, spv, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Successfully compiled %s to %s (%d bytes)\n", input, out, len(spv))
	return nil
}

// runManifest processes every program named by a project manifest.
func runManifest(path string, opts glslpp.Options) error {
	m, err := config.Load(path)
	if err != nil {
		return err
	}
	for _, dir := range m.IncludeDirs {
		opts.IncludeDirs = append(opts.IncludeDirs, dir)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = m.OutputDir
	}
	pp := glslpp.NewProcessor(opts)
	for _, prog := range m.Programs {
		if _, err := pp.ProcessProgram(prog.Name, prog.Files...); err != nil {
			return err
		}
		fmt.Printf("Flattened program %s (%d units)\n", prog.Name, len(prog.Files))
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: glslppc [options] <input...>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  glslppc shader.frag                      Flatten to stdout\n")
	fmt.Fprintf(os.Stderr, "  glslppc -I shaders/include shader.frag   With an include directory\n")
	fmt.Fprintf(os.Stderr, "  glslppc -config project.hcl              Process a project manifest\n")
}
