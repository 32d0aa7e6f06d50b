package preprocess

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// IncludeGuard records one #ifndef guard encountered during a session.
type IncludeGuard struct {
	File       string // file the guard was opened in
	Name       string // guarded macro identifier
	LineText   string // raw opening line, kept for diagnostics
	OpenLine   int    // line of the opening #ifndef
	CloseLine  int    // line of the matching #endif; 0 until found
	DefineLine int    // line of the matching #define; 0 until found
}

// Open reports whether the guard's matching #endif has not been seen yet.
func (g *IncludeGuard) Open() bool { return g.CloseLine == 0 }

// Satisfied reports whether the guard's #define was recorded, which makes
// every later encounter of the same name suppress its body.
func (g *IncludeGuard) Satisfied() bool { return g.DefineLine != 0 }

// onceFrame is one entry on the active pragma-once inclusion chain.
type onceFrame struct {
	file string
	line int
}

// Options configure a Session. The include-directory list is consulted in
// order for angle-bracketed includes; callers should hand the Session its
// own snapshot of the list.
type Options struct {
	IncludeDirs []string

	// AllowMissingVersion starts the session with the version directive
	// already accepted, so source kinds that have no #version notion (WGSL)
	// flatten without one. When false, everything before the first #version
	// line is dropped and macro definitions ahead of it are an error.
	AllowMissingVersion bool
}

// Session is the recursive directive parser for one top-level source unit.
// Nested inclusions recurse into the same Session, so guard names, pragma
// instances and the suppression flag span the whole inclusion tree.
//
// A Session is exclusively owned by the call that created it and must not
// be reused after Process returns.
type Session struct {
	opts Options

	guardByName map[string]*IncludeGuard
	guards      []*IncludeGuard // in opening order, inspected at session end
	onceFiles   map[string]struct{}
	onceStack   []onceFrame

	versionSeen bool

	// skipping is deliberately a flat boolean, not a counter: only one
	// suppressed region is modeled at a time, so an already-satisfied scope
	// nested inside another suppressed scope clears suppression at its own
	// #endif. Known limitation, pinned by tests.
	skipping bool

	out strings.Builder
}

// NewSession creates a Session ready to process one top-level unit.
func NewSession(opts Options) *Session {
	return &Session{
		opts:        opts,
		guardByName: make(map[string]*IncludeGuard),
		onceFiles:   make(map[string]struct{}),
		versionSeen: opts.AllowMissingVersion,
	}
}

// Process preprocesses the top-level unit at path and returns the raw
// flattened source. On failure it returns exactly one *SourceError carrying
// the full inclusion trail; no partial output is produced.
func (s *Session) Process(path string) (string, error) {
	if err := s.processFile(path); err != nil {
		return "", err
	}
	if err := s.ValidateIncludeGuardScope(); err != nil {
		return "", err
	}
	return s.out.String(), nil
}

// ValidateIncludeGuardScope checks that every guard opened during the
// session was closed, reporting the first offender at its opening line.
func (s *Session) ValidateIncludeGuardScope() error {
	for _, g := range s.guards {
		if g.Open() {
			col := strings.IndexByte(g.LineText, '#')
			if col < 0 {
				col = 0
			}
			return errorf(g.File, g.OpenLine, col, g.LineText,
				"unterminated #ifndef %s", g.Name)
		}
	}
	return nil
}

// processFile drives the Reader over one file, recursing for includes.
func (s *Session) processFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &SourceError{File: path, Message: fmt.Sprintf("cannot open source unit: %v", err)}
	}
	defer f.Close()

	r := NewReader(f)
	lineNo := 0
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &SourceError{File: path, Message: fmt.Sprintf("cannot read source unit: %v", err)}
		}
		lineNo++
		if err := s.processLine(path, lineNo, line); err != nil {
			return err
		}
	}

	// A pragma-suppressed region ends with its file: pop the owning frame
	// and lift suppression. First-sighting frames stay on the stack.
	if n := len(s.onceStack); n > 0 && s.skipping && s.onceStack[n-1].file == path {
		s.onceStack = s.onceStack[:n-1]
		s.skipping = false
	}
	return nil
}

func (s *Session) processLine(path string, lineNo int, line string) error {
	d := ClassifyLine(line)
	switch d.Kind {
	case DirectiveVersion:
		if s.skipping {
			return nil
		}
		// First #version wins; later ones are dropped without complaint.
		if !s.versionSeen {
			s.versionSeen = true
			s.out.WriteString(d.Line)
		}
		return nil

	case DirectiveInclude:
		return s.include(path, lineNo, d)

	case DirectivePragma:
		return s.pragmaOnce(path, lineNo, d)

	case DirectiveGuardOpen:
		return s.guardOpen(path, lineNo, d)

	case DirectiveGuardClose:
		return s.guardClose(path, lineNo, d)

	case DirectiveDefine:
		return s.define(path, lineNo, d)

	default:
		// Ordinary source line. Dropped while suppressed, and dropped ahead
		// of the accepted #version line.
		if !s.skipping && s.versionSeen {
			s.out.WriteString(d.Line)
		}
		return nil
	}
}

func (s *Session) pragmaOnce(path string, lineNo int, d Directive) error {
	if d.Arg != "once" {
		return errorf(path, lineNo, d.argColumn(), d.Line,
			"unsupported #pragma argument %q, expected 'once'", d.Arg)
	}
	if _, seen := s.onceFiles[path]; seen {
		s.skipping = true
	} else {
		s.onceFiles[path] = struct{}{}
	}
	// Every encounter pushes its own frame; processFile pops the frame of a
	// suppressed region at the file's end, so a third and any later
	// inclusion re-triggers cleanly.
	s.onceStack = append(s.onceStack, onceFrame{file: path, line: lineNo})
	return nil
}

func (s *Session) guardOpen(path string, lineNo int, d Directive) error {
	if d.Name == "" {
		return errorf(path, lineNo, d.argColumn(), d.Line, "missing macro name in #ifndef")
	}
	g, seen := s.guardByName[d.Name]
	if !seen {
		g = &IncludeGuard{
			File:     path,
			Name:     d.Name,
			LineText: d.Line,
			OpenLine: lineNo,
		}
		s.guardByName[d.Name] = g
		s.guards = append(s.guards, g)
		return nil
	}
	if g.Satisfied() {
		s.skipping = true
		return nil
	}
	if !g.Open() {
		// The guard closed without ever being defined, so it guards nothing:
		// this encounter opens it again and expects its own #endif.
		g.CloseLine = 0
	}
	return nil
}

func (s *Session) guardClose(path string, lineNo int, d Directive) error {
	if s.skipping {
		// Closes the suppressed scope; the guard records stay untouched.
		s.skipping = false
		return nil
	}
	for i := len(s.guards) - 1; i >= 0; i-- {
		if g := s.guards[i]; g.Open() {
			g.CloseLine = lineNo
			return nil
		}
	}
	return errorf(path, lineNo, d.Column, d.Line, "#endif without matching #ifndef")
}

func (s *Session) define(path string, lineNo int, d Directive) error {
	if s.skipping {
		return nil
	}
	if d.Name == "" {
		return errorf(path, lineNo, d.argColumn(), d.Line, "missing macro name in #define")
	}
	if g, ok := s.guardByName[d.Name]; ok && g.Open() && !g.Satisfied() {
		// Guard definitions never reach the output.
		g.DefineLine = lineNo
		return nil
	}
	if !s.versionSeen {
		return errorf(path, lineNo, d.Column, d.Line,
			"macro definition before #version directive")
	}
	// An ordinary macro definition, passed through for the native
	// preprocessor downstream.
	s.out.WriteString(d.Line)
	return nil
}

func (s *Session) include(path string, lineNo int, d Directive) error {
	if s.skipping {
		return nil
	}
	target, angled, ok := parseIncludeTarget(d.Arg)
	if !ok {
		return errorf(path, lineNo, d.argColumn(), d.Line,
			`malformed #include target %q, expected <filename> or "filename"`, d.Arg)
	}
	resolved, msg := s.resolve(path, target, angled)
	if msg != "" {
		return errorf(path, lineNo, d.argColumn(), d.Line, "%s", msg)
	}
	if err := s.processFile(resolved); err != nil {
		return appendTrail(err, path, lineNo)
	}
	return nil
}

// resolve maps an include target to a file path. Angle-bracketed targets
// scan the registered include directories in registration order; quoted
// targets resolve against the including file's directory first and the
// path as given second. A failure returns a message listing what was
// searched.
func (s *Session) resolve(from, target string, angled bool) (resolved, msg string) {
	if angled {
		for _, dir := range s.opts.IncludeDirs {
			cand := filepath.Join(dir, target)
			if isRegularFile(cand) {
				return cand, ""
			}
		}
		if len(s.opts.IncludeDirs) == 0 {
			return "", fmt.Sprintf("cannot find <%s>: no include directories registered", target)
		}
		return "", fmt.Sprintf("cannot find <%s> in any include directory (searched: %s)",
			target, strings.Join(s.opts.IncludeDirs, ", "))
	}

	cand := filepath.Join(filepath.Dir(from), target)
	if isRegularFile(cand) {
		return cand, ""
	}
	if isRegularFile(target) {
		return target, ""
	}
	return "", fmt.Sprintf("cannot find %q relative to %q", target, filepath.Dir(from))
}

func isRegularFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
