package preprocess

import "strings"

// DirectiveKind identifies one of the recognized directive forms.
type DirectiveKind uint8

const (
	// DirectiveNone marks an ordinary source line.
	DirectiveNone DirectiveKind = iota
	DirectiveVersion
	DirectiveInclude
	DirectivePragma
	DirectiveGuardOpen  // #ifndef
	DirectiveGuardClose // #endif
	DirectiveDefine
)

// Directive is one classified source line. Classification happens exactly
// once per line; the Session then switches on Kind, so malformed arguments
// are diagnosed by the Session with full file/line context rather than here.
type Directive struct {
	Kind   DirectiveKind
	Name   string // guard or macro name (GuardOpen, Define); "" when missing
	Arg    string // raw argument text with the directive token removed
	Column int    // byte offset of the directive token within the line
	Line   string // the full logical line, newline-terminated
}

// ClassifyLine decides which directive a logical line carries. Lines whose
// first token is not one of the six recognized forms, including unknown
// '#' directives, classify as DirectiveNone and pass through verbatim.
func ClassifyLine(line string) Directive {
	trimmed := strings.TrimLeft(line, " \t")
	d := Directive{Kind: DirectiveNone, Line: line}
	if !strings.HasPrefix(trimmed, "#") {
		return d
	}
	d.Column = len(line) - len(trimmed)

	fields := strings.Fields(trimmed)
	token := fields[0]
	d.Arg = strings.TrimSpace(strings.TrimSuffix(trimmed[len(token):], "\n"))

	switch token {
	case "#version":
		d.Kind = DirectiveVersion
	case "#include":
		d.Kind = DirectiveInclude
	case "#pragma":
		d.Kind = DirectivePragma
	case "#ifndef":
		d.Kind = DirectiveGuardOpen
	case "#define":
		d.Kind = DirectiveDefine
	case "#endif":
		d.Kind = DirectiveGuardClose
	default:
		d.Column = 0
		d.Arg = ""
		return d
	}
	if d.Kind == DirectiveGuardOpen || d.Kind == DirectiveDefine {
		if len(fields) > 1 {
			d.Name = fields[1]
		}
	}
	return d
}

// argColumn returns the byte offset of the directive argument, falling back
// to the directive token itself when there is no argument to point at.
func (d Directive) argColumn() int {
	if d.Arg != "" {
		if i := strings.Index(d.Line, d.Arg); i >= 0 {
			return i
		}
	}
	return d.Column
}

// parseIncludeTarget extracts the target path from an include argument.
// The argument must be wrapped in exactly one of <...> or "..." and must
// name a non-empty path.
func parseIncludeTarget(arg string) (target string, angled, ok bool) {
	if len(arg) < 3 {
		return "", false, false
	}
	switch {
	case arg[0] == '<' && arg[len(arg)-1] == '>':
		return arg[1 : len(arg)-1], true, true
	case arg[0] == '"' && arg[len(arg)-1] == '"':
		return arg[1 : len(arg)-1], false, true
	}
	return "", false, false
}
