package glslpp

import "path/filepath"

// ShaderKind classifies a source unit by pipeline stage, inferred from the
// unit's file extension. The downstream compiler collaborator decides what
// a kind maps to; glslpp itself only carries the classification.
type ShaderKind uint8

const (
	KindUnknown ShaderKind = iota
	KindVertex
	KindFragment
	KindGeometry
	KindCompute
	KindTessControl
	KindTessEval
	KindWGSL
)

// kindByExt is the fixed extension table. WGSL units carry every stage in
// one file, so .wgsl maps to a single kind.
var kindByExt = map[string]ShaderKind{
	".vert": KindVertex,
	".frag": KindFragment,
	".geom": KindGeometry,
	".comp": KindCompute,
	".tesc": KindTessControl,
	".tese": KindTessEval,
	".wgsl": KindWGSL,
}

// KindFromPath infers the shader kind from the file extension of path.
func KindFromPath(path string) ShaderKind {
	return kindByExt[filepath.Ext(path)]
}

// String returns the conventional stage name for the kind.
func (k ShaderKind) String() string {
	switch k {
	case KindVertex:
		return "VERTEX"
	case KindFragment:
		return "FRAGMENT"
	case KindGeometry:
		return "GEOMETRY"
	case KindCompute:
		return "COMPUTE"
	case KindTessControl:
		return "TESS_CONTROL"
	case KindTessEval:
		return "TESS_EVALUATION"
	case KindWGSL:
		return "WGSL"
	default:
		return ""
	}
}
