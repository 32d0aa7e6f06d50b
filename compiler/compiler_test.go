package compiler

import (
	"strings"
	"testing"

	"github.com/gogpu/naga"

	"github.com/gogpu/glslpp"
)

func TestWGSLCompileProducesSPIRV(t *testing.T) {
	unit := glslpp.Unit{
		Path: "blit.frag.wgsl",
		Kind: glslpp.KindWGSL,
		Source: `
@fragment
fn main(@location(0) color: vec4<f32>) -> @location(0) vec4<f32> {
    return color;
}
`,
	}
	c := NewWGSL()
	c.Options = naga.CompileOptions{Validate: false} // minimal shader
	spv, err := c.Compile(unit)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(spv) < 20 {
		t.Fatal("SPIR-V output too short")
	}
	words := Words(spv)
	if words[0] != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: got 0x%08x, want 0x07230203", words[0])
	}
}

func TestWGSLRejectsOtherKinds(t *testing.T) {
	unit := glslpp.Unit{
		Path:   "color.frag",
		Kind:   glslpp.KindFragment,
		Source: "#version 330\nvoid main() {}\n",
	}
	_, err := NewWGSL().Compile(unit)
	if err == nil {
		t.Fatal("expected an error for a non-WGSL unit")
	}
	if !strings.Contains(err.Error(), "no compiler registered") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWords(t *testing.T) {
	words := Words([]byte{0x03, 0x02, 0x23, 0x07, 0xff, 0x00, 0x00, 0x00})
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0] != 0x07230203 {
		t.Errorf("expected 0x07230203, got 0x%08x", words[0])
	}
	if words[1] != 0x000000ff {
		t.Errorf("expected 0x000000ff, got 0x%08x", words[1])
	}
}
