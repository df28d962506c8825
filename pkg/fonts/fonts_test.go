package fonts

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sans-serif", FamilyRegular},
		{"", FamilyRegular},
		{"monospace", FamilyMono},
		{"'Courier New', serif", FamilyMono},
		{"Go Mono", FamilyMono},
	}
	for _, tt := range tests {
		if got := Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMeasure(t *testing.T) {
	w1, h1 := Measure("88", "sans-serif", 20)
	w2, h2 := Measure("8888", "sans-serif", 20)
	if w1 <= 0 || h1 <= 0 {
		t.Fatalf("Measure() = %v x %v, want positive", w1, h1)
	}
	if h1 != h2 {
		t.Errorf("line height depends on text: %v vs %v", h1, h2)
	}
	if w2 <= w1 {
		t.Errorf("longer text not wider: %v <= %v", w2, w1)
	}
	if _, h := Measure("x", "sans-serif", 40); h <= h1 {
		t.Errorf("larger size not taller: %v <= %v", h, h1)
	}
	if w, h := Measure("x", "sans-serif", 0); w != 0 || h != 0 {
		t.Errorf("Measure(size 0) = %v x %v, want 0", w, h)
	}
}

func TestMonoAdvance(t *testing.T) {
	wi, _ := Measure("iiii", "monospace", 16)
	wm, _ := Measure("mmmm", "monospace", 16)
	if wi != wm {
		t.Errorf("mono advances differ: %v vs %v", wi, wm)
	}
}

func TestBase64(t *testing.T) {
	s := Base64("sans-serif")
	if len(s) == 0 || s != Base64("Go") {
		t.Error("Base64() not cached per resolved family")
	}
	if !strings.HasPrefix(CSSFamily("monospace"), "'Go Mono'") {
		t.Errorf("CSSFamily() = %q", CSSFamily("monospace"))
	}
}

func TestAscent(t *testing.T) {
	a := Ascent("sans-serif", 20)
	_, h := Measure("x", "sans-serif", 20)
	if a <= 0 || a >= h {
		t.Errorf("Ascent() = %v, want within (0, %v)", a, h)
	}
	if got := Ascent("sans-serif", 0); got != 0 {
		t.Errorf("Ascent(size 0) = %v, want 0", got)
	}
}
