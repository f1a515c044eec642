package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	for _, dir := range []string{baseDir, otherDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	target := filepath.Join(otherDir, "user.rb")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	baseDir := t.TempDir()
	target := filepath.Join(baseDir, "app", "models", "user.rb")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if got != "app/models/user.rb" {
		t.Fatalf("expected relative path, got %q", got)
	}
}

func TestToLineCol(t *testing.T) {
	// "ab\ncd\n\nx"
	idx := buildLineIndex([]byte("ab\ncd\n\nx"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	if !changed {
		t.Fatal("expected change")
	}
	if string(out) != "a\nb\rc\n" {
		t.Fatalf("got %q", out)
	}
	if _, changed := normalizeCRLF([]byte("plain\n")); changed {
		t.Fatal("unexpected change for LF-only input")
	}
}

func TestDenormalizeRestoresLoadedBytes(t *testing.T) {
	raw := []byte("\xEF\xBB\xBFa\r\nb\r\n")
	content, hadBOM := removeBOM(raw)
	content, hadCRLF := normalizeCRLF(content)
	var flags FileFlags
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	if got := Denormalize(content, flags); string(got) != string(raw) {
		t.Fatalf("Denormalize = %q, want %q", got, raw)
	}
	if got := Denormalize([]byte("x\n"), 0); string(got) != "x\n" {
		t.Fatalf("no flags: got %q", got)
	}
}
