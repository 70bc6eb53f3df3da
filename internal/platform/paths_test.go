package platform

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestValidatePath(t *testing.T) {
	var perr *PathError
	if err := ValidatePath(""); !errors.As(err, &perr) {
		t.Errorf("ValidatePath(\"\") = %v, want PathError", err)
	}
	if err := ValidatePath("   "); err == nil {
		t.Error("blank path should be rejected")
	}
	if err := ValidatePath("a\x00b"); err == nil {
		t.Error("NUL byte should be rejected")
	}
	if err := ValidatePath("/media/Movies (2020)"); err != nil {
		t.Errorf("ValidatePath() = %v, want nil", err)
	}
}

func TestResolvePath(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	got, err := ResolvePath("lib/../lib/Movies")
	if err != nil {
		t.Fatalf("ResolvePath() error = %v", err)
	}
	if want := filepath.Join(cwd, "lib", "Movies"); got != want {
		t.Errorf("ResolvePath() = %s, want %s", got, want)
	}

	if _, err := ResolvePath(""); err == nil {
		t.Error("ResolvePath(\"\") should fail")
	}
}

func TestIsUNCPath(t *testing.T) {
	if runtime.GOOS != "windows" && IsUNCPath(`\\server\share`) {
		t.Error("UNC paths only exist on windows")
	}
}

func TestNormalizePath(t *testing.T) {
	if got := NormalizePath("/a/b/../c/"); got != filepath.Clean("/a/c") {
		t.Errorf("NormalizePath() = %s", got)
	}
}
