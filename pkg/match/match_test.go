package match

import (
	"math"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ParenthesizedYear", "Movie (2020) 1080p", "movie"},
		{"BracketedYearAndSource", "Movie [2019] 720p BluRay", "movie"},
		{"BareYear", "Heat 1995", "heat"},
		{"DottedRelease", "The.Matrix.1999.1080p.BluRay.x264.DTS", "the matrix"},
		{"Underscores", "Blade_Runner_2049_2160p_UHD_HEVC", "blade runner"},
		{"WebSources", "Dune WEB-DL webrip HDTV dvdrip BRRip BDRip blu-ray", "dune"},
		{"Codecs", "Alien h264 H265 AVC", "alien"},
		{"Audio", "Alien AAC ac3 mp3 FLAC", "alien"},
		{"ReleaseGroupTag", "[YTS] Arrival [Extended]", "arrival"},
		{"CollapsesWhitespace", "  The   Matrix  ", "the matrix"},
		{"KeepsWordsContainingTokens", "Avcatraz Hdtvland Dtsville", "avcatraz hdtvland dtsville"},
		{"KeepsNonYearNumbers", "Apollo 13", "apollo 13"},
		{"OnlyNoise", "[2020] 1080p x265", ""},
		{"Empty", "", ""},
		{"RemovedTagsLeaveASeparator", "Movie x2[tag]64", "movie x2 64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	samples := []string{
		"Movie (2020) 1080p",
		"Movie [2019] 720p BluRay",
		"The.Matrix.1999.1080p.BluRay.x264.DTS-GROUP",
		"((1999))",
		"x2[a]6[b]4 aac",
		"Léon: The Professional (1994) [Director's Cut] 2160p",
		"  spaced   out  ",
		"web-dl-webrip",
		"",
	}

	for _, s := range samples {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestNormalize_DeeplyNestedBrackets(t *testing.T) {
	nested := strings.Repeat("(", 12) + strings.Repeat(")", 12)
	name := "Movie " + nested + " [" + nested + "]"

	if got := Normalize(name); got != "movie" {
		t.Errorf("Normalize(%q) = %q, want movie", name, got)
	}
	if once := Normalize(name); Normalize(once) != once {
		t.Errorf("Normalize not idempotent for %q", name)
	}
}

func TestSimilarity(t *testing.T) {
	t.Run("Reflexive", func(t *testing.T) {
		for _, s := range []string{"", "a", "the matrix", "blade runner"} {
			if got := Similarity(s, s); got != 1.0 {
				t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
			}
		}
	})

	t.Run("Symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"the matrix", "the matrix reloaded"},
			{"abcd", "bcda"},
			{"alien", "aliens"},
			{"", "x"},
			{"qabxcd", "abycdf"},
		}
		for _, p := range pairs {
			ab := Similarity(p[0], p[1])
			ba := Similarity(p[1], p[0])
			if ab != ba {
				t.Errorf("Similarity not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
			}
			if ab < 0 || ab > 1 {
				t.Errorf("Similarity(%q, %q) = %v out of range", p[0], p[1], ab)
			}
		}
	})

	t.Run("SequenceRatio", func(t *testing.T) {
		// 10 matching characters out of 10 + 19
		got := Similarity("the matrix", "the matrix reloaded")
		want := 20.0 / 29.0
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Similarity() = %v, want %v", got, want)
		}
		if Similar("the matrix", "the matrix reloaded", 0.8) {
			t.Error("names should not reach 0.8")
		}
	})

	t.Run("NoCommonCharacters", func(t *testing.T) {
		if got := Similarity("abc", "xyz"); got != 0 {
			t.Errorf("Similarity() = %v, want 0", got)
		}
	})

	t.Run("NormalizedWhitespace", func(t *testing.T) {
		a := Normalize("The Matrix")
		b := Normalize("The  Matrix")
		if got := Similarity(a, b); got != 1.0 {
			t.Errorf("Similarity() = %v, want 1.0", got)
		}
	})
}
