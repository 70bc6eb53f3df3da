package scanner

import "testing"

func TestShouldExclude(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"movie.mkv", nil, false},
		{"movie.nfo", []string{"*.nfo"}, true},
		{"sub/movie.nfo", []string{"*.nfo"}, true},
		{"Extras", []string{"Extras/"}, true},
		{"Extras/a.mkv", []string{"Extras/"}, true},
		{"cd1/Extras/a.mkv", []string{"Extras/"}, true},
		{"ExtrasMore/a.mkv", []string{"Extras/"}, false},
		{"a/b/Sample", []string{"**/Sample"}, true},
		{"Featurettes/x.mkv", []string{"Featurettes/*"}, true},
		{"movie.mkv", []string{"", "*.nfo"}, false},
		{".", []string{"*"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := shouldExclude(tt.path, tt.patterns); got != tt.want {
				t.Errorf("shouldExclude(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
			}
		})
	}
}
