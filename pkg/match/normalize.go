// Package match turns folder and file names into comparison keys and
// measures how alike two keys are.
package match

import (
	"regexp"
	"strings"
)

var sepReplacer = strings.NewReplacer(".", " ", "_", " ")

// Noise patterns removed by Normalize. All operate on lower-cased input and
// are word-bounded so tokens inside unrelated words survive.
var (
	reYear       = regexp.MustCompile(`[(\[]?\b(?:19|20)\d{2}\b[)\]]?`)
	reResolution = regexp.MustCompile(`\b(?:480p|720p|1080p|2160p|4k|uhd)\b`)
	reSource     = regexp.MustCompile(`\b(?:bluray|blu-ray|brrip|bdrip|web-dl|webrip|hdtv|dvdrip)\b`)
	reCodec      = regexp.MustCompile(`\b(?:x264|x265|h264|h265|hevc|avc)\b`)
	reAudio      = regexp.MustCompile(`\b(?:aac|dts|ac3|mp3|flac)\b`)
	reBrackets   = regexp.MustCompile(`\[[^\]]*\]`)
	reEmptyPair  = regexp.MustCompile(`\(\s*\)|\[\s*\]`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

var noise = []*regexp.Regexp{reYear, reResolution, reSource, reCodec, reAudio, reBrackets, reEmptyPair}

// Normalize returns the comparison key of a folder or file name: lower-cased,
// dots and underscores read as spaces, with years, resolution, source, codec,
// audio and bracketed tags removed and whitespace collapsed.
//
// An empty result means the name carries nothing usable for grouping.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = sepReplacer.Replace(s)

	// Tokens are replaced by a space so fragments never fuse, but a removal
	// can still leave an empty bracket pair behind; repeat until stable.
	// A pass that changes s always shortens it.
	for {
		next := strip(s)
		if next == s {
			return s
		}
		s = next
	}
}

func strip(s string) string {
	for _, re := range noise {
		s = re.ReplaceAllString(s, " ")
	}
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
