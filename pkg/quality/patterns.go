package quality

import "regexp"

// Pattern maps a name pattern to a detected label and its points.
// Tables are checked in order; the first match wins.
type Pattern struct {
	Re     *regexp.Regexp
	Label  string
	Points float64
}

func p(expr, label string, points float64) Pattern {
	return Pattern{Re: regexp.MustCompile(`(?i)` + expr), Label: label, Points: points}
}

// CodecPatterns ranks video codecs
var CodecPatterns = []Pattern{
	p(`\b(h\.?265|hevc|x265)\b`, "h265", 100),
	p(`\b(h\.?264|avc|x264)\b`, "h264", 50),
}

// ResolutionPatterns ranks resolutions
var ResolutionPatterns = []Pattern{
	p(`\b(4k|2160p|uhd)\b`, "2160p", 400),
	p(`\b(1080p|fhd)\b`, "1080p", 300),
	p(`\b(720p|hd)\b`, "720p", 200),
	p(`\b(480p|sd)\b`, "480p", 100),
}

// SourcePatterns ranks release sources. bluray precedes bdrip/bd so names
// carrying several of them resolve to BluRay.
var SourcePatterns = []Pattern{
	p(`\b(bluray|blu-ray|bdrip|bd)\b`, "BluRay", 150),
	p(`\b(web-?dl)\b`, "WEB-DL", 100),
	p(`\b(webrip)\b`, "WEBRip", 80),
	p(`\b(dvdrip|dvd)\b`, "DVD", 50),
}

// firstMatch returns the first pattern matching name, or ok=false
func firstMatch(table []Pattern, name string) (Pattern, bool) {
	for _, pat := range table {
		if pat.Re.MatchString(name) {
			return pat, true
		}
	}
	return Pattern{}, false
}
