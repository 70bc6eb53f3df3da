// Package quality scores competing copies of the same content from what
// their names and sizes reveal.
package quality

import (
	"math"
	"path/filepath"

	"github.com/sdejongh/vidupe/pkg/models"
)

// Weights of each factor in the total score
const (
	SizeWeight       = 0.30
	CodecWeight      = 0.25
	ResolutionWeight = 0.30
	SourceWeight     = 0.15
)

const (
	bytesPerGB   = 1 << 30
	pointsPerGB  = 10.0
	maxSizeScore = 100.0
	unknownLabel = "unknown"
)

// Score rates a display name and size. It is pure and deterministic.
func Score(name string, size int64, isFolder bool) models.QualityScore {
	codec, codecOK := firstMatch(CodecPatterns, name)
	res, resOK := firstMatch(ResolutionPatterns, name)
	src, srcOK := firstMatch(SourcePatterns, name)

	gb := float64(size) / bytesPerGB
	sizeScore := math.Min(maxSizeScore, gb*pointsPerGB)

	total := sizeScore*SizeWeight +
		codec.Points*CodecWeight +
		res.Points*ResolutionWeight +
		src.Points*SourceWeight

	return models.QualityScore{
		TotalScore:      round2(total),
		SizeScore:       round2(sizeScore),
		CodecScore:      codec.Points,
		ResolutionScore: res.Points,
		SourceScore:     src.Points,
		HasMetadata:     false,
		Details: models.QualityDetails{
			Name:       name,
			SizeGB:     round2(gb),
			Codec:      labelOr(codec, codecOK),
			Resolution: labelOr(res, resOK),
			Source:     labelOr(src, srcOK),
			IsFolder:   isFolder,
		},
	}
}

// ScoreFile scores a video file by its base name
func ScoreFile(path string, size int64) models.QualityScore {
	return Score(filepath.Base(path), size, false)
}

// ScoreFolder scores a folder by its base name and total size
func ScoreFolder(path string, stats models.FolderStats) models.QualityScore {
	return Score(filepath.Base(path), stats.TotalSize, true)
}

func labelOr(pat Pattern, ok bool) string {
	if !ok {
		return unknownLabel
	}
	return pat.Label
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
