package models

// QualityScore is the multi-factor score of a file or folder
type QualityScore struct {
	TotalScore      float64        `json:"total_score"`
	SizeScore       float64        `json:"size_score"`
	CodecScore      float64        `json:"codec_score"`
	ResolutionScore float64        `json:"resolution_score"`
	SourceScore     float64        `json:"source_score"`
	HasMetadata     bool           `json:"has_metadata"`
	Details         QualityDetails `json:"details"`
}

// QualityDetails describes what the scorer detected
type QualityDetails struct {
	Name       string  `json:"name"`
	SizeGB     float64 `json:"size_gb"`
	Codec      string  `json:"codec"`
	Resolution string  `json:"resolution"`
	Source     string  `json:"source"`
	IsFolder   bool    `json:"is_folder"`
}
