package fileops

import "fmt"

const (
	kb = 1024
	mb = kb * 1024
	gb = mb * 1024
)

// FormatSize renders a byte count as "512 B", "1.5 KB", "700.0 MB" or "4.37 GB"
func FormatSize(bytes int64) string {
	switch {
	case bytes < kb:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	case bytes < gb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	default:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	}
}
