package youtube

import (
	"context"
	"fmt"
	"strings"
)

// Segment is one timed transcript entry.
type Segment struct {
	Start    float64
	Duration float64
	Text     string
}

// Source fetches transcripts and titles for videos. The HTTP implementation
// lives in Service; orchestrators depend on this interface so tests can
// substitute a fake.
type Source interface {
	FetchTranscript(ctx context.Context, videoID string) ([]Segment, error)
	FetchTitle(ctx context.Context, videoID string) string
}

// RawText joins segment texts into the plain transcript used for prompts.
func RawText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// FormatTranscript renders segments with [MM:SS] timestamps, one per line.
func FormatTranscript(segments []Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		if i > 0 {
			b.WriteByte('\n')
		}
		total := int(seg.Start)
		fmt.Fprintf(&b, "[%02d:%02d] %s", total/60, total%60, strings.TrimSpace(seg.Text))
	}
	return b.String()
}

// DefaultTitle is used when the title lookup fails.
func DefaultTitle(videoID string) string {
	return fmt.Sprintf("YouTube Video (%s)", videoID)
}
