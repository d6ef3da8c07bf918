// Package audiofit tiles a background audio clip across a video timeline,
// looping the clip as many times as fits and trimming the final repeat so
// the segments cover the video duration exactly.
package audiofit

import (
	"errors"
	"time"
)

var (
	ErrInvalidAudioDuration = errors.New("audio duration must be positive")
	ErrInvalidVideoDuration = errors.New("video duration must be positive")
)

// Segment maps a slice of the source audio onto the output timeline.
type Segment struct {
	SourceStart time.Duration
	Duration    time.Duration
	InsertAt    time.Duration
}

// Fit returns the ordered segments that tile [0, videoDuration) with the
// given audio clip: full repeats followed by one trimmed remainder segment.
// The insertion times are contiguous, never overlap, and the durations sum
// to videoDuration exactly.
func Fit(videoDuration, audioDuration time.Duration) ([]Segment, error) {
	if audioDuration <= 0 {
		return nil, ErrInvalidAudioDuration
	}
	if videoDuration <= 0 {
		return nil, ErrInvalidVideoDuration
	}

	if videoDuration <= audioDuration {
		return []Segment{{SourceStart: 0, Duration: videoDuration, InsertAt: 0}}, nil
	}

	repeats := int(videoDuration / audioDuration)
	remainder := videoDuration % audioDuration

	segments := make([]Segment, 0, repeats+1)
	for k := 0; k < repeats; k++ {
		segments = append(segments, Segment{
			SourceStart: 0,
			Duration:    audioDuration,
			InsertAt:    time.Duration(k) * audioDuration,
		})
	}

	if remainder > 0 {
		segments = append(segments, Segment{
			SourceStart: 0,
			Duration:    remainder,
			InsertAt:    time.Duration(repeats) * audioDuration,
		})
	}

	return segments, nil
}

// TotalDuration sums the inserted durations of the segments.
func TotalDuration(segments []Segment) time.Duration {
	var total time.Duration
	for _, s := range segments {
		total += s.Duration
	}
	return total
}
