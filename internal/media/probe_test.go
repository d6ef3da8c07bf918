package media

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	data := []byte(`{"format":{"filename":"bg.mp3","duration":"12.480000","bit_rate":"128000"}}`)

	d, err := parseDuration(data)
	if err != nil {
		t.Fatalf("parseDuration failed: %v", err)
	}
	if d != 12480*time.Millisecond {
		t.Errorf("duration = %v, want 12.48s", d)
	}
}

func TestParseDurationInvalidJSON(t *testing.T) {
	if _, err := parseDuration([]byte("ffprobe exploded")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParseDurationMissingField(t *testing.T) {
	if _, err := parseDuration([]byte(`{"format":{}}`)); err == nil {
		t.Error("expected error for missing duration")
	}
}

func TestDurationMissingFile(t *testing.T) {
	if _, err := Duration("/nonexistent/bg.mp3"); err == nil {
		t.Error("expected error for missing file")
	}
}
