package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "show.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write manifest fixture: %v", err)
	}
	return path
}

func TestReadManifest(t *testing.T) {
	path := writeManifest(t, `version: "1.0"
audio: bg.mp3
output: out.mp4
frame_duration: 2.0
transition_duration: 0.5
default_transition: wipeleft
slides:
  - image: one.png
    transition: crossfade
  - image: two.png
  - image: three.png
`)

	m, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if m.Audio != "bg.mp3" || m.Output != "out.mp4" {
		t.Errorf("unexpected audio/output: %q / %q", m.Audio, m.Output)
	}
	if m.FrameDuration != 2.0 || m.TransitionDuration != 0.5 {
		t.Errorf("unexpected durations: %v / %v", m.FrameDuration, m.TransitionDuration)
	}

	images := m.ImagePaths()
	if len(images) != 3 || images[0] != "one.png" || images[2] != "three.png" {
		t.Errorf("unexpected images: %v", images)
	}

	transitions := m.Transitions()
	if len(transitions) != 2 {
		t.Fatalf("got %d transitions, want 2", len(transitions))
	}
	if transitions[0] != "crossfade" {
		t.Errorf("transition 0 = %q, want crossfade", transitions[0])
	}
	// slide two has no transition: default applies
	if transitions[1] != "wipeleft" {
		t.Errorf("transition 1 = %q, want wipeleft (manifest default)", transitions[1])
	}
}

func TestReadManifestDefaultTransitionFallback(t *testing.T) {
	path := writeManifest(t, `slides:
  - image: a.png
  - image: b.png
`)

	m, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := m.Transitions()[0]; got != "crossfade" {
		t.Errorf("transition = %q, want registry default", got)
	}
}

func TestReadManifestValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"too few slides", "slides:\n  - image: a.png\n"},
		{"missing image", "slides:\n  - image: a.png\n  - transition: crossfade\n"},
		{"invalid yaml", "slides: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)
			if _, err := Read(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestManifestRoundTrip(t *testing.T) {
	m := &Manifest{
		Version:           "1.0",
		Slides:            []Slide{{Image: "a.png"}, {Image: "b.png", Transition: "pixelize"}},
		Output:            "out.mp4",
		DefaultTransition: "crossfade",
	}

	path := filepath.Join(t.TempDir(), "rt.yaml")
	if err := Write(m, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got.Slides) != 2 || got.Slides[1].Transition != "pixelize" {
		t.Errorf("round-trip mismatch: %+v", got.Slides)
	}
}
