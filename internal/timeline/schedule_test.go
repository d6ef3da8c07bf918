package timeline

import (
	"errors"
	"testing"
)

func collect(t *testing.T, s *Schedule) []FrameSample {
	t.Helper()
	var samples []FrameSample
	for {
		sample, ok := s.Next()
		if !ok {
			return samples
		}
		samples = append(samples, sample)
	}
}

func TestScheduleSampleCount(t *testing.T) {
	tests := []struct {
		name       string
		imageCount int
		samples    int
		want       int
	}{
		{"two images", 2, 30, 30},
		{"five images", 5, 30, 120},
		{"custom sample count", 3, 10, 20},
		{"minimal sample count", 2, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.imageCount, 1.0, 0.8, WithSamplesPerTransition(tt.samples))
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if s.Total() != tt.want {
				t.Errorf("Total() = %d, want %d", s.Total(), tt.want)
			}
			got := collect(t, s)
			if len(got) != tt.want {
				t.Errorf("emitted %d samples, want %d", len(got), tt.want)
			}
		})
	}
}

func TestScheduleMonotonicTimes(t *testing.T) {
	s, err := New(6, 1.0, 0.8)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	samples := collect(t, s)
	for i := 1; i < len(samples); i++ {
		if samples[i].Time.Value < samples[i-1].Time.Value {
			t.Fatalf(
				"time went backwards at sample %d: %d after %d",
				i, samples[i].Time.Value, samples[i-1].Time.Value,
			)
		}
	}
}

func TestScheduleProgressEndpoints(t *testing.T) {
	s, err := New(4, 1.0, 0.5, WithSamplesPerTransition(12))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	samples := collect(t, s)
	for i := 0; i < 3; i++ {
		first := samples[i*12]
		last := samples[i*12+11]
		if first.Progress != 0.0 {
			t.Errorf("transition %d first progress = %v, want 0", i, first.Progress)
		}
		if last.Progress != 1.0 {
			t.Errorf("transition %d last progress = %v, want 1", i, last.Progress)
		}
		if first.Effect != i || last.Effect != i {
			t.Errorf("transition %d carries effect indices %d/%d", i, first.Effect, last.Effect)
		}
	}
}

func TestScheduleTransitionStartTimes(t *testing.T) {
	s, err := New(3, 2.0, 1.0, WithSamplesPerTransition(5))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	samples := collect(t, s)

	// transition 0 starts at 0s, transition 1 at 2s; last samples land at
	// start + transitionDuration
	if samples[0].Time.Value != 0 {
		t.Errorf("first sample at %dms, want 0", samples[0].Time.Value)
	}
	if samples[4].Time.Value != 1000 {
		t.Errorf("last sample of transition 0 at %dms, want 1000", samples[4].Time.Value)
	}
	if samples[5].Time.Value != 2000 {
		t.Errorf("first sample of transition 1 at %dms, want 2000", samples[5].Time.Value)
	}
	if samples[9].Time.Value != 3000 {
		t.Errorf("final sample at %dms, want 3000", samples[9].Time.Value)
	}
}

func TestScheduleNotRestartable(t *testing.T) {
	s, err := New(2, 1.0, 0.8, WithSamplesPerTransition(2))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	collect(t, s)
	if _, ok := s.Next(); ok {
		t.Error("exhausted schedule emitted another sample")
	}
	if s.Remaining() != 0 {
		t.Errorf("Remaining() = %d after exhaustion, want 0", s.Remaining())
	}
}

func TestScheduleValidation(t *testing.T) {
	tests := []struct {
		name    string
		images  int
		frame   float64
		trans   float64
		opts    []Option
		wantErr error
	}{
		{"one image", 1, 1.0, 0.8, nil, ErrTooFewImages},
		{"zero images", 0, 1.0, 0.8, nil, ErrTooFewImages},
		{"zero frame duration", 3, 0, 0.8, nil, ErrInvalidDuration},
		{"zero transition duration", 3, 1.0, 0, nil, ErrInvalidDuration},
		{"negative frame duration", 3, -1.0, 0.8, nil, ErrInvalidDuration},
		{"transition longer than frame", 3, 1.0, 1.5, nil, ErrTransitionTooLong},
		{"single sample", 3, 1.0, 0.8, []Option{WithSamplesPerTransition(1)}, ErrInvalidSampleCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.images, tt.frame, tt.trans, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRationalRoundTrip(t *testing.T) {
	r := NewRational(1.8)
	if r.Value != 1800 || r.Timescale != Timescale {
		t.Errorf("NewRational(1.8) = %+v", r)
	}
	if r.Seconds() != 1.8 {
		t.Errorf("Seconds() = %v, want 1.8", r.Seconds())
	}
}
