package cli

import (
	"reflect"
	"testing"
)

func TestExpandTransitions(t *testing.T) {
	tests := []struct {
		name   string
		list   string
		single string
		pairs  int
		want   []string
	}{
		{
			name:   "single repeated",
			single: "crossfade",
			pairs:  3,
			want:   []string{"crossfade", "crossfade", "crossfade"},
		},
		{
			name:  "explicit list wins",
			list:  "wipeleft, pixelize ,circleopen",
			pairs: 3,
			want:  []string{"wipeleft", "pixelize", "circleopen"},
		},
		{
			name:  "short list passed through for validation",
			list:  "wipeleft",
			pairs: 3,
			want:  []string{"wipeleft"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandTransitions(tt.list, tt.single, tt.pairs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expandTransitions() = %v, want %v", got, tt.want)
			}
		})
	}
}
