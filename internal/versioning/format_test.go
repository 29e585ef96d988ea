package versioning

import "testing"

func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		delta   float64
		percent bool
		want    string
	}{
		{"zero absolute", 0, false, "0"},
		{"zero percent", 0, true, "0"},
		{"positive absolute", 3.456, false, "+3.46"},
		{"negative absolute", -3.456, false, "-3.46"},
		{"positive percent", 5, true, "+5.0%"},
		{"negative percent", -12.34, true, "-12.3%"},
		{"small positive", 0.004, false, "+0.00"},
		{"whole currency", 1.5, false, "+1.50"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatDelta(tt.delta, tt.percent); got != tt.want {
				t.Fatalf("FormatDelta(%v, %v) = %q, want %q", tt.delta, tt.percent, got, tt.want)
			}
		})
	}
}
