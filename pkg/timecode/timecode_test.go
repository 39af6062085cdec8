package timecode

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"3", 3, false},
		{"2.5", 2.5, false},
		{" 7.25 ", 7.25, false},
		{"1:30", 90, false},
		{"01:05.5", 65.5, false},
		{"1:02:03", 3723, false},
		{"0:00:01.250", 1.25, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1:2:3:4", 0, true},
		{"1.5:30", 0, true},
		{"-1", 0, true},
		{"1:75", 0, true},
		{"NaN", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse(%q) expected error, got %f", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Parse(%q) = %f, want %f", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00.00"},
		{3.5, "0:03.50"},
		{65.25, "1:05.25"},
		{3723.4, "1:02:03.40"},
		{-4, "0:00.00"},
		{59.999, "1:00.00"},
	}

	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%f) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []float64{0, 1.5, 61.25, 3599.99} {
		got, err := Parse(Format(s))
		if err != nil {
			t.Fatalf("Parse(Format(%f)) failed: %v", s, err)
		}
		if math.Abs(got-s) > 0.005 {
			t.Errorf("round trip %f -> %f", s, got)
		}
	}
}
