// Package timecode parses and formats clip positions.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format renders seconds as M:SS.ss, or H:MM:SS.ss past the hour.
func Format(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	centis := int64(math.Round(seconds * 100))
	hours := centis / 360000
	mins := (centis % 360000) / 6000
	secs := float64(centis%6000) / 100
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%05.2f", hours, mins, secs)
	}
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}

// Parse reads H:MM:SS(.fff), MM:SS(.fff) or raw seconds.
// The colon count decides the layout; only the last field may carry a fraction.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) > 3 || s == "" {
		return 0, fmt.Errorf("expected H:MM:SS, MM:SS, or seconds, got '%s'", s)
	}

	var total float64
	for i, p := range parts {
		last := i == len(parts)-1
		var v float64
		if last {
			f, err := strconv.ParseFloat(p, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return 0, fmt.Errorf("expected H:MM:SS, MM:SS, or seconds, got '%s'", s)
			}
			v = f
		} else {
			n, err := strconv.Atoi(p)
			if err != nil {
				return 0, fmt.Errorf("expected H:MM:SS, MM:SS, or seconds, got '%s'", s)
			}
			v = float64(n)
		}
		if v < 0 {
			return 0, fmt.Errorf("negative time component in '%s'", s)
		}
		if i > 0 && v >= 60 {
			return 0, fmt.Errorf("time component out of range in '%s'", s)
		}
		total = total*60 + v
	}
	return total, nil
}
