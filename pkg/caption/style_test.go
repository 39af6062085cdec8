package caption

import "testing"

func TestNewStyle_Clamps(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		fraction float64
		wantSize int
		wantFrac float64
	}{
		{"in range", 28, 0.85, 28, 0.85},
		{"too small", 4, 0.01, MinFontSize, MinVerticalFraction},
		{"too large", 200, 1.5, MaxFontSize, MaxVerticalFraction},
		{"bounds", 12, 0.95, 12, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStyle("hi", tt.size, tt.fraction)
			if s.FontSize != tt.wantSize {
				t.Errorf("FontSize = %d, want %d", s.FontSize, tt.wantSize)
			}
			if s.VerticalFraction != tt.wantFrac {
				t.Errorf("VerticalFraction = %f, want %f", s.VerticalFraction, tt.wantFrac)
			}
		})
	}
}

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	if s.Text != "TEXT HERE" || s.FontSize != 28 || s.VerticalFraction != 0.85 {
		t.Errorf("unexpected default style: %+v", s)
	}
}

func TestStyle_WithMethodsDoNotMutate(t *testing.T) {
	base := DefaultStyle()
	bigger := base.WithFontSize(100)
	moved := base.WithVerticalFraction(0.2)
	renamed := base.WithText("hello")

	if base != DefaultStyle() {
		t.Error("base style was modified")
	}
	if bigger.FontSize != MaxFontSize {
		t.Errorf("expected clamped size, got %d", bigger.FontSize)
	}
	if moved.VerticalFraction != 0.2 {
		t.Errorf("expected 0.2, got %f", moved.VerticalFraction)
	}
	if renamed.Text != "hello" || renamed.FontSize != base.FontSize {
		t.Errorf("unexpected style: %+v", renamed)
	}
}

func TestStyle_IsEmpty(t *testing.T) {
	for text, want := range map[string]bool{
		"":        true,
		"   ":     true,
		"\t\n":    true,
		"a":       false,
		"  hey  ": false,
	} {
		if got := NewStyle(text, 20, 0.5).IsEmpty(); got != want {
			t.Errorf("IsEmpty(%q) = %v, want %v", text, got, want)
		}
	}
}
