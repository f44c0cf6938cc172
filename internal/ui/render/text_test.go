package render

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "photo.png", "photo.png"},
		{"unicode kept", "café 日本.jpg", "café 日本.jpg"},
		{"newline and tab", "a\nb\tc", "a b c"},
		{"nbsp", "a\u00a0b", "a b"},
		{"control chars", "a\x00b\x07c\x7f", "abc"},
		{"escape sequence", "\x1b[31mred\x1b[0m.png", "red.png"},
		{"invalid utf8", "a\xffb", "ab"},
		{"c1 control", "a\u0085b", "ab"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"fits", "image.png", 20, "image.png"},
		{"exact", "image.png", 9, "image.png"},
		{"cut", "image.png", 6, "image…"},
		{"wide chars", "日本語.png", 5, "日本…"},
		{"zero width", "image.png", 0, ""},
		{"negative width", "image.png", -3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.width); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"日本", 5, "日本 "},
		{"abc", 0, ""},
	}

	for _, tt := range tests {
		got := Fit(tt.input, tt.width)
		if got != tt.want {
			t.Errorf("Fit(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
		if tt.width > 0 && Width(got) != tt.width {
			t.Errorf("Width(Fit(%q, %d)) = %d, want %d", tt.input, tt.width, Width(got), tt.width)
		}
	}
}

func TestBlank(t *testing.T) {
	if got := Blank(3, 2); got != "   \n   " {
		t.Errorf("Blank(3, 2) = %q", got)
	}
	if got := Blank(0, 2); got != "" {
		t.Errorf("Blank(0, 2) = %q, want empty", got)
	}
	if got := Blank(3, 0); got != "" {
		t.Errorf("Blank(3, 0) = %q, want empty", got)
	}
}
