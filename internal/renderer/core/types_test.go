package core

import (
	"testing"
)

func TestColorDefault(t *testing.T) {
	c := ColorDefault
	if !c.IsDefault() {
		t.Error("ColorDefault should be default")
	}
}

func TestColorFromRGB(t *testing.T) {
	c := ColorFromRGB(255, 128, 64)

	if c.R != 255 || c.G != 128 || c.B != 64 {
		t.Errorf("expected (255,128,64), got (%d,%d,%d)", c.R, c.G, c.B)
	}
	if c.Indexed {
		t.Error("RGB color should not be indexed")
	}
	if c.IsDefault() {
		t.Error("RGB color should not be default")
	}
}

func TestColorFromIndex(t *testing.T) {
	c := ColorFromIndex(42)

	if c.R != 42 {
		t.Errorf("expected index 42, got %d", c.R)
	}
	if !c.Indexed {
		t.Error("indexed color should have Indexed true")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FF8040", ColorFromRGB(255, 128, 64), false},
		{"#ff8040", ColorFromRGB(255, 128, 64), false},
		{"FF8040", ColorFromRGB(255, 128, 64), false},
		{"#FFF", ColorWhite, false},
		{"#000", ColorBlack, false},
		{"default", ColorDefault, false},
		{"red", ColorRed, false},
		{"Green", ColorGreen, false},
		{"WHITE", ColorWhite, false},
		{"black", ColorBlack, false},
		{"purple", Color{}, true},
		{"", ColorDefault, false},
		{"invalid", Color{}, true},
		{"#GGG", Color{}, true},
	}

	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) expected error, got nil", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if !c.Equals(tt.want) {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, c, tt.want)
		}
	}
}

func TestColorEquals(t *testing.T) {
	c1 := ColorFromRGB(255, 128, 64)
	c2 := ColorFromRGB(255, 128, 64)
	c3 := ColorFromRGB(255, 128, 65)
	c4 := ColorFromIndex(10)

	if !c1.Equals(c2) {
		t.Error("identical RGB colors should be equal")
	}
	if c1.Equals(c3) {
		t.Error("different RGB colors should not be equal")
	}
	if c1.Equals(c4) {
		t.Error("RGB and indexed colors should not be equal")
	}
	if c1.Equals(ColorDefault) {
		t.Error("RGB color should not equal default")
	}
}

func TestColorString(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, "default"},
		{ColorFromIndex(7), "idx(7)"},
		{ColorFromRGB(255, 0, 16), "#FF0010"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStyle(t *testing.T) {
	s := DefaultStyle()
	if !s.Foreground.IsDefault() || !s.Background.IsDefault() || s.Attributes != AttrNone {
		t.Errorf("unexpected default style %+v", s)
	}

	s = s.WithForeground(ColorRed).WithBackground(ColorGreen).Bold()
	if !s.Foreground.Equals(ColorRed) || !s.Background.Equals(ColorGreen) {
		t.Error("colors not applied")
	}
	if !s.Attributes.Has(AttrBold) || s.Attributes.Has(AttrItalic) {
		t.Errorf("unexpected attributes %v", s.Attributes)
	}
	if s.Equals(DefaultStyle()) {
		t.Error("modified style should differ from default")
	}
}

func TestCells(t *testing.T) {
	c := EmptyCell()
	if c.Rune != ' ' || c.Width != 1 {
		t.Errorf("unexpected empty cell %+v", c)
	}

	wide := NewStyledCell('日', DefaultStyle())
	if wide.Width != 2 {
		t.Errorf("expected wide cell, got width %d", wide.Width)
	}
	if wide.Equals(NewStyledCell('日', DefaultStyle().Bold())) {
		t.Error("cells with different styles should differ")
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r     rune
		width int
	}{
		{'A', 1},
		{'0', 1},
		{'$', 1},
		{'中', 2},
		{'あ', 2},
		{'\x00', 0},
	}

	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.width {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.width)
		}
	}
}

func TestStringFromCells(t *testing.T) {
	cells := []Cell{
		NewStyledCell('1', DefaultStyle()),
		NewStyledCell('日', DefaultStyle()),
		{},
		EmptyCell(),
	}
	if got := StringFromCells(cells); got != "1日 " {
		t.Errorf("expected %q, got %q", "1日 ", got)
	}
}
