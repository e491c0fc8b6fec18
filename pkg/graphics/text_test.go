package graphics

import "testing"

func TestGlyphCellTable(t *testing.T) {
	tests := []struct {
		c       byte
		y       int
		xoffset int
	}{
		{'A', uppercaseRow, 0},
		{'M', uppercaseRow, 12},
		{'Z', uppercaseRow, 25},
		{'a', lowercaseRow, 0},
		{'q', lowercaseRow, 16},
		{'z', lowercaseRow, 25},
		{'0', digitRow, 0},
		{'5', digitRow, 5},
		{'9', digitRow, 9},
		{' ', blankRow, blankColumn},
		{'!', blankRow, blankColumn},
		{'.', blankRow, blankColumn},
		{0x7f, blankRow, blankColumn},
	}

	for _, tt := range tests {
		y, xoffset := glyphCell(tt.c)
		if y != tt.y || xoffset != tt.xoffset {
			t.Errorf("glyphCell(%q) = (%d, %d), want (%d, %d)",
				tt.c, y, xoffset, tt.y, tt.xoffset)
		}
	}
}

func TestGlyphCellClasses(t *testing.T) {
	for c := byte('A'); c <= 'Z'; c++ {
		y, xoffset := glyphCell(c)
		if y != uppercaseRow || xoffset != int(c-'A') {
			t.Errorf("glyphCell(%q) = (%d, %d)", c, y, xoffset)
		}
	}
	for c := byte('a'); c <= 'z'; c++ {
		y, xoffset := glyphCell(c)
		if y != lowercaseRow || xoffset != int(c-'a') {
			t.Errorf("glyphCell(%q) = (%d, %d)", c, y, xoffset)
		}
	}
	for c := byte('0'); c <= '9'; c++ {
		y, xoffset := glyphCell(c)
		if y != digitRow || xoffset != int(c-'0') {
			t.Errorf("glyphCell(%q) = (%d, %d)", c, y, xoffset)
		}
	}
}
