package graphics

// Text sheet frame dimensions. The bitmap font bakes uppercase letters,
// lowercase letters and digits into fixed rows of one sheet texture.
const (
	TextFrameWidth  = 21
	TextFrameHeight = 37
)

// Glyph rows in the text sheet, in pixels from the sheet top.
const (
	digitRow     = 0
	blankRow     = 1
	uppercaseRow = 48
	lowercaseRow = 95
)

// blankColumn is the frame column of the blank cell used for spaces and
// anything else outside the font.
const blankColumn = 10

// glyphCell maps a character to its (row, column) cell in the text
// sheet. Uppercase letters, lowercase letters and digits occupy one row
// each; everything else maps to the fixed blank cell.
func glyphCell(c byte) (y, xoffset int) {
	switch {
	case c >= 'A' && c <= 'Z':
		return uppercaseRow, int(c - 'A')
	case c >= 'a' && c <= 'z':
		return lowercaseRow, int(c - 'a')
	case c >= '0' && c <= '9':
		return digitRow, int(c - '0')
	default:
		return blankRow, blankColumn
	}
}
