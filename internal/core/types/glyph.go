package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Glyph - упакованный цветной символ сущности для рендера.
//
//	[0:8]  - символ (ASCII)
//	[8:32] - RGB-цвет 0xRRGGBB
type Glyph uint32

const (
	bitsChar  = 8
	bitsColor = 24

	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1
	maskColor = (1 << bitsColor) - 1
)

// Палитра имён цветов, которые встречаются в таблицах контента.
var namedColors = map[string]uint32{
	"white":             0xFFFFFF,
	"black":             0x000000,
	"red":               0xFF0000,
	"dark_red":          0xBF0000,
	"yellow":            0xFFFF00,
	"orange":            0xFF7F00,
	"light_violet":      0xB973FF,
	"light_pink":        0xFF73B9,
	"light_cyan":        0x73FFFF,
	"sky":               0x00BFFF,
	"desaturated_green": 0x3F7F3F,
	"darker_green":      0x007F00,
	"green":             0x00FF00,
	"violet":            0x7F00FF,
	"darker_orange":     0x7F3F00,
}

// MakeGlyph собирает Glyph из RGB-цвета и символа.
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

// Color возвращает цвет в формате 0xRRGGBB.
func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

func (g Glyph) Char() byte {
	return byte(g & maskChar)
}

// WithColor возвращает тот же символ другого цвета.
func (g Glyph) WithColor(colorRGB uint32) Glyph {
	return MakeGlyph(colorRGB, g.Char())
}

// HexColor возвращает цвет строкой вида "#00FF00".
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}

func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.HexColor())
}

// ParseColor принимает имя из палитры ("dark_red") или HEX ("#BF0000").
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return uint32(v), nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}
