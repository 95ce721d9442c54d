package chat

import (
	"fmt"
	"strings"
)

// EscapeChar introduces a legacy format code.
const EscapeChar = '§'

// AltEscapeChar is the user-facing escape translated into EscapeChar.
const AltEscapeChar = '&'

// Color is a legacy format code. Its value is the wire ordinal.
type Color int

const (
	Black Color = iota
	DarkBlue
	DarkGreen
	DarkAqua
	DarkRed
	DarkPurple
	Gold
	Gray
	DarkGray
	Blue
	Green
	Aqua
	Red
	LightPurple
	Yellow
	White
	Obfuscated
	Bold
	Strikethrough
	Underline
	Italic
	Reset
)

type colorInfo struct {
	code rune
	name string
}

var colors = [...]colorInfo{
	Black:         {'0', "black"},
	DarkBlue:      {'1', "dark_blue"},
	DarkGreen:     {'2', "dark_green"},
	DarkAqua:      {'3', "dark_aqua"},
	DarkRed:       {'4', "dark_red"},
	DarkPurple:    {'5', "dark_purple"},
	Gold:          {'6', "gold"},
	Gray:          {'7', "gray"},
	DarkGray:      {'8', "dark_gray"},
	Blue:          {'9', "blue"},
	Green:         {'a', "green"},
	Aqua:          {'b', "aqua"},
	Red:           {'c', "red"},
	LightPurple:   {'d', "light_purple"},
	Yellow:        {'e', "yellow"},
	White:         {'f', "white"},
	Obfuscated:    {'k', "obfuscated"},
	Bold:          {'l', "bold"},
	Strikethrough: {'m', "strikethrough"},
	Underline:     {'n', "underline"},
	Italic:        {'o', "italic"},
	Reset:         {'r', "reset"},
}

// Colors returns every code in ordinal order.
func Colors() []Color {
	out := make([]Color, len(colors))
	for i := range colors {
		out[i] = Color(i)
	}
	return out
}

// ByCode resolves a format code character, case-insensitively.
func ByCode(c rune) (Color, bool) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	for i, info := range colors {
		if info.code == c {
			return Color(i), true
		}
	}
	return 0, false
}

// ByName resolves a lower-case color or format name such as "dark_red".
func ByName(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, info := range colors {
		if info.name == name {
			return Color(i), true
		}
	}
	return 0, false
}

func (c Color) Valid() bool { return c >= Black && c <= Reset }

func (c Color) IsColor() bool { return c >= Black && c <= White }

func (c Color) IsFormat() bool { return c >= Obfuscated && c <= Italic }

func (c Color) Code() rune {
	if !c.Valid() {
		return 0
	}
	return colors[c].code
}

// Name is the component color name ("dark_red").
func (c Color) Name() string {
	if !c.Valid() {
		return ""
	}
	return colors[c].name
}

func (c Color) Ordinal() int { return int(c) }

// String renders the escape sequence, so colors concatenate into markup.
func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return string([]rune{EscapeChar, colors[c].code})
}
