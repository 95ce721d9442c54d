package chat

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidColor = errors.New("chat: invalid color")

// NumberFormatType is the wire discriminator of a number format.
type NumberFormatType int

const (
	NumberFormatBlank NumberFormatType = iota
	NumberFormatStyled
	NumberFormatFixed
)

func (t NumberFormatType) Ordinal() int { return int(t) }

func (t NumberFormatType) String() string {
	switch t {
	case NumberFormatBlank:
		return "blank"
	case NumberFormatStyled:
		return "styled"
	case NumberFormatFixed:
		return "fixed"
	default:
		return fmt.Sprintf("NumberFormatType(%d)", int(t))
	}
}

// NumberFormat controls how a score number is rendered. The set of
// implementations is closed: Blank, StyledFormat and FixedFormat.
type NumberFormat interface {
	Type() NumberFormatType
	// Tag is the structured tag written after the type, nil for Blank.
	Tag() any
	numberFormat()
}

type blankFormat struct{}

func (blankFormat) Type() NumberFormatType { return NumberFormatBlank }
func (blankFormat) Tag() any               { return nil }
func (blankFormat) numberFormat()          {}

// Blank hides the score number.
var Blank NumberFormat = blankFormat{}

// FixedFormat shows a fixed text in place of the number.
type FixedFormat struct {
	text      string
	component Component
}

// NewFixed translates markup in text and compiles it. Number formats only
// exist on versions with extended colors, so hex markup is always honoured.
func NewFixed(text string) FixedFormat {
	translated := Translate(text, true)
	return FixedFormat{
		text:      translated,
		component: Compile(translated, Options{HexColors: true}),
	}
}

func (f FixedFormat) Type() NumberFormatType { return NumberFormatFixed }
func (f FixedFormat) Tag() any               { return f.component }
func (FixedFormat) numberFormat()            {}

// Text is the translated placeholder.
func (f FixedFormat) Text() string { return f.text }

// StyleOptions describe a styled number format. Color is a color name
// ("gold") or "#rrggbb"; empty means white.
type StyleOptions struct {
	Color         string
	Obfuscated    bool
	Bold          bool
	Strikethrough bool
	Underlined    bool
	Italic        bool
}

// StyledFormat renders the number with a fixed style.
type StyledFormat struct {
	style Style
}

func NewStyled(opts StyleOptions) (StyledFormat, error) {
	color := strings.TrimSpace(opts.Color)
	switch {
	case color == "":
		color = White.Name()
	case strings.HasPrefix(color, "#"):
		if !ValidHex(color) {
			return StyledFormat{}, fmt.Errorf("%w: %q", ErrInvalidColor, opts.Color)
		}
	default:
		c, ok := ByName(color)
		if !ok || !c.IsColor() {
			return StyledFormat{}, fmt.Errorf("%w: %q", ErrInvalidColor, opts.Color)
		}
		color = c.Name()
	}
	return StyledFormat{style: Style{
		Color:         color,
		Obfuscated:    opts.Obfuscated,
		Bold:          opts.Bold,
		Strikethrough: opts.Strikethrough,
		Underlined:    opts.Underlined,
		Italic:        opts.Italic,
	}}, nil
}

func (f StyledFormat) Type() NumberFormatType { return NumberFormatStyled }
func (f StyledFormat) Tag() any               { return f.style }
func (StyledFormat) numberFormat()            {}

func (f StyledFormat) Style() Style { return f.style }
