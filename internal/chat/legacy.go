package chat

import "strings"

// Options tune the legacy compiler for the running protocol version.
type Options struct {
	// HexColors enables "§x§r§r§g§g§b§b" extended colors.
	HexColors bool
}

// runState is the styling applied to the run currently being buffered.
type runState struct {
	color         string
	obfuscated    bool
	bold          bool
	strikethrough bool
	underlined    bool
	italic        bool
}

func (s runState) component(text string) Component {
	return Component{
		Text:          text,
		Color:         s.color,
		Obfuscated:    s.obfuscated,
		Bold:          s.bold,
		Strikethrough: s.strikethrough,
		Underlined:    s.underlined,
		Italic:        s.italic,
	}
}

func (s *runState) clearStyles() {
	s.obfuscated = false
	s.bold = false
	s.strikethrough = false
	s.underlined = false
	s.italic = false
}

// Compile turns legacy markup into a component tree: an empty root whose
// children are the styled runs, in input order.
//
// A run is flushed with the state active before the code that ends it. Colors
// reset the style flags; style codes only ever set a flag; reset clears the
// flags and keeps the color. Unknown codes are dropped, and a trailing escape
// ends the scan.
func Compile(text string, opts Options) Component {
	root := Component{Text: ""}
	if text == "" {
		return root
	}

	src := []rune(text)
	var (
		buf   strings.Builder
		state runState
		runs  []Component
	)
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		runs = append(runs, state.component(buf.String()))
		buf.Reset()
	}

	for i := 0; i < len(src); i++ {
		c := src[i]
		if c != EscapeChar {
			buf.WriteRune(c)
			continue
		}
		i++
		if i >= len(src) {
			break
		}
		c = src[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}

		if c == 'x' && opts.HexColors && i+12 < len(src) {
			if hex, ok := hexAt(src, i); ok {
				flush()
				state.color = hex
				state.clearStyles()
				i += 12
				continue
			}
		}

		code, ok := ByCode(c)
		if !ok {
			continue
		}
		flush()
		switch {
		case code.IsFormat():
			switch code {
			case Obfuscated:
				state.obfuscated = true
			case Bold:
				state.bold = true
			case Strikethrough:
				state.strikethrough = true
			case Underline:
				state.underlined = true
			case Italic:
				state.italic = true
			}
		case code.IsColor():
			state.color = code.Name()
			state.clearStyles()
		default:
			state.clearStyles()
		}
	}
	flush()

	root.Extra = runs
	return root
}

// hexAt reads "x§r§r§g§g§b§b" starting at src[i] == 'x'.
func hexAt(src []rune, i int) (string, bool) {
	digits := make([]rune, 0, 7)
	digits = append(digits, '#')
	for j := 0; j < 6; j++ {
		if src[i+1+j*2] != EscapeChar {
			return "", false
		}
		digits = append(digits, src[i+2+j*2])
	}
	hex := string(digits)
	return hex, ValidHex(hex)
}
