package chat

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Component is a styled text node. Its field order is the order written
// into structured tags.
type Component struct {
	Text          string      `json:"text" nbt:"text"`
	Color         string      `json:"color,omitempty" nbt:"color,omitempty"`
	Obfuscated    bool        `json:"obfuscated,omitempty" nbt:"obfuscated,omitempty"`
	Bold          bool        `json:"bold,omitempty" nbt:"bold,omitempty"`
	Strikethrough bool        `json:"strikethrough,omitempty" nbt:"strikethrough,omitempty"`
	Underlined    bool        `json:"underlined,omitempty" nbt:"underlined,omitempty"`
	Italic        bool        `json:"italic,omitempty" nbt:"italic,omitempty"`
	Extra         []Component `json:"extra,omitempty" nbt:"extra,omitempty"`
}

// Style carries only the styling fields of a component.
type Style struct {
	Color         string `json:"color,omitempty" nbt:"color,omitempty"`
	Obfuscated    bool   `json:"obfuscated,omitempty" nbt:"obfuscated,omitempty"`
	Bold          bool   `json:"bold,omitempty" nbt:"bold,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty" nbt:"strikethrough,omitempty"`
	Underlined    bool   `json:"underlined,omitempty" nbt:"underlined,omitempty"`
	Italic        bool   `json:"italic,omitempty" nbt:"italic,omitempty"`
}

// PlainText concatenates the text of c and its children.
func (c Component) PlainText() string {
	var b strings.Builder
	c.appendText(&b)
	return b.String()
}

func (c Component) appendText(b *strings.Builder) {
	b.WriteString(c.Text)
	for _, child := range c.Extra {
		child.appendText(b)
	}
}

// JSON renders c as a JSON text component.
func (c Component) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
