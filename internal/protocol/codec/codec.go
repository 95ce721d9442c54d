// Package codec encodes scoreboard messages for one protocol era.
//
// Eras compose: each era handles the kinds whose layout changed at its
// boundary and hands every other kind to the era before it.
package codec

import (
	"fmt"

	"github.com/danmuck/sbcontrol/internal/chat"
	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/danmuck/sbcontrol/internal/protocol/wire"
)

// Codec writes message payloads for one version.
type Codec interface {
	Version() protocol.Version
	Encode(b *wire.Buffer, msg protocol.Message) error
}

type era struct {
	from  protocol.Version
	build func(protocol.Version) Codec
}

// eras is ordered newest first; the first era not newer than the running
// version wins.
var eras = []era{
	{protocol.V1_20_3, func(v protocol.Version) Codec { return newV1_20_3(v) }},
	{protocol.V1_20_2, func(v protocol.Version) Codec { return newV1_20_2(v) }},
	{protocol.V1_13, func(v protocol.Version) Codec { return newV1_13(v) }},
	{protocol.V1_12, func(v protocol.Version) Codec { return newV1_12(v) }},
}

// For selects the codec of v.
func For(v protocol.Version) (Codec, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: no codec for %s", protocol.ErrConstruction, v)
	}
	for _, e := range eras {
		if v.AtLeast(e.from) {
			return e.build(v), nil
		}
	}
	return nil, fmt.Errorf("%w: no codec for %s", protocol.ErrConstruction, v)
}

// componentWriter writes a markup string as the era's chat representation.
type componentWriter func(b *wire.Buffer, markup string) error

func plainText(b *wire.Buffer, markup string) error {
	return b.WriteString(markup)
}

func jsonComponent(hex bool) componentWriter {
	opts := chat.Options{HexColors: hex}
	return func(b *wire.Buffer, markup string) error {
		s, err := chat.Compile(markup, opts).JSON()
		if err != nil {
			return fmt.Errorf("%w: chat component: %v", protocol.ErrInvalidArgument, err)
		}
		return b.WriteString(s)
	}
}

func nbtComponent(b *wire.Buffer, markup string) error {
	return b.WriteTag(chat.Compile(markup, chat.Options{HexColors: true}))
}

func writeNumberFormat(b *wire.Buffer, nf chat.NumberFormat) error {
	if nf == nil {
		return fmt.Errorf("%w: nil number format", protocol.ErrInvalidArgument)
	}
	if err := b.WriteEnum(nf.Type()); err != nil {
		return err
	}
	if nf.Type() == chat.NumberFormatBlank {
		return nil
	}
	return b.WriteTag(nf.Tag())
}

func writeOptionalNumberFormat(b *wire.Buffer, nf chat.NumberFormat) error {
	if nf == nil {
		b.WriteBool(false)
		return nil
	}
	b.WriteBool(true)
	return writeNumberFormat(b, nf)
}

func writeEntities(b *wire.Buffer, entities []string) error {
	return wire.WriteSeq(b, entities, wire.WriteString)
}

func checkObjectiveMode(m protocol.ObjectiveMode) error {
	if m < protocol.ObjectiveCreate || m > protocol.ObjectiveUpdate {
		return fmt.Errorf("%w: objective mode %d", protocol.ErrInvalidArgument, m)
	}
	return nil
}

func checkTeam(m *protocol.Team) error {
	if m.Mode < protocol.TeamCreate || m.Mode > protocol.TeamRemoveEntities {
		return fmt.Errorf("%w: team mode %d", protocol.ErrInvalidArgument, m.Mode)
	}
	if !m.HasOptions() {
		return nil
	}
	if !m.NameTagVisibility.Valid() || !m.Collision.Valid() || !m.Color.Valid() {
		return fmt.Errorf("%w: team %q options out of range", protocol.ErrInvalidArgument, m.Name)
	}
	return nil
}

func unsupportedKind(v protocol.Version, msg protocol.Message) error {
	if msg == nil {
		return fmt.Errorf("%w: nil message", protocol.ErrInvalidArgument)
	}
	return fmt.Errorf("%w: %s message on %s", protocol.ErrUnsupported, msg.Kind(), v)
}
