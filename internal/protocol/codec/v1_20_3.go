package codec

import (
	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/danmuck/sbcontrol/internal/protocol/wire"
)

// v1_20_3 writes components as network NBT, drops the score action, adds
// number formats and score display names, and introduces reset score.
type v1_20_3 struct {
	v1_20_2
}

func newV1_20_3(v protocol.Version) v1_20_3 {
	c := v1_20_3{v1_20_2: newV1_20_2(v)}
	c.text = nbtComponent
	return c
}

func (c v1_20_3) Encode(b *wire.Buffer, msg protocol.Message) error {
	switch m := msg.(type) {
	case *protocol.Objective:
		return c.objective(b, m)
	case *protocol.Score:
		return c.score(b, m)
	case *protocol.ResetScore:
		return c.resetScore(b, m)
	default:
		return c.v1_20_2.Encode(b, msg)
	}
}

func (c v1_20_3) objective(b *wire.Buffer, m *protocol.Objective) error {
	if err := c.v1_13.objective(b, m); err != nil {
		return err
	}
	if m.Mode == protocol.ObjectiveRemove {
		return nil
	}
	nf, err := m.NumberFormat()
	if err != nil {
		return err
	}
	return writeOptionalNumberFormat(b, nf)
}

func (c v1_20_3) score(b *wire.Buffer, m *protocol.Score) error {
	if err := b.WriteString(m.EntityName); err != nil {
		return err
	}
	if err := b.WriteString(m.ObjectiveName); err != nil {
		return err
	}
	b.WriteVarInt(m.Value)
	display, err := m.DisplayName()
	if err != nil {
		return err
	}
	if err := wire.WriteOptional(b, display, func(b *wire.Buffer, s string) error {
		return c.text(b, s)
	}); err != nil {
		return err
	}
	nf, err := m.NumberFormat()
	if err != nil {
		return err
	}
	return writeOptionalNumberFormat(b, nf)
}

func (c v1_20_3) resetScore(b *wire.Buffer, m *protocol.ResetScore) error {
	if err := b.WriteString(m.EntityName); err != nil {
		return err
	}
	return wire.WriteOptional(b, m.ObjectiveName, wire.WriteString)
}
