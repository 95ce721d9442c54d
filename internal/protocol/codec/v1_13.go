package codec

import (
	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/danmuck/sbcontrol/internal/protocol/wire"
)

// v1_13 writes texts as chat components and the objective render type and
// team color as varints. Display objective and score are unchanged.
type v1_13 struct {
	v1_12
}

func newV1_13(v protocol.Version) v1_13 {
	c := v1_13{v1_12: newV1_12(v)}
	c.text = jsonComponent(v.Supports(protocol.FeatureHexColors))
	return c
}

func (c v1_13) Encode(b *wire.Buffer, msg protocol.Message) error {
	switch m := msg.(type) {
	case *protocol.Objective:
		return c.objective(b, m)
	case *protocol.Team:
		return c.team(b, m)
	default:
		return c.v1_12.Encode(b, msg)
	}
}

func (c v1_13) objective(b *wire.Buffer, m *protocol.Objective) error {
	if err := checkObjectiveMode(m.Mode); err != nil {
		return err
	}
	if err := b.WriteString(m.Name); err != nil {
		return err
	}
	b.WriteUint8(uint8(m.Mode))
	if m.Mode == protocol.ObjectiveRemove {
		return nil
	}
	if err := c.text(b, m.DisplayName); err != nil {
		return err
	}
	return b.WriteEnum(m.Render)
}

func (c v1_13) team(b *wire.Buffer, m *protocol.Team) error {
	if err := checkTeam(m); err != nil {
		return err
	}
	if err := b.WriteString(m.Name); err != nil {
		return err
	}
	b.WriteUint8(uint8(m.Mode))
	if m.HasOptions() {
		if err := c.text(b, m.DisplayName); err != nil {
			return err
		}
		b.WriteUint8(uint8(m.Flags))
		if err := b.WriteString(m.NameTagVisibility.Value()); err != nil {
			return err
		}
		if err := b.WriteString(m.Collision.Value()); err != nil {
			return err
		}
		if err := b.WriteEnum(m.Color); err != nil {
			return err
		}
		if err := c.text(b, m.Prefix); err != nil {
			return err
		}
		if err := c.text(b, m.Suffix); err != nil {
			return err
		}
	}
	if m.HasEntities() {
		return writeEntities(b, m.Entities)
	}
	return nil
}
