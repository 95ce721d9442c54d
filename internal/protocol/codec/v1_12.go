package codec

import (
	"fmt"

	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/danmuck/sbcontrol/internal/protocol/wire"
)

// v1_12 writes every text as a plain legacy string and every ordinal as a
// single byte.
type v1_12 struct {
	version protocol.Version
	text    componentWriter
}

func newV1_12(v protocol.Version) v1_12 { return v1_12{version: v, text: plainText} }

func (c v1_12) Version() protocol.Version { return c.version }

func (c v1_12) Encode(b *wire.Buffer, msg protocol.Message) error {
	switch m := msg.(type) {
	case *protocol.DisplayObjective:
		return c.displayObjective(b, m)
	case *protocol.Objective:
		return c.objective(b, m)
	case *protocol.Team:
		return c.team(b, m)
	case *protocol.Score:
		return c.score(b, m)
	default:
		return unsupportedKind(c.version, msg)
	}
}

func (c v1_12) displayObjective(b *wire.Buffer, m *protocol.DisplayObjective) error {
	if !m.Slot.Valid() {
		return fmt.Errorf("%w: display slot %d", protocol.ErrInvalidArgument, m.Slot)
	}
	b.WriteUint8(uint8(m.Slot))
	return b.WriteString(m.ObjectiveName)
}

func (c v1_12) objective(b *wire.Buffer, m *protocol.Objective) error {
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
	return b.WriteString(m.Render.Value())
}

func (c v1_12) team(b *wire.Buffer, m *protocol.Team) error {
	if err := checkTeam(m); err != nil {
		return err
	}
	if err := b.WriteString(m.Name); err != nil {
		return err
	}
	b.WriteUint8(uint8(m.Mode))
	if m.HasOptions() {
		for _, s := range []string{m.DisplayName, m.Prefix, m.Suffix} {
			if err := c.text(b, s); err != nil {
				return err
			}
		}
		b.WriteUint8(uint8(m.Flags))
		if err := b.WriteString(m.NameTagVisibility.Value()); err != nil {
			return err
		}
		if err := b.WriteString(m.Collision.Value()); err != nil {
			return err
		}
		b.WriteUint8(uint8(m.Color))
	}
	if m.HasEntities() {
		return writeEntities(b, m.Entities)
	}
	return nil
}

// score is shared by every era that still carries a score action.
func (c v1_12) score(b *wire.Buffer, m *protocol.Score) error {
	action, err := m.Action()
	if err != nil {
		return err
	}
	if action != protocol.ScoreUpdate && action != protocol.ScoreRemove {
		return fmt.Errorf("%w: score action %d", protocol.ErrInvalidArgument, action)
	}
	if err := b.WriteString(m.EntityName); err != nil {
		return err
	}
	b.WriteUint8(uint8(action))
	if err := b.WriteString(m.ObjectiveName); err != nil {
		return err
	}
	if action == protocol.ScoreUpdate {
		b.WriteVarInt(m.Value)
	}
	return nil
}
