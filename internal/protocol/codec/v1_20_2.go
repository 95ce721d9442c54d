package codec

import (
	"fmt"

	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/danmuck/sbcontrol/internal/protocol/wire"
)

// v1_20_2 widens the display slot to a varint.
type v1_20_2 struct {
	v1_13
}

func newV1_20_2(v protocol.Version) v1_20_2 {
	return v1_20_2{v1_13: newV1_13(v)}
}

func (c v1_20_2) Encode(b *wire.Buffer, msg protocol.Message) error {
	if m, ok := msg.(*protocol.DisplayObjective); ok {
		return c.displayObjective(b, m)
	}
	return c.v1_13.Encode(b, msg)
}

func (c v1_20_2) displayObjective(b *wire.Buffer, m *protocol.DisplayObjective) error {
	if !m.Slot.Valid() {
		return fmt.Errorf("%w: display slot %d", protocol.ErrInvalidArgument, m.Slot)
	}
	if err := b.WriteEnum(m.Slot); err != nil {
		return err
	}
	return b.WriteString(m.ObjectiveName)
}
