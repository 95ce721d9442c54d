package codec

import (
	"fmt"

	"github.com/danmuck/sbcontrol/internal/observability"
	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/danmuck/sbcontrol/internal/protocol/wire"
)

// Encoder frames messages as [identifier byte][payload] for one version.
// It holds no mutable state and is safe for concurrent use.
type Encoder struct {
	codec    Codec
	registry *protocol.Registry
}

// NewEncoder resolves the identifier table and codec of v.
func NewEncoder(v protocol.Version, resolver protocol.Resolver) (*Encoder, error) {
	c, err := For(v)
	if err != nil {
		return nil, err
	}
	reg, err := protocol.NewRegistry(v, resolver)
	if err != nil {
		return nil, err
	}
	return &Encoder{codec: c, registry: reg}, nil
}

func (e *Encoder) Version() protocol.Version { return e.codec.Version() }

// Marshal encodes one message.
func (e *Encoder) Marshal(msg protocol.Message) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", protocol.ErrInvalidArgument)
	}
	version := e.Version().String()
	kind := msg.Kind().String()

	id, err := e.registry.ID(msg.Kind())
	if err != nil {
		observability.RecordEncode(version, kind, 0, false)
		return nil, err
	}
	b := wire.NewBuffer(64)
	b.WriteUint8(uint8(id))
	if err := e.codec.Encode(b, msg); err != nil {
		observability.RecordEncode(version, kind, 0, false)
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	observability.RecordEncode(version, kind, b.Len(), true)
	return b.Bytes(), nil
}

// MarshalAll encodes msgs in order and stops at the first failure.
func (e *Encoder) MarshalAll(msgs ...protocol.Message) ([][]byte, error) {
	out := make([][]byte, 0, len(msgs))
	for _, msg := range msgs {
		pkt, err := e.Marshal(msg)
		if err != nil {
			return nil, err
		}
		out = append(out, pkt)
	}
	return out, nil
}
