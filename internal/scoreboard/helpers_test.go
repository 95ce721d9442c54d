package scoreboard

import (
	"errors"
	"testing"

	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/danmuck/sbcontrol/internal/testutil/testlog"
	"github.com/danmuck/sbcontrol/internal/transport"
	"github.com/google/uuid"
)

func newTestController(t *testing.T, v protocol.Version) (*Controller, *transport.Recorder) {
	t.Helper()
	rec := transport.NewRecorder()
	logger := testlog.Logger(t)
	c, err := NewController(Options{
		Version:   v,
		Resolver:  protocol.BuiltinIDs(v),
		Transport: rec,
		Logger:    &logger,
	})
	if err != nil {
		t.Fatalf("new controller %s: %v", v, err)
	}
	return c, rec
}

func newTestBoard(t *testing.T, v protocol.Version, clients ...uuid.UUID) (*Board, *transport.Recorder) {
	t.Helper()
	c, rec := newTestController(t, v)
	b, err := c.NewBoard(clients...)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	return b, rec
}

// kindsOf maps each packet's identifier byte back to its message kind.
func kindsOf(t *testing.T, v protocol.Version, packets [][]byte) []protocol.Kind {
	t.Helper()
	byID := make(map[byte]protocol.Kind)
	for kind, id := range protocol.BuiltinIDs(v) {
		byID[byte(id)] = kind
	}
	out := make([]protocol.Kind, 0, len(packets))
	for i, pkt := range packets {
		kind, ok := byID[pkt[0]]
		if !ok {
			t.Fatalf("packet %d has unknown id %#x", i, pkt[0])
		}
		out = append(out, kind)
	}
	return out
}

// modeOf reads the mode byte that follows the leading short name of an
// objective or team packet.
func modeOf(pkt []byte) byte {
	return pkt[2+int(pkt[1])]
}

func mustObjective(t *testing.T, b *Board, name string) *Objective {
	t.Helper()
	o, err := b.CreateObjective(name)
	if err != nil {
		t.Fatalf("create objective %q: %v", name, err)
	}
	return o
}

func mustTeam(t *testing.T, b *Board, name string) *Team {
	t.Helper()
	team, err := b.CreateTeam(name)
	if err != nil {
		t.Fatalf("create team %q: %v", name, err)
	}
	return team
}

func mustScore(t *testing.T, o *Objective, entity string, value int32) *Score {
	t.Helper()
	s, err := o.Score(entity)
	if err != nil {
		t.Fatalf("score %q: %v", entity, err)
	}
	if err := s.SetValue(value); err != nil {
		t.Fatalf("set value %q: %v", entity, err)
	}
	return s
}

func expectErr(t *testing.T, what string, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("%s: expected %v, got %v", what, target, err)
	}
}
