package scoreboard

import (
	"github.com/danmuck/sbcontrol/internal/protocol"
)

// Message builders. Callers hold the board lock.

func (b *Board) displayMessage(slot protocol.DisplaySlot, objective string) protocol.Message {
	return &protocol.DisplayObjective{Slot: slot, ObjectiveName: objective}
}

func (b *Board) objectiveMessage(o *Objective, mode protocol.ObjectiveMode) (protocol.Message, error) {
	m := protocol.NewObjective(b.ctrl.version, o.name, mode)
	if mode == protocol.ObjectiveRemove {
		return m, nil
	}
	m.DisplayName = o.displayName
	m.Render = o.render
	if b.ctrl.version.Supports(protocol.FeatureNumberFormat) {
		if err := m.SetNumberFormat(o.numberFormat); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (b *Board) teamMessage(t *Team, mode protocol.TeamMode, entities []string) protocol.Message {
	m := protocol.NewTeam(t.name, mode)
	if m.HasOptions() {
		m.DisplayName = t.displayName
		m.Flags = protocol.FriendlyFlagsOf(t.friendlyFire, t.seeInvisible)
		m.NameTagVisibility = t.nameTag
		m.Collision = t.collision
		m.Color = t.color
		m.Prefix = t.prefix
		m.Suffix = t.suffix
	}
	if m.HasEntities() && entities != nil {
		m.Entities = entities
	}
	return m
}

func (b *Board) scoreUpdateMessage(s *Score) (protocol.Message, error) {
	v := b.ctrl.version
	m := protocol.NewScore(v, s.entity, s.objective.name)
	m.Value = s.value
	if !v.Supports(protocol.FeatureScoreAction) {
		if err := m.SetDisplayName(s.displayName); err != nil {
			return nil, err
		}
		if err := m.SetNumberFormat(s.numberFormat); err != nil {
			return nil, err
		}
		return m, nil
	}
	if err := m.SetAction(protocol.ScoreUpdate); err != nil {
		return nil, err
	}
	return m, nil
}

func (b *Board) scoreRemoveMessage(entity, objective string) (protocol.Message, error) {
	v := b.ctrl.version
	if v.Supports(protocol.FeatureResetScore) {
		return protocol.NewResetScore(v, entity, &objective)
	}
	m := protocol.NewScore(v, entity, objective)
	if err := m.SetAction(protocol.ScoreRemove); err != nil {
		return nil, err
	}
	return m, nil
}

// encode marshals msgs whether or not clients are attached, so a mutation
// that cannot be encoded is rejected before any state changes.
func (b *Board) encode(msgs ...protocol.Message) ([][]byte, error) {
	if len(msgs) == 0 {
		return nil, nil
	}
	return b.ctrl.encoder.MarshalAll(msgs...)
}

// send hands packets to every attached client. Delivery failures are logged
// and counted by the controller.
func (b *Board) send(packets [][]byte) {
	for client := range b.clients {
		_ = b.ctrl.deliver(client, packets)
	}
}
