package scoreboard

import (
	"fmt"

	"github.com/danmuck/sbcontrol/internal/chat"
	"github.com/danmuck/sbcontrol/internal/protocol"
)

// Objective is a named metric on a board. It is valid until destroyed; after
// that every method returns protocol.ErrInvalidState.
type Objective struct {
	board *Board

	name         string
	displayName  string
	render       protocol.RenderType
	numberFormat chat.NumberFormat
}

func (o *Objective) checkState() error {
	if o.board.objectives[o.name] != o {
		return destroyed("objective", o.name)
	}
	return nil
}

// apply encodes the update that change produces on a copy of the objective
// and commits change only once the packet is built.
func (o *Objective) apply(change func(*Objective)) error {
	next := *o
	change(&next)
	m, err := o.board.objectiveMessage(&next, protocol.ObjectiveUpdate)
	if err != nil {
		return err
	}
	packets, err := o.board.encode(m)
	if err != nil {
		return err
	}
	change(o)
	o.board.send(packets)
	return nil
}

func (o *Objective) Name() (string, error) {
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return "", err
	}
	return o.name, nil
}

func (o *Objective) DisplayName() (string, error) {
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return "", err
	}
	return o.displayName, nil
}

// SetDisplayName sets the title shown to clients. '&' markup is resolved.
func (o *Objective) SetDisplayName(text string) error {
	if err := o.board.ctrl.checkText("objective display name", text, maxDisplayLen); err != nil {
		return err
	}
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return err
	}
	resolved := o.board.ctrl.markup(text)
	return o.apply(func(o *Objective) { o.displayName = resolved })
}

func (o *Objective) RenderType() (protocol.RenderType, error) {
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return 0, err
	}
	return o.render, nil
}

func (o *Objective) SetRenderType(r protocol.RenderType) error {
	if !r.Valid() {
		return fmt.Errorf("%w: render type %d", protocol.ErrInvalidArgument, r)
	}
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return err
	}
	return o.apply(func(o *Objective) { o.render = r })
}

func (o *Objective) NumberFormat() (chat.NumberFormat, error) {
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return nil, err
	}
	if err := o.board.ctrl.version.Require(protocol.FeatureNumberFormat, "objective number format"); err != nil {
		return nil, err
	}
	return o.numberFormat, nil
}

// SetNumberFormat sets the default rendering of this objective's scores; nil
// restores the client default.
func (o *Objective) SetNumberFormat(nf chat.NumberFormat) error {
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return err
	}
	if err := o.board.ctrl.version.Require(protocol.FeatureNumberFormat, "objective number format"); err != nil {
		return err
	}
	return o.apply(func(o *Objective) { o.numberFormat = nf })
}

// SetDisplaySlot shows the objective in slot, replacing whatever was there.
func (o *Objective) SetDisplaySlot(slot protocol.DisplaySlot) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: display slot %d", protocol.ErrInvalidArgument, slot)
	}
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return err
	}
	packets, err := o.board.encode(o.board.displayMessage(slot, o.name))
	if err != nil {
		return err
	}
	o.board.slots[slot] = o
	o.board.send(packets)
	return nil
}

// ClearDisplaySlots removes the objective from every slot showing it.
func (o *Objective) ClearDisplaySlots() error {
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return err
	}
	slots := o.slotsLocked()
	msgs := make([]protocol.Message, 0, len(slots))
	for _, slot := range slots {
		msgs = append(msgs, o.board.displayMessage(slot, ""))
	}
	packets, err := o.board.encode(msgs...)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		delete(o.board.slots, slot)
	}
	o.board.send(packets)
	return nil
}

// DisplaySlots lists the slots showing the objective, in slot order.
func (o *Objective) DisplaySlots() ([]protocol.DisplaySlot, error) {
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return nil, err
	}
	return o.slotsLocked(), nil
}

func (o *Objective) slotsLocked() []protocol.DisplaySlot {
	var out []protocol.DisplaySlot
	for _, slot := range o.board.sortedSlots() {
		if o.board.slots[slot] == o {
			out = append(out, slot)
		}
	}
	return out
}

// Score returns the score of entity, creating it with value 0 on first use.
// A destroyed score is never returned; the entity gets a fresh one.
func (o *Objective) Score(entity string) (*Score, error) {
	if err := o.board.ctrl.checkEntity(entity); err != nil {
		return nil, err
	}
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return nil, err
	}
	scores := o.board.scores[o.name]
	if s, ok := scores[entity]; ok {
		return s, nil
	}
	s := &Score{objective: o, entity: entity}
	m, err := o.board.scoreUpdateMessage(s)
	if err != nil {
		return nil, err
	}
	packets, err := o.board.encode(m)
	if err != nil {
		return nil, err
	}
	scores[entity] = s
	o.board.send(packets)
	return s, nil
}

// IsTracking reports whether entity has a score under the objective.
func (o *Objective) IsTracking(entity string) (bool, error) {
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return false, err
	}
	_, ok := o.board.scores[o.name][entity]
	return ok, nil
}

// Scores lists live scores by entity name.
func (o *Objective) Scores() ([]*Score, error) {
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return nil, err
	}
	return o.board.sortedScores(o.name), nil
}

// ResetScores destroys every score under the objective.
func (o *Objective) ResetScores() error {
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return err
	}
	scores := o.board.sortedScores(o.name)
	msgs := make([]protocol.Message, 0, len(scores))
	for _, s := range scores {
		m, err := o.board.scoreRemoveMessage(s.entity, o.name)
		if err != nil {
			return err
		}
		msgs = append(msgs, m)
	}
	packets, err := o.board.encode(msgs...)
	if err != nil {
		return err
	}
	o.board.scores[o.name] = make(map[string]*Score)
	o.board.send(packets)
	return nil
}

// Destroy unregisters the objective, its scores and its display slots.
// Clients drop the slots themselves when the objective is removed.
func (o *Objective) Destroy() error {
	o.board.mu.Lock()
	defer o.board.mu.Unlock()
	if err := o.checkState(); err != nil {
		return err
	}
	m, err := o.board.objectiveMessage(o, protocol.ObjectiveRemove)
	if err != nil {
		return err
	}
	packets, err := o.board.encode(m)
	if err != nil {
		return err
	}
	delete(o.board.objectives, o.name)
	delete(o.board.scores, o.name)
	for slot, shown := range o.board.slots {
		if shown == o {
			delete(o.board.slots, slot)
		}
	}
	o.board.ctrl.logger.Debug().Str("board", o.board.id.String()).Str("objective", o.name).Msg("objective destroyed")
	o.board.send(packets)
	return nil
}

