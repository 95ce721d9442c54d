package scoreboard

import (
	"fmt"
	"sort"

	"github.com/danmuck/sbcontrol/internal/chat"
	"github.com/danmuck/sbcontrol/internal/protocol"
)

const defaultTeamColor = chat.White

// Team groups entities that share name tag, collision and color options. An
// entity belongs to at most one team per board.
type Team struct {
	board *Board

	name         string
	displayName  string
	friendlyFire bool
	seeInvisible bool
	nameTag      protocol.NameTagVisibility
	collision    protocol.CollisionRule
	color        chat.Color
	prefix       string
	suffix       string
	entities     map[string]struct{}
}

func (t *Team) checkState() error {
	if t.board.teams[t.name] != t {
		return destroyed("team", t.name)
	}
	return nil
}

func (t *Team) sortedEntities() []string {
	out := make([]string, 0, len(t.entities))
	for e := range t.entities {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// read runs fn under the board lock once the team is known to be live.
func (t *Team) read(fn func()) error {
	t.board.mu.Lock()
	defer t.board.mu.Unlock()
	if err := t.checkState(); err != nil {
		return err
	}
	fn()
	return nil
}

// mutate encodes the team update that change produces on a copy of the team,
// then commits change and sends the update. Nothing changes if encoding fails.
func (t *Team) mutate(change func(*Team)) error {
	b := t.board
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := t.checkState(); err != nil {
		return err
	}
	next := *t
	change(&next)
	packets, err := b.encode(b.teamMessage(&next, protocol.TeamUpdate, nil))
	if err != nil {
		return err
	}
	change(t)
	b.send(packets)
	return nil
}

func (t *Team) Name() (string, error) {
	var out string
	err := t.read(func() { out = t.name })
	return out, err
}

func (t *Team) DisplayName() (string, error) {
	var out string
	err := t.read(func() { out = t.displayName })
	return out, err
}

func (t *Team) SetDisplayName(text string) error {
	if err := t.board.ctrl.checkText("team display name", text, maxDisplayLen); err != nil {
		return err
	}
	resolved := t.board.ctrl.markup(text)
	return t.mutate(func(t *Team) { t.displayName = resolved })
}

func (t *Team) FriendlyFire() (bool, error) {
	var out bool
	err := t.read(func() { out = t.friendlyFire })
	return out, err
}

func (t *Team) SetFriendlyFire(allow bool) error {
	return t.mutate(func(t *Team) { t.friendlyFire = allow })
}

func (t *Team) SeeInvisible() (bool, error) {
	var out bool
	err := t.read(func() { out = t.seeInvisible })
	return out, err
}

func (t *Team) SetSeeInvisible(see bool) error {
	return t.mutate(func(t *Team) { t.seeInvisible = see })
}

func (t *Team) NameTagVisibility() (protocol.NameTagVisibility, error) {
	var out protocol.NameTagVisibility
	err := t.read(func() { out = t.nameTag })
	return out, err
}

func (t *Team) SetNameTagVisibility(n protocol.NameTagVisibility) error {
	if !n.Valid() {
		return fmt.Errorf("%w: name tag visibility %d", protocol.ErrInvalidArgument, n)
	}
	return t.mutate(func(t *Team) { t.nameTag = n })
}

func (t *Team) Collision() (protocol.CollisionRule, error) {
	var out protocol.CollisionRule
	err := t.read(func() { out = t.collision })
	return out, err
}

func (t *Team) SetCollision(c protocol.CollisionRule) error {
	if !c.Valid() {
		return fmt.Errorf("%w: collision rule %d", protocol.ErrInvalidArgument, c)
	}
	return t.mutate(func(t *Team) { t.collision = c })
}

func (t *Team) Color() (chat.Color, error) {
	var out chat.Color
	err := t.read(func() { out = t.color })
	return out, err
}

// SetColor sets the team color. Reset maps to white; format codes are
// rejected.
func (t *Team) SetColor(c chat.Color) error {
	if c == chat.Reset {
		c = defaultTeamColor
	}
	if !c.IsColor() {
		return fmt.Errorf("%w: %d is not a team color", protocol.ErrInvalidArgument, c)
	}
	return t.mutate(func(t *Team) { t.color = c })
}

func (t *Team) Prefix() (string, error) {
	var out string
	err := t.read(func() { out = t.prefix })
	return out, err
}

func (t *Team) SetPrefix(text string) error {
	if err := t.board.ctrl.checkText("team prefix", text, maxAffixLen); err != nil {
		return err
	}
	resolved := t.board.ctrl.markup(text)
	return t.mutate(func(t *Team) { t.prefix = resolved })
}

func (t *Team) Suffix() (string, error) {
	var out string
	err := t.read(func() { out = t.suffix })
	return out, err
}

func (t *Team) SetSuffix(text string) error {
	if err := t.board.ctrl.checkText("team suffix", text, maxAffixLen); err != nil {
		return err
	}
	resolved := t.board.ctrl.markup(text)
	return t.mutate(func(t *Team) { t.suffix = resolved })
}

// AddEntities joins entities to the team in one message. The call fails
// without effect if any entity already belongs to a team.
func (t *Team) AddEntities(entities ...string) error {
	if len(entities) == 0 {
		return fmt.Errorf("%w: no entities to add to team %q", protocol.ErrInvalidArgument, t.name)
	}
	for _, e := range entities {
		if err := t.board.ctrl.checkEntity(e); err != nil {
			return err
		}
	}
	b := t.board
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := t.checkState(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		if _, dup := seen[e]; dup {
			return fmt.Errorf("%w: entity %q listed twice", protocol.ErrInvalidArgument, e)
		}
		seen[e] = struct{}{}
		if owner, ok := b.entityTeams[e]; ok {
			return fmt.Errorf("%w: entity %q already belongs to team %q", protocol.ErrInvalidArgument, e, owner.name)
		}
	}
	packets, err := b.encode(b.teamMessage(t, protocol.TeamAddEntities, append([]string(nil), entities...)))
	if err != nil {
		return err
	}
	for _, e := range entities {
		t.entities[e] = struct{}{}
		b.entityTeams[e] = t
	}
	b.send(packets)
	return nil
}

// RemoveEntities takes entities out of the team in one message. The call
// fails without effect if any entity is not a member.
func (t *Team) RemoveEntities(entities ...string) error {
	if len(entities) == 0 {
		return fmt.Errorf("%w: no entities to remove from team %q", protocol.ErrInvalidArgument, t.name)
	}
	for _, e := range entities {
		if err := t.board.ctrl.checkEntity(e); err != nil {
			return err
		}
	}
	b := t.board
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := t.checkState(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		if _, dup := seen[e]; dup {
			return fmt.Errorf("%w: entity %q listed twice", protocol.ErrInvalidArgument, e)
		}
		seen[e] = struct{}{}
		if b.entityTeams[e] != t {
			return fmt.Errorf("%w: entity %q is not in team %q", protocol.ErrInvalidArgument, e, t.name)
		}
	}
	packets, err := b.encode(b.teamMessage(t, protocol.TeamRemoveEntities, append([]string(nil), entities...)))
	if err != nil {
		return err
	}
	for _, e := range entities {
		delete(t.entities, e)
		delete(b.entityTeams, e)
	}
	b.send(packets)
	return nil
}

func (t *Team) HasEntity(entity string) (bool, error) {
	var out bool
	err := t.read(func() { _, out = t.entities[entity] })
	return out, err
}

// Entities lists members in name order.
func (t *Team) Entities() ([]string, error) {
	var out []string
	err := t.read(func() { out = t.sortedEntities() })
	return out, err
}

// Destroy removes the team and releases its members.
func (t *Team) Destroy() error {
	b := t.board
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := t.checkState(); err != nil {
		return err
	}
	var msgs []protocol.Message
	if len(t.entities) > 0 {
		msgs = append(msgs, b.teamMessage(t, protocol.TeamRemoveEntities, t.sortedEntities()))
	}
	msgs = append(msgs, b.teamMessage(t, protocol.TeamRemove, nil))
	packets, err := b.encode(msgs...)
	if err != nil {
		return err
	}

	delete(b.teams, t.name)
	for e := range t.entities {
		delete(b.entityTeams, e)
	}
	t.entities = make(map[string]struct{})
	b.ctrl.logger.Debug().Str("board", b.id.String()).Str("team", t.name).Msg("team destroyed")
	b.send(packets)
	return nil
}
