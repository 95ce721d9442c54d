package scoreboard

import (
	"fmt"
	"sort"
	"sync"

	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/google/uuid"
)

// Board is one scoreboard shared by a set of clients. A single mutex guards
// the board's tables and the fields of every component it owns; packets are
// sent while it is held so clients observe mutations in order.
type Board struct {
	id   uuid.UUID
	ctrl *Controller

	mu          sync.Mutex
	clients     map[uuid.UUID]struct{}
	objectives  map[string]*Objective
	scores      map[string]map[string]*Score
	slots       map[protocol.DisplaySlot]*Objective
	teams       map[string]*Team
	entityTeams map[string]*Team
}

func newBoard(c *Controller) *Board {
	return &Board{
		id:          uuid.New(),
		ctrl:        c,
		clients:     make(map[uuid.UUID]struct{}),
		objectives:  make(map[string]*Objective),
		scores:      make(map[string]map[string]*Score),
		slots:       make(map[protocol.DisplaySlot]*Objective),
		teams:       make(map[string]*Team),
		entityTeams: make(map[string]*Team),
	}
}

func (b *Board) ID() uuid.UUID { return b.id }

// AddClient attaches client and replays the visible state to it: display
// slots, objective creates, team creates, then score updates. If the replay
// cannot be delivered the client is not attached.
func (b *Board) AddClient(client uuid.UUID) error {
	if client == uuid.Nil {
		return fmt.Errorf("%w: nil client id", protocol.ErrInvalidArgument)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[client]; ok {
		return fmt.Errorf("%w: client %s already on board", protocol.ErrInvalidArgument, client)
	}

	msgs, err := b.replayMessages()
	if err != nil {
		return err
	}
	packets, err := b.ctrl.encoder.MarshalAll(msgs...)
	if err != nil {
		return err
	}
	if err := b.ctrl.deliver(client, packets); err != nil {
		return fmt.Errorf("replay board to %s: %w", client, err)
	}
	b.clients[client] = struct{}{}
	b.ctrl.track(client, b)
	b.ctrl.logger.Debug().Str("board", b.id.String()).Str("client", client.String()).Int("packets", len(packets)).Msg("client added")
	return nil
}

// RemoveClient detaches client and tears down what it was shown. The client
// is detached even when the teardown cannot be delivered.
func (b *Board) RemoveClient(client uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[client]; !ok {
		return fmt.Errorf("%w: client %s is not on board", protocol.ErrInvalidArgument, client)
	}
	delete(b.clients, client)
	b.ctrl.untrack(client, b)

	msgs, err := b.teardownMessages()
	if err != nil {
		return err
	}
	packets, err := b.ctrl.encoder.MarshalAll(msgs...)
	if err != nil {
		return err
	}
	if err := b.ctrl.deliver(client, packets); err != nil {
		return fmt.Errorf("tear down board for %s: %w", client, err)
	}
	b.ctrl.logger.Debug().Str("board", b.id.String()).Str("client", client.String()).Int("packets", len(packets)).Msg("client removed")
	return nil
}

func (b *Board) replayMessages() ([]protocol.Message, error) {
	var msgs []protocol.Message
	for _, slot := range b.sortedSlots() {
		msgs = append(msgs, b.displayMessage(slot, b.slots[slot].name))
	}
	for _, o := range b.sortedObjectives() {
		m, err := b.objectiveMessage(o, protocol.ObjectiveCreate)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	for _, t := range b.sortedTeams() {
		msgs = append(msgs, b.teamMessage(t, protocol.TeamCreate, t.sortedEntities()))
	}
	for _, o := range b.sortedObjectives() {
		for _, s := range b.sortedScores(o.name) {
			m, err := b.scoreUpdateMessage(s)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, m)
		}
	}
	return msgs, nil
}

func (b *Board) teardownMessages() ([]protocol.Message, error) {
	var msgs []protocol.Message
	for _, slot := range b.sortedSlots() {
		msgs = append(msgs, b.displayMessage(slot, ""))
	}
	for _, o := range b.sortedObjectives() {
		for _, s := range b.sortedScores(o.name) {
			m, err := b.scoreRemoveMessage(s.entity, o.name)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, m)
		}
	}
	for _, o := range b.sortedObjectives() {
		m, err := b.objectiveMessage(o, protocol.ObjectiveRemove)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	for _, t := range b.sortedTeams() {
		if len(t.entities) > 0 {
			msgs = append(msgs, b.teamMessage(t, protocol.TeamRemoveEntities, t.sortedEntities()))
		}
		msgs = append(msgs, b.teamMessage(t, protocol.TeamRemove, nil))
	}
	return msgs, nil
}

// CreateObjective registers a new objective displayed under its own name.
func (b *Board) CreateObjective(name string) (*Objective, error) {
	if err := b.ctrl.checkName("objective", name); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.objectives[name]; ok {
		return nil, fmt.Errorf("%w: objective %q already exists", protocol.ErrInvalidArgument, name)
	}
	o := &Objective{
		board:       b,
		name:        name,
		displayName: name,
		render:      protocol.RenderInteger,
	}
	m, err := b.objectiveMessage(o, protocol.ObjectiveCreate)
	if err != nil {
		return nil, err
	}
	packets, err := b.encode(m)
	if err != nil {
		return nil, err
	}
	b.objectives[name] = o
	b.scores[name] = make(map[string]*Score)
	b.send(packets)
	b.ctrl.logger.Debug().Str("board", b.id.String()).Str("objective", name).Msg("objective created")
	return o, nil
}

// CreateTeam registers a new team with default options.
func (b *Board) CreateTeam(name string) (*Team, error) {
	if err := b.ctrl.checkName("team", name); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.teams[name]; ok {
		return nil, fmt.Errorf("%w: team %q already exists", protocol.ErrInvalidArgument, name)
	}
	t := &Team{
		board:       b,
		name:        name,
		displayName: name,
		nameTag:     protocol.NameTagAlways,
		collision:   protocol.CollisionAlways,
		color:       defaultTeamColor,
		entities:    make(map[string]struct{}),
	}
	packets, err := b.encode(b.teamMessage(t, protocol.TeamCreate, []string{}))
	if err != nil {
		return nil, err
	}
	b.teams[name] = t
	b.send(packets)
	b.ctrl.logger.Debug().Str("board", b.id.String()).Str("team", name).Msg("team created")
	return t, nil
}

// ClearSlot empties slot. Clearing an empty slot is a no-op.
func (b *Board) ClearSlot(slot protocol.DisplaySlot) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: display slot %d", protocol.ErrInvalidArgument, slot)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.slots[slot]; !ok {
		return nil
	}
	packets, err := b.encode(b.displayMessage(slot, ""))
	if err != nil {
		return err
	}
	delete(b.slots, slot)
	b.send(packets)
	return nil
}

// ResetEntityScores drops entity's score from every objective. Versions
// without reset score get one score removal per objective on the board.
func (b *Board) ResetEntityScores(entity string) error {
	if err := b.ctrl.checkEntity(entity); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs, err := b.resetMessages(entity)
	if err != nil {
		return err
	}
	packets, err := b.encode(msgs...)
	if err != nil {
		return err
	}
	for _, scores := range b.scores {
		delete(scores, entity)
	}
	b.send(packets)
	return nil
}

func (b *Board) resetMessages(entity string) ([]protocol.Message, error) {
	v := b.ctrl.version
	if v.Supports(protocol.FeatureResetScore) {
		m, err := protocol.NewResetScore(v, entity, nil)
		if err != nil {
			return nil, err
		}
		return []protocol.Message{m}, nil
	}
	objectives := b.sortedObjectives()
	msgs := make([]protocol.Message, 0, len(objectives))
	for _, o := range objectives {
		m, err := b.scoreRemoveMessage(entity, o.name)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// Objective returns the objective called name, or nil.
func (b *Board) Objective(name string) *Objective {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.objectives[name]
}

// ObjectiveAt returns the objective shown in slot, or nil.
func (b *Board) ObjectiveAt(slot protocol.DisplaySlot) *Objective {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slots[slot]
}

// Team returns the team called name, or nil.
func (b *Board) Team(name string) *Team {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.teams[name]
}

// EntityTeam returns the team entity belongs to, or nil.
func (b *Board) EntityTeam(entity string) *Team {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.entityTeams[entity]
}

// Clients lists attached clients in id order.
func (b *Board) Clients() []uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]uuid.UUID, 0, len(b.clients))
	for c := range b.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Objectives lists live objectives by name.
func (b *Board) Objectives() []*Objective {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortedObjectives()
}

// Teams lists live teams by name.
func (b *Board) Teams() []*Team {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortedTeams()
}

func (b *Board) sortedSlots() []protocol.DisplaySlot {
	out := make([]protocol.DisplaySlot, 0, len(b.slots))
	for s := range b.slots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (b *Board) sortedObjectives() []*Objective {
	out := make([]*Objective, 0, len(b.objectives))
	for _, o := range b.objectives {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func (b *Board) sortedTeams() []*Team {
	out := make([]*Team, 0, len(b.teams))
	for _, t := range b.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func (b *Board) sortedScores(objective string) []*Score {
	scores := b.scores[objective]
	out := make([]*Score, 0, len(scores))
	for _, s := range scores {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].entity < out[j].entity })
	return out
}
