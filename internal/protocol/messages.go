package protocol

import (
	"github.com/danmuck/sbcontrol/internal/chat"
)

// Message is one scoreboard packet before encoding.
type Message interface {
	Kind() Kind
}

// DisplayObjective shows an objective in a slot. An empty ObjectiveName
// clears the slot.
type DisplayObjective struct {
	Slot          DisplaySlot
	ObjectiveName string
}

func (*DisplayObjective) Kind() Kind { return KindDisplayObjective }

// Objective creates, removes or updates an objective. DisplayName, Render and
// the number format are ignored on remove.
type Objective struct {
	Name        string
	Mode        ObjectiveMode
	DisplayName string
	Render      RenderType

	version      Version
	numberFormat chat.NumberFormat
}

func NewObjective(v Version, name string, mode ObjectiveMode) *Objective {
	return &Objective{Name: name, Mode: mode, DisplayName: name, version: v}
}

func (*Objective) Kind() Kind { return KindObjective }

func (m *Objective) Version() Version { return m.version }

// SetNumberFormat sets the default number format; nil clears it.
func (m *Objective) SetNumberFormat(nf chat.NumberFormat) error {
	if err := m.version.Require(FeatureNumberFormat, "objective number format"); err != nil {
		return err
	}
	m.numberFormat = nf
	return nil
}

func (m *Objective) NumberFormat() (chat.NumberFormat, error) {
	if err := m.version.Require(FeatureNumberFormat, "objective number format"); err != nil {
		return nil, err
	}
	return m.numberFormat, nil
}

// Team carries team lifecycle and membership changes. Option fields are
// written on create and update; Entities on create, add and remove.
type Team struct {
	Name              string
	Mode              TeamMode
	DisplayName       string
	Flags             FriendlyFlags
	NameTagVisibility NameTagVisibility
	Collision         CollisionRule
	Color             chat.Color
	Prefix            string
	Suffix            string
	Entities          []string
}

func NewTeam(name string, mode TeamMode) *Team {
	return &Team{
		Name:              name,
		Mode:              mode,
		NameTagVisibility: NameTagAlways,
		Collision:         CollisionAlways,
		Color:             chat.White,
		Entities:          []string{},
	}
}

func (*Team) Kind() Kind { return KindTeam }

// HasOptions reports whether the mode carries the option block.
func (m *Team) HasOptions() bool {
	return m.Mode == TeamCreate || m.Mode == TeamUpdate
}

// HasEntities reports whether the mode carries an entity list.
func (m *Team) HasEntities() bool {
	return m.Mode == TeamCreate || m.Mode == TeamAddEntities || m.Mode == TeamRemoveEntities
}

// Score sets an entity's value under an objective. Before reset-score
// versions it also carries an action; afterwards it may carry a display name
// override and a number format.
type Score struct {
	EntityName    string
	ObjectiveName string
	Value         int32

	version      Version
	action       ScoreAction
	displayName  *string
	numberFormat chat.NumberFormat
}

func NewScore(v Version, entityName, objectiveName string) *Score {
	return &Score{EntityName: entityName, ObjectiveName: objectiveName, version: v}
}

func (*Score) Kind() Kind { return KindScore }

func (m *Score) Version() Version { return m.version }

func (m *Score) SetAction(a ScoreAction) error {
	if err := m.version.Require(FeatureScoreAction, "score action"); err != nil {
		return err
	}
	m.action = a
	return nil
}

func (m *Score) Action() (ScoreAction, error) {
	if err := m.version.Require(FeatureScoreAction, "score action"); err != nil {
		return 0, err
	}
	return m.action, nil
}

// SetDisplayName overrides the entity name shown for this score; nil clears.
func (m *Score) SetDisplayName(name *string) error {
	if err := m.version.Require(FeatureScoreDisplayName, "score display name"); err != nil {
		return err
	}
	m.displayName = name
	return nil
}

func (m *Score) DisplayName() (*string, error) {
	if err := m.version.Require(FeatureScoreDisplayName, "score display name"); err != nil {
		return nil, err
	}
	return m.displayName, nil
}

func (m *Score) SetNumberFormat(nf chat.NumberFormat) error {
	if err := m.version.Require(FeatureNumberFormat, "score number format"); err != nil {
		return err
	}
	m.numberFormat = nf
	return nil
}

func (m *Score) NumberFormat() (chat.NumberFormat, error) {
	if err := m.version.Require(FeatureNumberFormat, "score number format"); err != nil {
		return nil, err
	}
	return m.numberFormat, nil
}

// ResetScore removes an entity's score from one objective, or from every
// objective when ObjectiveName is nil.
type ResetScore struct {
	EntityName    string
	ObjectiveName *string
}

func NewResetScore(v Version, entityName string, objectiveName *string) (*ResetScore, error) {
	if err := v.Require(FeatureResetScore, "reset score message"); err != nil {
		return nil, err
	}
	return &ResetScore{EntityName: entityName, ObjectiveName: objectiveName}, nil
}

func (*ResetScore) Kind() Kind { return KindResetScore }
