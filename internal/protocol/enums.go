package protocol

import (
	"fmt"

	"github.com/danmuck/sbcontrol/internal/chat"
)

// Kind identifies a scoreboard message shape.
type Kind int

const (
	KindDisplayObjective Kind = iota
	KindObjective
	KindTeam
	KindScore
	KindResetScore

	kindCount
)

var kindNames = [...]string{
	KindDisplayObjective: "display_objective",
	KindObjective:        "objective",
	KindTeam:             "team",
	KindScore:            "score",
	KindResetScore:       "reset_score",
}

// Kinds lists every message kind.
func Kinds() []Kind {
	return []Kind{KindDisplayObjective, KindObjective, KindTeam, KindScore, KindResetScore}
}

// KindsFor lists the kinds that exist on v.
func KindsFor(v Version) []Kind {
	kinds := []Kind{KindDisplayObjective, KindObjective, KindTeam, KindScore}
	if v.Supports(FeatureResetScore) {
		kinds = append(kinds, KindResetScore)
	}
	return kinds
}

// ParseKind accepts the snake_case kind name used in config files.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown message kind %q", ErrInvalidArgument, name)
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// DisplaySlot is a client UI location able to show one objective.
type DisplaySlot int

const (
	SlotList DisplaySlot = iota
	SlotSidebar
	SlotBelowName
	// SlotTeamBlack through SlotTeamWhite are sidebars shown only to members
	// of a team with the matching color.
	SlotTeamBlack
	SlotTeamDarkBlue
	SlotTeamDarkGreen
	SlotTeamDarkAqua
	SlotTeamDarkRed
	SlotTeamDarkPurple
	SlotTeamGold
	SlotTeamGray
	SlotTeamDarkGray
	SlotTeamBlue
	SlotTeamGreen
	SlotTeamAqua
	SlotTeamRed
	SlotTeamLightPurple
	SlotTeamYellow
	SlotTeamWhite
)

// DisplaySlots lists every slot in wire order.
func DisplaySlots() []DisplaySlot {
	out := make([]DisplaySlot, 0, SlotTeamWhite+1)
	for s := SlotList; s <= SlotTeamWhite; s++ {
		out = append(out, s)
	}
	return out
}

// TeamSidebar returns the team sidebar slot for a color code.
func TeamSidebar(c chat.Color) (DisplaySlot, error) {
	if !c.IsColor() {
		return 0, fmt.Errorf("%w: %v is not a color", ErrInvalidArgument, c)
	}
	return SlotTeamBlack + DisplaySlot(c), nil
}

func (s DisplaySlot) Valid() bool { return s >= SlotList && s <= SlotTeamWhite }

func (s DisplaySlot) Ordinal() int { return int(s) }

func (s DisplaySlot) String() string {
	switch {
	case s == SlotList:
		return "list"
	case s == SlotSidebar:
		return "sidebar"
	case s == SlotBelowName:
		return "below_name"
	case s.Valid():
		return "sidebar.team." + chat.Color(s-SlotTeamBlack).Name()
	default:
		return fmt.Sprintf("DisplaySlot(%d)", int(s))
	}
}

// RenderType is how objective values are drawn.
type RenderType int

const (
	RenderInteger RenderType = iota
	RenderHearts
)

func (r RenderType) Valid() bool { return r == RenderInteger || r == RenderHearts }

func (r RenderType) Ordinal() int { return int(r) }

// Value is the legacy string form.
func (r RenderType) Value() string {
	if r == RenderHearts {
		return "hearts"
	}
	return "integer"
}

// NameTagVisibility decides whose name tags are drawn above heads.
type NameTagVisibility int

const (
	NameTagAlways NameTagVisibility = iota
	NameTagHideForOtherTeams
	NameTagHideForOwnTeam
	NameTagNever
)

var nameTagValues = [...]string{"always", "hideForOtherTeams", "hideForOwnTeam", "never"}

func (n NameTagVisibility) Valid() bool { return n >= NameTagAlways && n <= NameTagNever }

func (n NameTagVisibility) Value() string {
	if !n.Valid() {
		return ""
	}
	return nameTagValues[n]
}

func ParseNameTagVisibility(value string) (NameTagVisibility, error) {
	for i, v := range nameTagValues {
		if v == value {
			return NameTagVisibility(i), nil
		}
	}
	return 0, fmt.Errorf("%w: name tag visibility %q", ErrInvalidArgument, value)
}

// CollisionRule controls how team members push other entities.
type CollisionRule int

const (
	CollisionAlways CollisionRule = iota
	CollisionPushOtherTeams
	CollisionPushOwnTeam
	CollisionNever
)

var collisionValues = [...]string{"always", "pushOtherTeams", "pushOwnTeam", "never"}

func (c CollisionRule) Valid() bool { return c >= CollisionAlways && c <= CollisionNever }

func (c CollisionRule) Value() string {
	if !c.Valid() {
		return ""
	}
	return collisionValues[c]
}

func ParseCollisionRule(value string) (CollisionRule, error) {
	for i, v := range collisionValues {
		if v == value {
			return CollisionRule(i), nil
		}
	}
	return 0, fmt.Errorf("%w: collision rule %q", ErrInvalidArgument, value)
}

// FriendlyFlags is the team option bit set: bit 0 allows friendly fire,
// bit 1 shows invisible teammates.
type FriendlyFlags uint8

const (
	FlagsNone              FriendlyFlags = 0
	FlagAllowFriendlyFire  FriendlyFlags = 1 << 0
	FlagSeeInvisibleFriend FriendlyFlags = 1 << 1
)

func FriendlyFlagsOf(friendlyFire, seeInvisible bool) FriendlyFlags {
	var f FriendlyFlags
	if friendlyFire {
		f |= FlagAllowFriendlyFire
	}
	if seeInvisible {
		f |= FlagSeeInvisibleFriend
	}
	return f
}

// ObjectiveMode is the objective message operation.
type ObjectiveMode int

const (
	ObjectiveCreate ObjectiveMode = iota
	ObjectiveRemove
	ObjectiveUpdate
)

func (m ObjectiveMode) String() string {
	switch m {
	case ObjectiveCreate:
		return "create"
	case ObjectiveRemove:
		return "remove"
	case ObjectiveUpdate:
		return "update"
	default:
		return fmt.Sprintf("ObjectiveMode(%d)", int(m))
	}
}

// TeamMode is the team message operation.
type TeamMode int

const (
	TeamCreate TeamMode = iota
	TeamRemove
	TeamUpdate
	TeamAddEntities
	TeamRemoveEntities
)

func (m TeamMode) String() string {
	switch m {
	case TeamCreate:
		return "create"
	case TeamRemove:
		return "remove"
	case TeamUpdate:
		return "update"
	case TeamAddEntities:
		return "add_entities"
	case TeamRemoveEntities:
		return "remove_entities"
	default:
		return fmt.Sprintf("TeamMode(%d)", int(m))
	}
}

// ScoreAction is the pre-reset-score operation carried by score messages.
type ScoreAction int

const (
	ScoreUpdate ScoreAction = iota
	ScoreRemove
)

func (a ScoreAction) String() string {
	if a == ScoreRemove {
		return "remove"
	}
	return "update"
}
