package scoreboard

import (
	"strings"
	"testing"

	"github.com/danmuck/sbcontrol/internal/chat"
	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestDestroyTwiceIsInvalidState(t *testing.T) {
	b, _ := newTestBoard(t, protocol.V1_20_3, uuid.New())
	o := mustObjective(t, b, "kills")
	s := mustScore(t, o, "alex", 1)
	team := mustTeam(t, b, "red")

	if err := s.Destroy(); err != nil {
		t.Fatalf("destroy score: %v", err)
	}
	if err := team.Destroy(); err != nil {
		t.Fatalf("destroy team: %v", err)
	}
	if err := o.Destroy(); err != nil {
		t.Fatalf("destroy objective: %v", err)
	}
	for i := 0; i < 3; i++ {
		expectErr(t, "score destroy", s.Destroy(), protocol.ErrInvalidState)
		expectErr(t, "team destroy", team.Destroy(), protocol.ErrInvalidState)
		expectErr(t, "objective destroy", o.Destroy(), protocol.ErrInvalidState)
	}

	_, err := o.Name()
	expectErr(t, "objective name", err, protocol.ErrInvalidState)
	_, err = o.Score("alex")
	expectErr(t, "objective score", err, protocol.ErrInvalidState)
	expectErr(t, "objective display", o.SetDisplaySlot(protocol.SlotSidebar), protocol.ErrInvalidState)
	_, err = team.Entities()
	expectErr(t, "team entities", err, protocol.ErrInvalidState)
	expectErr(t, "team add", team.AddEntities("alex"), protocol.ErrInvalidState)
	expectErr(t, "team prefix", team.SetPrefix("x"), protocol.ErrInvalidState)
	_, err = s.EntityName()
	expectErr(t, "score entity", err, protocol.ErrInvalidState)
	expectErr(t, "score value", s.SetValue(2), protocol.ErrInvalidState)

	if b.Objective("kills") != nil || b.Team("red") != nil {
		t.Fatalf("destroyed components still registered")
	}
}

func TestNameLengthCapsFollowVersion(t *testing.T) {
	seventeen := strings.Repeat("a", 17)
	sixteen := strings.Repeat("b", 16)
	longEntity := strings.Repeat("e", 41)

	capped, _ := newTestBoard(t, protocol.V1_20)
	_, err := capped.CreateObjective(seventeen)
	expectErr(t, "objective name on 1.20", err, protocol.ErrInvalidArgument)
	_, err = capped.CreateTeam(seventeen)
	expectErr(t, "team name on 1.20", err, protocol.ErrInvalidArgument)
	o := mustObjective(t, capped, sixteen)
	_, err = o.Score(longEntity)
	expectErr(t, "entity name on 1.20", err, protocol.ErrInvalidArgument)
	if capped.Objective(seventeen) != nil {
		t.Fatalf("rejected objective was registered")
	}

	uncapped, _ := newTestBoard(t, protocol.V1_20_2)
	o = mustObjective(t, uncapped, seventeen)
	mustTeam(t, uncapped, seventeen)
	if _, err := o.Score(longEntity); err != nil {
		t.Fatalf("long entity on 1.20.2: %v", err)
	}
}

func TestTextCapsOnlyOnLegacyVersion(t *testing.T) {
	long := strings.Repeat("x", 33)
	affix := strings.Repeat("y", 17)

	legacy, _ := newTestBoard(t, protocol.V1_12)
	o := mustObjective(t, legacy, "kills")
	expectErr(t, "objective display on 1.12", o.SetDisplayName(long), protocol.ErrInvalidArgument)
	team := mustTeam(t, legacy, "red")
	expectErr(t, "team display on 1.12", team.SetDisplayName(long), protocol.ErrInvalidArgument)
	expectErr(t, "team prefix on 1.12", team.SetPrefix(affix), protocol.ErrInvalidArgument)
	expectErr(t, "team suffix on 1.12", team.SetSuffix(affix), protocol.ErrInvalidArgument)
	if name, _ := o.DisplayName(); name != "kills" {
		t.Fatalf("rejected display name applied: %q", name)
	}

	modern, _ := newTestBoard(t, protocol.V1_13)
	o = mustObjective(t, modern, "kills")
	if err := o.SetDisplayName(long); err != nil {
		t.Fatalf("display name on 1.13: %v", err)
	}
	team = mustTeam(t, modern, "red")
	if err := team.SetPrefix(affix); err != nil {
		t.Fatalf("prefix on 1.13: %v", err)
	}
}

func TestObjectiveDestroyInvalidatesScores(t *testing.T) {
	b, _ := newTestBoard(t, protocol.V1_16, uuid.New())
	o := mustObjective(t, b, "x")
	s := mustScore(t, o, "alex", 7)
	if v, err := s.Value(); err != nil || v != 7 {
		t.Fatalf("value=%d err=%v", v, err)
	}

	if err := o.Destroy(); err != nil {
		t.Fatalf("destroy objective: %v", err)
	}
	_, err := s.Value()
	expectErr(t, "score value", err, protocol.ErrInvalidState)
	_, err = s.Objective()
	expectErr(t, "score objective", err, protocol.ErrInvalidState)

	// same names on a new objective never revive the old score
	again := mustObjective(t, b, "x")
	fresh, err := again.Score("alex")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if fresh == s {
		t.Fatalf("destroyed score was reused")
	}
	if v, _ := fresh.Value(); v != 0 {
		t.Fatalf("fresh score starts at %d", v)
	}
	_, err = s.Value()
	expectErr(t, "stale score after recreate", err, protocol.ErrInvalidState)
}

func TestResetScoresReplacesScores(t *testing.T) {
	client := uuid.New()
	b, rec := newTestBoard(t, protocol.V1_20_3, client)
	o := mustObjective(t, b, "kills")
	a := mustScore(t, o, "alex", 1)
	mustScore(t, o, "steve", 2)
	rec.Reset()

	if err := o.ResetScores(); err != nil {
		t.Fatalf("reset scores: %v", err)
	}
	if diff := cmp.Diff([]protocol.Kind{protocol.KindResetScore, protocol.KindResetScore}, kindsOf(t, protocol.V1_20_3, rec.Packets(client))); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
	if tracking, _ := o.IsTracking("alex"); tracking {
		t.Fatalf("alex still tracked")
	}
	expectErr(t, "reset score", a.SetValue(3), protocol.ErrInvalidState)
}

func TestTeamMembershipIsExclusive(t *testing.T) {
	client := uuid.New()
	b, rec := newTestBoard(t, protocol.V1_16, client)
	red := mustTeam(t, b, "red")
	blue := mustTeam(t, b, "blue")

	if err := red.AddEntities("steve"); err != nil {
		t.Fatalf("add to red: %v", err)
	}
	expectErr(t, "add to blue", blue.AddEntities("steve"), protocol.ErrInvalidArgument)
	expectErr(t, "remove from blue", blue.RemoveEntities("steve"), protocol.ErrInvalidArgument)
	expectErr(t, "duplicate in call", blue.AddEntities("alex", "alex"), protocol.ErrInvalidArgument)
	expectErr(t, "empty call", blue.AddEntities(), protocol.ErrInvalidArgument)
	if has, _ := blue.HasEntity("alex"); has {
		t.Fatalf("failed add had an effect")
	}

	if err := red.RemoveEntities("steve"); err != nil {
		t.Fatalf("remove from red: %v", err)
	}
	if err := blue.AddEntities("steve"); err != nil {
		t.Fatalf("add to blue: %v", err)
	}
	if b.EntityTeam("steve") != blue {
		t.Fatalf("steve should be on blue")
	}
	if name, _ := b.EntityTeam("steve").Name(); name != "blue" {
		t.Fatalf("unexpected team %q", name)
	}

	rec.Reset()
	if err := blue.Destroy(); err != nil {
		t.Fatalf("destroy blue: %v", err)
	}
	if b.EntityTeam("steve") != nil {
		t.Fatalf("destroyed team still owns steve")
	}
	packets := rec.Packets(client)
	if len(packets) != 2 || modeOf(packets[0]) != byte(protocol.TeamRemoveEntities) || modeOf(packets[1]) != byte(protocol.TeamRemove) {
		t.Fatalf("unexpected destroy packets: % x", packets)
	}
	if err := red.AddEntities("steve"); err != nil {
		t.Fatalf("rejoin red: %v", err)
	}
}

func TestTeamOptionsBroadcastUpdates(t *testing.T) {
	client := uuid.New()
	b, rec := newTestBoard(t, protocol.V1_12, client)
	team := mustTeam(t, b, "red")
	rec.Reset()

	steps := []func() error{
		func() error { return team.SetFriendlyFire(true) },
		func() error { return team.SetSeeInvisible(true) },
		func() error { return team.SetNameTagVisibility(protocol.NameTagNever) },
		func() error { return team.SetCollision(protocol.CollisionPushOwnTeam) },
		func() error { return team.SetColor(chat.Red) },
		func() error { return team.SetPrefix("&c[R] ") },
		func() error { return team.SetSuffix("&r") },
		func() error { return team.SetDisplayName("Red Team") },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	packets := rec.Packets(client)
	if len(packets) != len(steps) {
		t.Fatalf("expected %d updates, got %d", len(steps), len(packets))
	}
	for _, pkt := range packets {
		if modeOf(pkt) != byte(protocol.TeamUpdate) {
			t.Fatalf("expected update mode in % x", pkt)
		}
	}

	last := packets[len(packets)-1]
	// [id]["red"][mode]["Red Team"]["§c[R] "]["§r"][flags]...
	flagsAt := 1 + 4 + 1 + 9 + 1 + len("§c[R] ") + 1 + len("§r")
	if last[flagsAt] != 0x03 {
		t.Fatalf("expected both friendly flags, got %#x", last[flagsAt])
	}

	if ff, _ := team.FriendlyFire(); !ff {
		t.Fatalf("friendly fire not stored")
	}
	if see, _ := team.SeeInvisible(); !see {
		t.Fatalf("see invisible not stored")
	}
	if prefix, _ := team.Prefix(); prefix != "§c[R] " {
		t.Fatalf("prefix markup not resolved: %q", prefix)
	}
	if n, _ := team.NameTagVisibility(); n != protocol.NameTagNever {
		t.Fatalf("name tag not stored")
	}
	if c, _ := team.Collision(); c != protocol.CollisionPushOwnTeam {
		t.Fatalf("collision not stored")
	}

	if err := team.SetColor(chat.Reset); err != nil {
		t.Fatalf("set reset color: %v", err)
	}
	if c, _ := team.Color(); c != chat.White {
		t.Fatalf("reset should map to white, got %v", c)
	}
	expectErr(t, "format color", team.SetColor(chat.Bold), protocol.ErrInvalidArgument)
	expectErr(t, "name tag", team.SetNameTagVisibility(protocol.NameTagVisibility(9)), protocol.ErrInvalidArgument)
}

func TestNumberFormatAndScoreDisplayNameAreVersionGated(t *testing.T) {
	old, _ := newTestBoard(t, protocol.V1_20_2)
	o := mustObjective(t, old, "kills")
	s := mustScore(t, o, "alex", 1)
	expectErr(t, "objective number format", o.SetNumberFormat(chat.Blank), protocol.ErrUnsupported)
	_, err := o.NumberFormat()
	expectErr(t, "objective number format read", err, protocol.ErrUnsupported)
	name := "Alex"
	expectErr(t, "score display name", s.SetDisplayName(&name), protocol.ErrUnsupported)
	expectErr(t, "score number format", s.SetNumberFormat(chat.Blank), protocol.ErrUnsupported)

	client := uuid.New()
	cur, rec := newTestBoard(t, protocol.V1_20_3, client)
	o = mustObjective(t, cur, "kills")
	s = mustScore(t, o, "alex", 1)
	styled, err := chat.NewStyled(chat.StyleOptions{Color: "gold", Bold: true})
	if err != nil {
		t.Fatalf("styled: %v", err)
	}
	if err := o.SetNumberFormat(styled); err != nil {
		t.Fatalf("objective number format: %v", err)
	}
	display := "&6Alex"
	if err := s.SetDisplayName(&display); err != nil {
		t.Fatalf("score display name: %v", err)
	}
	if err := s.SetNumberFormat(chat.NewFixed("&c-")); err != nil {
		t.Fatalf("score number format: %v", err)
	}
	got, err := s.DisplayName()
	if err != nil || got == nil || *got != "§6Alex" {
		t.Fatalf("display name=%v err=%v", got, err)
	}
	if err := s.SetDisplayName(nil); err != nil {
		t.Fatalf("clear display name: %v", err)
	}
	if got, _ := s.DisplayName(); got != nil {
		t.Fatalf("display name not cleared")
	}
	nf, err := o.NumberFormat()
	if err != nil || nf.Type() != chat.NumberFormatStyled {
		t.Fatalf("number format=%v err=%v", nf, err)
	}
	// create + score create + set value, then four updates
	if n := len(rec.Packets(client)); n != 7 {
		t.Fatalf("expected 7 packets, got %d", n)
	}
}

func TestObjectiveAccessors(t *testing.T) {
	b, _ := newTestBoard(t, protocol.V1_16)
	o := mustObjective(t, b, "hp")
	if name, _ := o.DisplayName(); name != "hp" {
		t.Fatalf("display name defaults to the name, got %q", name)
	}
	if err := o.SetDisplayName("&#ff0000Health"); err != nil {
		t.Fatalf("set display name: %v", err)
	}
	if name, _ := o.DisplayName(); name != "§x§f§f§0§0§0§0Health" {
		t.Fatalf("hex markup not resolved: %q", name)
	}
	if err := o.SetRenderType(protocol.RenderHearts); err != nil {
		t.Fatalf("set render type: %v", err)
	}
	if r, _ := o.RenderType(); r != protocol.RenderHearts {
		t.Fatalf("render type not stored")
	}
	expectErr(t, "render type", o.SetRenderType(protocol.RenderType(5)), protocol.ErrInvalidArgument)

	mustScore(t, o, "b", 1)
	mustScore(t, o, "a", 2)
	scores, err := o.Scores()
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	var names []string
	for _, s := range scores {
		n, _ := s.EntityName()
		names = append(names, n)
	}
	if diff := cmp.Diff([]string{"a", "b"}, names); diff != "" {
		t.Fatalf("scores (-want +got):\n%s", diff)
	}
	same, _ := o.Score("a")
	if same != scores[0] {
		t.Fatalf("live score not reused")
	}
	if owner, _ := same.Objective(); owner != o {
		t.Fatalf("score objective mismatch")
	}
}
