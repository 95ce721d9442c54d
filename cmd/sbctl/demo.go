package main

import (
	"fmt"
	"io"

	"github.com/danmuck/sbcontrol/internal/chat"
	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/danmuck/sbcontrol/internal/scoreboard"
	"github.com/danmuck/sbcontrol/internal/transport"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// runDemo plays a scripted session against a recording transport and writes
// every delivered packet to out, one per line.
func runDemo(opts demoOptions, out io.Writer, logger zerolog.Logger) error {
	v, err := opts.Host.ProtocolVersion()
	if err != nil {
		return err
	}
	resolver, err := opts.Host.Resolver()
	if err != nil {
		return err
	}
	logger = opts.Host.Logger(logger)
	rec := transport.NewRecorder()
	ctrl, err := scoreboard.NewController(scoreboard.Options{
		Version:   v,
		Resolver:  resolver,
		Transport: rec,
		Logger:    &logger,
	})
	if err != nil {
		return err
	}

	clients := make([]uuid.UUID, opts.Clients)
	for i := range clients {
		clients[i] = uuid.New()
	}
	// the last client joins after the board is populated
	board, err := ctrl.NewBoard(clients[:len(clients)-1]...)
	if err != nil {
		return err
	}
	if err := populate(board, v, opts); err != nil {
		return err
	}
	late := clients[len(clients)-1]
	if err := board.AddClient(late); err != nil {
		return fmt.Errorf("late join: %w", err)
	}
	if len(clients) > 1 {
		if err := board.RemoveClient(clients[0]); err != nil {
			return fmt.Errorf("leave: %w", err)
		}
	}

	names := kindNames(v, resolver)
	for _, d := range rec.Deliveries() {
		kind := names[d.Packet[0]]
		if _, err := fmt.Fprintf(out, "%s %-17s % x\n", d.Client.String()[:8], kind, d.Packet); err != nil {
			return err
		}
	}
	logger.Info().Int("packets", len(rec.Deliveries())).Int("clients", len(clients)).Msg("demo finished")
	return nil
}

func populate(board *scoreboard.Board, v protocol.Version, opts demoOptions) error {
	obj, err := board.CreateObjective("arena")
	if err != nil {
		return err
	}
	if err := obj.SetDisplayName(opts.Title); err != nil {
		return err
	}
	if err := obj.SetDisplaySlot(protocol.SlotSidebar); err != nil {
		return err
	}
	if v.Supports(protocol.FeatureNumberFormat) {
		styled, err := chat.NewStyled(chat.StyleOptions{Color: "gold"})
		if err != nil {
			return err
		}
		if err := obj.SetNumberFormat(styled); err != nil {
			return err
		}
	}
	for i, entity := range opts.Entities {
		s, err := obj.Score(entity)
		if err != nil {
			return err
		}
		if err := s.SetValue(int32((len(opts.Entities) - i) * 10)); err != nil {
			return err
		}
	}

	red, err := board.CreateTeam("red")
	if err != nil {
		return err
	}
	blue, err := board.CreateTeam("blue")
	if err != nil {
		return err
	}
	for _, step := range []func() error{
		func() error { return red.SetColor(chat.Red) },
		func() error { return red.SetPrefix("&c[R] ") },
		func() error { return blue.SetColor(chat.Blue) },
		func() error { return blue.SetPrefix("&9[B] ") },
		func() error { return blue.SetFriendlyFire(true) },
	} {
		if err := step(); err != nil {
			return err
		}
	}
	for i, entity := range opts.Entities {
		team := red
		if i%2 == 1 {
			team = blue
		}
		if err := team.AddEntities(entity); err != nil {
			return err
		}
	}
	return nil
}

// kindNames maps the leading identifier byte back to a kind name.
func kindNames(v protocol.Version, resolver protocol.Resolver) map[byte]string {
	out := make(map[byte]string)
	for _, kind := range protocol.KindsFor(v) {
		id, err := resolver.Resolve(kind)
		if err != nil {
			continue
		}
		out[byte(id)] = kind.String()
	}
	return out
}
