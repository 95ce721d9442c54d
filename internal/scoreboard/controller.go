// Package scoreboard owns boards and their objectives, teams and scores, and
// turns every mutation into encoded packets for the clients viewing a board.
//
// Ownership boundary:
// - component lifecycle (active until destroyed, then permanently invalid)
// - per-board state replay and teardown when clients join and leave
// - client -> boards index across a controller
//
// Encoding lives in internal/protocol/codec; delivery is the host's
// transport.Transport.
package scoreboard

import (
	"fmt"
	"sort"
	"sync"

	"github.com/danmuck/sbcontrol/internal/observability"
	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/danmuck/sbcontrol/internal/protocol/codec"
	"github.com/danmuck/sbcontrol/internal/transport"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configure a Controller. Version, Resolver and Transport are
// required; Logger defaults to the global logger.
type Options struct {
	Version   protocol.Version
	Resolver  protocol.Resolver
	Transport transport.Transport
	Logger    *zerolog.Logger
}

// Controller creates boards for one protocol version and tracks which boards
// each client is attached to.
type Controller struct {
	version   protocol.Version
	encoder   *codec.Encoder
	transport transport.Transport
	logger    zerolog.Logger

	mu     sync.RWMutex
	boards map[uuid.UUID]map[*Board]struct{}
}

// NewController resolves identifiers and the codec for opts.Version. Any
// failure is a construction error and nothing can be sent.
func NewController(opts Options) (*Controller, error) {
	if opts.Transport == nil {
		return nil, fmt.Errorf("%w: nil transport", protocol.ErrConstruction)
	}
	enc, err := codec.NewEncoder(opts.Version, opts.Resolver)
	if err != nil {
		return nil, err
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger = logger.With().Str("component", "scoreboard").Str("version", opts.Version.String()).Logger()

	c := &Controller{
		version:   opts.Version,
		encoder:   enc,
		transport: opts.Transport,
		logger:    logger,
		boards:    make(map[uuid.UUID]map[*Board]struct{}),
	}
	logger.Info().Msg("scoreboard controller ready")
	return c, nil
}

func (c *Controller) Version() protocol.Version { return c.version }

// NewBoard creates an empty board and attaches clients to it. If any client
// cannot be attached, the ones already attached are released from the index.
func (c *Controller) NewBoard(clients ...uuid.UUID) (*Board, error) {
	b := newBoard(c)
	for _, client := range clients {
		if err := b.AddClient(client); err != nil {
			for attached := range b.clients {
				c.untrack(attached, b)
			}
			return nil, err
		}
	}
	c.logger.Debug().Str("board", b.id.String()).Int("clients", len(clients)).Msg("board created")
	return b, nil
}

// ClientBoards lists the boards client is attached to, ordered by board id.
func (c *Controller) ClientBoards(client uuid.UUID) []*Board {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set := c.boards[client]
	out := make([]*Board, 0, len(set))
	for b := range set {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].id.String() < out[j].id.String()
	})
	return out
}

func (c *Controller) track(client uuid.UUID, b *Board) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.boards[client]
	if !ok {
		set = make(map[*Board]struct{})
		c.boards[client] = set
	}
	set[b] = struct{}{}
	observability.RecordClients(1)
}

func (c *Controller) untrack(client uuid.UUID, b *Board) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.boards[client]
	if !ok {
		return
	}
	if _, attached := set[b]; !attached {
		return
	}
	delete(set, b)
	if len(set) == 0 {
		delete(c.boards, client)
	}
	observability.RecordClients(-1)
}

func (c *Controller) deliver(client uuid.UUID, packets [][]byte) error {
	if len(packets) == 0 {
		return nil
	}
	err := c.transport.Send(client, packets)
	observability.RecordSend(err == nil)
	if err != nil {
		c.logger.Warn().Err(err).Str("client", client.String()).Int("packets", len(packets)).Msg("scoreboard send failed")
	}
	return err
}
