// Package transport is the boundary between the scoreboard layer and the
// host's connection handling.
package transport

import (
	"bytes"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Transport delivers encoded packets to one client, in order. Each packet is
// [identifier byte][payload].
type Transport interface {
	Send(client uuid.UUID, packets [][]byte) error
}

// Func adapts a function to Transport.
type Func func(client uuid.UUID, packets [][]byte) error

func (f Func) Send(client uuid.UUID, packets [][]byte) error { return f(client, packets) }

// Delivery is one packet seen by a Recorder.
type Delivery struct {
	Client uuid.UUID
	Packet []byte
}

// Recorder captures every packet it is asked to send. Failures can be
// injected per client.
type Recorder struct {
	mu       sync.RWMutex
	log      []Delivery
	failures map[uuid.UUID]error
}

func NewRecorder() *Recorder {
	return &Recorder{failures: make(map[uuid.UUID]error)}
}

func (r *Recorder) Send(client uuid.UUID, packets [][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failures[client]; ok {
		return err
	}
	for _, pkt := range packets {
		r.log = append(r.log, Delivery{Client: client, Packet: bytes.Clone(pkt)})
	}
	return nil
}

// Fail makes later sends to client return err; nil clears it.
func (r *Recorder) Fail(client uuid.UUID, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.failures, client)
		return
	}
	r.failures[client] = err
}

// Packets returns the packets delivered to client, oldest first.
func (r *Recorder) Packets(client uuid.UUID) [][]byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out [][]byte
	for _, d := range r.log {
		if d.Client == client {
			out = append(out, d.Packet)
		}
	}
	return out
}

// Deliveries returns every delivery in send order.
func (r *Recorder) Deliveries() []Delivery {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Delivery, len(r.log))
	copy(out, r.log)
	return out
}

// Clients lists clients that received at least one packet, sorted.
func (r *Recorder) Clients() []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[uuid.UUID]struct{})
	for _, d := range r.log {
		seen[d.Client] = struct{}{}
	}
	out := make([]uuid.UUID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Reset drops captured packets. Injected failures stay.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = nil
}
