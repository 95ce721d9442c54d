package protocol

import (
	"fmt"
	"sort"
)

// Resolver looks up the numeric packet identifier of a kind in the host's
// identifier table for the running version.
type Resolver interface {
	Resolve(kind Kind) (int32, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(kind Kind) (int32, error)

func (f ResolverFunc) Resolve(kind Kind) (int32, error) { return f(kind) }

// Registry maps message kinds to the identifiers of one version. It is
// read-only after construction.
type Registry struct {
	version Version
	ids     [kindCount]int32
	known   [kindCount]bool
}

// NewRegistry resolves every kind that exists on v. Any failure is fatal:
// without identifiers nothing can be sent.
func NewRegistry(v Version, resolver Resolver) (*Registry, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: unsupported version %s", ErrConstruction, v)
	}
	if resolver == nil {
		return nil, fmt.Errorf("%w: nil identifier resolver", ErrConstruction)
	}
	r := &Registry{version: v}
	for _, kind := range KindsFor(v) {
		id, err := resolver.Resolve(kind)
		if err != nil {
			return nil, fmt.Errorf("%w: resolve %s for %s: %v", ErrConstruction, kind, v, err)
		}
		if id < 0 || id > 0xFF {
			return nil, fmt.Errorf("%w: %s id %d does not fit one byte", ErrConstruction, kind, id)
		}
		r.ids[kind] = id
		r.known[kind] = true
	}
	return r, nil
}

func (r *Registry) Version() Version { return r.version }

// ID returns the identifier of kind.
func (r *Registry) ID(kind Kind) (int32, error) {
	if kind < 0 || kind >= kindCount || !r.known[kind] {
		return 0, fmt.Errorf("%w: %s has no identifier on %s", ErrUnsupported, kind, r.version)
	}
	return r.ids[kind], nil
}

// TableResolver is a static kind -> identifier table.
type TableResolver map[Kind]int32

func (t TableResolver) Resolve(kind Kind) (int32, error) {
	id, ok := t[kind]
	if !ok {
		return 0, fmt.Errorf("kind %s not registered", kind)
	}
	return id, nil
}

// Merge returns a copy of t with overrides applied on top.
func (t TableResolver) Merge(overrides map[Kind]int32) TableResolver {
	out := make(TableResolver, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// String lists entries in kind order.
func (t TableResolver) String() string {
	kinds := make([]Kind, 0, len(t))
	for k := range t {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	s := "{"
	for i, k := range kinds {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s:0x%02x", k, t[k])
	}
	return s + "}"
}
