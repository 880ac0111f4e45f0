// Package consistent implements a consistent hashing ring: a deterministic
// mapping from keys to a dynamic set of named members, where a membership
// change only remaps the keys adjacent to the changed member's ring
// positions instead of reshuffling the whole keyspace.
//
// Each member is expanded into a configurable number of virtual positions
// (replicas) on a 64-bit hash ring to smooth load distribution. Ownership of
// a key is determined by finding the next position on the ring at or after
// the key's hash, wrapping around at the end of the hash space.
package consistent

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultReplicas is the number of ring positions each member gets when
// Config.Replicas is left unset.
const DefaultReplicas = 20

var (
	// ErrEmptyRing is returned by Get and Lookup when the ring has no
	// members.
	ErrEmptyRing = errors.New("ring has no members")

	// ErrInvalidMember is returned by Add when the member name is empty.
	ErrInvalidMember = errors.New("member name must not be empty")
)

// Config configures a Ring.
type Config struct {
	// Number of ring positions per member. Defaults to DefaultReplicas.
	// Higher values smooth load distribution at the cost of memory and
	// slower membership changes; distribution, not correctness, is
	// affected by the choice.
	Replicas int

	// Optional logger to use.
	Log log.Logger
}

func (c *Config) validate() error {
	if c.Replicas < 0 {
		return fmt.Errorf("replicas must not be negative, got %d", c.Replicas)
	}
	if c.Replicas == 0 {
		c.Replicas = DefaultReplicas
	}
	if c.Log == nil {
		c.Log = log.NewNopLogger()
	}
	return nil
}

// A Ring maps keys to members using consistent hashing.
//
// Members are opaque, unique, non-empty names. Keys are opaque; the empty
// key is legal and hashes like any other. If two members hash to the same
// ring position, both positions are kept and ordered lexicographically by
// member name, and lookups landing on that position return the
// lexicographically first member. A position is never silently reassigned,
// so every member always owns exactly Config.Replicas positions.
//
// All methods are safe for concurrent use. Add and Remove appear atomic to
// concurrent lookups; a lookup never observes a partially-inserted replica
// set.
type Ring struct {
	log      log.Logger
	replicas int
	metrics  *metrics

	mut     sync.RWMutex
	members map[string]struct{}
	tokens  tokens
}

// New creates a Ring, optionally seeded with an initial set of members. An
// error is returned if the config is invalid; errors from seeding are
// aggregated and returned together.
func New(cfg Config, members ...string) (*Ring, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	r := &Ring{
		log:      cfg.Log,
		replicas: cfg.Replicas,
		metrics:  newMetrics(cfg),
		members:  make(map[string]struct{}, len(members)),
	}

	var errs *multierror.Error
	for _, m := range members {
		if err := r.Add(m); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("adding member %q: %w", m, err))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return r, nil
}

// Add registers a member, expanding it into the configured number of ring
// positions. Adding a member that is already registered is a no-op.
func (r *Ring) Add(member string) error {
	if member == "" {
		return ErrInvalidMember
	}

	r.mut.Lock()
	defer r.mut.Unlock()

	if _, registered := r.members[member]; registered {
		return nil
	}

	for i := 0; i < r.replicas; i++ {
		r.tokens = append(r.tokens, token{
			member:   member,
			position: xxhash.Sum64String(member + strconv.Itoa(i)),
		})
	}
	sort.Sort(r.tokens)
	r.members[member] = struct{}{}

	r.metrics.members.Set(float64(len(r.members)))
	r.metrics.positions.Set(float64(len(r.tokens)))
	level.Debug(r.log).Log("msg", "member added", "member", member, "positions", r.replicas)
	return nil
}

// Remove deregisters a member, deleting all of its ring positions and no
// others. Removing a member that is not registered is a no-op. Keys owned
// by the removed member resolve to their next clockwise member on the next
// lookup; keys owned by other members are unaffected.
func (r *Ring) Remove(member string) error {
	r.mut.Lock()
	defer r.mut.Unlock()

	if _, registered := r.members[member]; !registered {
		return nil
	}

	// Filtering in place preserves the sort order.
	rest := r.tokens[:0]
	for _, tok := range r.tokens {
		if tok.member != member {
			rest = append(rest, tok)
		}
	}
	r.tokens = rest
	delete(r.members, member)

	r.metrics.members.Set(float64(len(r.members)))
	r.metrics.positions.Set(float64(len(r.tokens)))
	level.Debug(r.log).Log("msg", "member removed", "member", member)
	return nil
}

// Get returns the member owning key: the owner of the first ring position
// at or after the key's hash, wrapping around to the smallest position. The
// same key against an unchanged ring always returns the same member.
//
// Get fails with ErrEmptyRing when no members are registered.
func (r *Ring) Get(key string) (string, error) {
	return r.Lookup(Key(key))
}

// Lookup is Get for callers that already hold a key in hash space, such as
// one produced by a KeyBuilder.
func (r *Ring) Lookup(key uint64) (string, error) {
	r.mut.RLock()
	defer r.mut.RUnlock()

	if len(r.tokens) == 0 {
		r.metrics.lookupsTotal.WithLabelValues("empty_ring").Inc()
		return "", ErrEmptyRing
	}

	idx := sort.Search(len(r.tokens), func(i int) bool {
		return r.tokens[i].position >= key
	})
	if idx == len(r.tokens) {
		// Wrap around if we hit the end of the list.
		idx = 0
	}

	r.metrics.lookupsTotal.WithLabelValues("success").Inc()
	return r.tokens[idx].member, nil
}

// Members returns the registered members in lexicographic order.
func (r *Ring) Members() []string {
	r.mut.RLock()
	defer r.mut.RUnlock()

	res := make([]string, 0, len(r.members))
	for m := range r.members {
		res = append(res, m)
	}
	sort.Strings(res)
	return res
}

// Metrics returns metrics for the Ring.
func (r *Ring) Metrics() prometheus.Collector { return r.metrics }
