// Package dedup collapses alpha-equivalent candidate programs. The key of an
// expression is the printed form of its normalization, with free identifiers
// marked so they cannot be confused with canonical bound names.
package dedup

import (
	"regexp"
	"strings"
	"sync"

	"github.com/smasher164/synth/expr"
	"github.com/smasher164/synth/logging"
)

// canonical matches every name the normalizer can hand out.
var canonical = regexp.MustCompile(`^[a-z][0-9]*$`)

// Key returns the canonical deduplication key of e. Two expressions share a
// key exactly when they are alpha-equivalent.
func Key(e expr.Expr) string {
	return expr.String(expr.RenameFree(expr.Normalize(e), escapeFree))
}

// escapeFree appends a quote to free names that look canonical and to names
// already ending in one, keeping the mapping injective and disjoint from the
// names Normalize binds.
func escapeFree(name string) string {
	if canonical.MatchString(name) || strings.HasSuffix(name, "'") {
		return name + "'"
	}
	return name
}

// Entry is the first expression seen for a key.
type Entry struct {
	Key  string
	Expr expr.Expr
	Size int
}

type Option func(*Set)

func WithLogger(l logging.Logger) Option {
	return func(s *Set) {
		s.log = l
	}
}

// Set is safe for concurrent use.
type Set struct {
	mu      sync.Mutex
	index   map[string]int
	entries []Entry
	dropped int
	log     logging.Logger
}

func New(opts ...Option) *Set {
	s := &Set{index: make(map[string]int), log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add records e unless an alpha-equivalent expression is already present.
// It returns the entry stored under e's key and whether e was new.
func (s *Set) Add(e expr.Expr) (Entry, bool) {
	key := Key(e)
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[key]; ok {
		s.dropped++
		s.log.Debug("duplicate candidate", "key", key, "first", s.entries[i].Expr.String())
		return s.entries[i], false
	}
	ent := Entry{Key: key, Expr: e, Size: expr.Size(e)}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, ent)
	s.log.Debug("new candidate", "key", key, "size", ent.Size)
	return ent, true
}

func (s *Set) Contains(e expr.Expr) bool {
	key := Key(e)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[key]
	return ok
}

func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Dropped counts Add calls that found an existing key.
func (s *Set) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Entries returns a copy of the entries in insertion order.
func (s *Set) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}
