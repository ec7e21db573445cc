package hashable

import (
	"sort"
	"sync"

	"github.com/goliatone/go-pixel-cache/hash"
)

// Pair is a single key/value entry for Dict construction.
type Pair struct {
	Key   string
	Value any
}

// Dict wraps a string-keyed mapping whose values may themselves be
// array-bearing, dicts, lists or scalars. Iteration preserves insertion
// order; the digest is invariant to it, so two dicts holding the same pairs
// in different order hash identically.
type Dict struct {
	keys   []string
	values map[string]any

	once   sync.Once
	digest hash.Digest
	err    error
}

// NewDict builds a dict from ordered pairs. A repeated key keeps its first
// position and takes the last value.
func NewDict(pairs ...Pair) *Dict {
	d := &Dict{values: make(map[string]any, len(pairs))}
	for _, p := range pairs {
		if _, seen := d.values[p.Key]; !seen {
			d.keys = append(d.keys, p.Key)
		}
		d.values[p.Key] = p.Value
	}
	return d
}

// FromMap builds a dict from a Go map. Go maps have no insertion order, so
// iteration order is sorted keys.
func FromMap(m map[string]any) *Dict {
	pairs := make([]Pair, 0, len(m))
	for k := range m {
		pairs = append(pairs, Pair{Key: k})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	for i := range pairs {
		pairs[i].Value = m[pairs[i].Key]
	}
	return NewDict(pairs...)
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Keys returns the keys in insertion order. The slice is a copy.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.values)
}

// Digest returns the memoized, insertion-order-invariant content digest.
func (d *Dict) Digest() (hash.Digest, error) {
	d.once.Do(func() {
		d.digest, d.err = defaultHasher.Hash(d.values)
	})
	return d.digest, d.err
}

// Equal reports digest equality.
func (d *Dict) Equal(other *Dict) bool {
	if other == nil {
		return false
	}
	a, err := d.Digest()
	if err != nil {
		return false
	}
	b, err := other.Digest()
	if err != nil {
		return false
	}
	return a == b
}
