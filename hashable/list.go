package hashable

import (
	"sync"

	"github.com/goliatone/go-pixel-cache/hash"
)

// List wraps an ordered sequence whose elements may be array-bearing, dicts,
// lists or scalars. The digest is order-sensitive: reordering elements
// changes it.
type List struct {
	items []any

	once   sync.Once
	digest hash.Digest
	err    error
}

// NewList copies the given elements into a new list.
func NewList(items ...any) *List {
	copied := make([]any, len(items))
	copy(copied, items)
	return &List{items: copied}
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.items)
}

// At returns the i-th element.
func (l *List) At(i int) any {
	return l.items[i]
}

// Items returns a copy of the elements in order.
func (l *List) Items() []any {
	out := make([]any, len(l.items))
	copy(out, l.items)
	return out
}

// Digest returns the memoized, order-sensitive content digest.
func (l *List) Digest() (hash.Digest, error) {
	l.once.Do(func() {
		l.digest, l.err = defaultHasher.Hash(l.items)
	})
	return l.digest, l.err
}

// Equal reports digest equality.
func (l *List) Equal(other *List) bool {
	if other == nil {
		return false
	}
	a, err := l.Digest()
	if err != nil {
		return false
	}
	b, err := other.Digest()
	if err != nil {
		return false
	}
	return a == b
}
