package hashable_test

import (
	"testing"

	"github.com/goliatone/go-pixel-cache/hash"
	"github.com/goliatone/go-pixel-cache/hashable"
	"github.com/goliatone/go-pixel-cache/pkg/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDict_PreservesInsertionOrder(t *testing.T) {
	d := hashable.NewDict(
		hashable.Pair{Key: "zebra", Value: 1},
		hashable.Pair{Key: "apple", Value: 2},
		hashable.Pair{Key: "mango", Value: 3},
	)

	assert.Equal(t, []string{"zebra", "apple", "mango"}, d.Keys())
	assert.Equal(t, 3, d.Len())
}

func TestNewDict_RepeatedKeyKeepsFirstPositionLastValue(t *testing.T) {
	d := hashable.NewDict(
		hashable.Pair{Key: "a", Value: 1},
		hashable.Pair{Key: "b", Value: 2},
		hashable.Pair{Key: "a", Value: 99},
	)

	assert.Equal(t, []string{"a", "b"}, d.Keys())
	v, ok := d.Get("a")
	require.True(t, ok)
	assert.Equal(t, 99, v)
}

func TestDict_DigestIgnoresInsertionOrder(t *testing.T) {
	forward := hashable.NewDict(
		hashable.Pair{Key: "a", Value: 1},
		hashable.Pair{Key: "b", Value: 2},
	)
	reversed := hashable.NewDict(
		hashable.Pair{Key: "b", Value: 2},
		hashable.Pair{Key: "a", Value: 1},
	)

	assert.True(t, forward.Equal(reversed))
	assert.NotEqual(t, forward.Keys(), reversed.Keys())
}

func TestDict_DigestSeesValueChange(t *testing.T) {
	a := hashable.NewDict(hashable.Pair{Key: "score", Value: 0.5})
	b := hashable.NewDict(hashable.Pair{Key: "score", Value: 0.6})

	assert.False(t, a.Equal(b))
}

func TestDict_DigestSeesKeyChange(t *testing.T) {
	a := hashable.NewDict(hashable.Pair{Key: "left", Value: 1})
	b := hashable.NewDict(hashable.Pair{Key: "right", Value: 1})

	assert.False(t, a.Equal(b))
}

func TestFromMap_MatchesPairConstruction(t *testing.T) {
	m := map[string]any{"x": 10, "y": 20, "z": 30}

	fromMap := hashable.FromMap(m)
	fromPairs := hashable.NewDict(
		hashable.Pair{Key: "z", Value: 30},
		hashable.Pair{Key: "x", Value: 10},
		hashable.Pair{Key: "y", Value: 20},
	)

	assert.Equal(t, []string{"x", "y", "z"}, fromMap.Keys())
	assert.True(t, fromMap.Equal(fromPairs))
}

func TestDict_NestedContainers(t *testing.T) {
	inner := hashable.NewList(1, 2, 3)
	a := hashable.NewDict(hashable.Pair{Key: "items", Value: inner})
	b := hashable.NewDict(hashable.Pair{Key: "items", Value: hashable.NewList(1, 2, 3)})
	c := hashable.NewDict(hashable.Pair{Key: "items", Value: hashable.NewList(3, 2, 1)})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestDict_UnsupportedValueSurfacesError(t *testing.T) {
	d := hashable.NewDict(hashable.Pair{Key: "ch", Value: make(chan int)})

	_, err := d.Digest()
	var uerr *hash.UnsupportedPayloadTypeError
	require.ErrorAs(t, err, &uerr)

	// matching Digest() semantics, Equal degrades to false on error
	assert.False(t, d.Equal(d))
}

func TestDict_Fixtures(t *testing.T) {
	var doc struct {
		Scenarios []struct {
			Name  string  `json:"name"`
			Pairs [][]any `json:"pairs"`
		} `json:"scenarios"`
	}
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("dict_scenarios.json"), &doc)
	require.NotEmpty(t, doc.Scenarios)

	for _, sc := range doc.Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			pairs := make([]hashable.Pair, 0, len(sc.Pairs))
			for _, p := range sc.Pairs {
				require.Len(t, p, 2)
				key, ok := p[0].(string)
				require.True(t, ok)
				pairs = append(pairs, hashable.Pair{Key: key, Value: p[1]})
			}

			forward := hashable.NewDict(pairs...)

			reversed := make([]hashable.Pair, len(pairs))
			for i, p := range pairs {
				reversed[len(pairs)-1-i] = p
			}
			permuted := hashable.NewDict(reversed...)

			assert.Equal(t, len(pairs), forward.Len())
			assert.True(t, forward.Equal(permuted))
		})
	}
}
