package extract

import (
	"testing"

	"github.com/mentora-io/assetgc/internal/mediastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefSetAddIgnoresEmptyID(t *testing.T) {
	s := NewRefSet()
	s.Add(Ref{ID: "", Kind: mediastore.KindImage})
	assert.Equal(t, 0, s.Len())
}

func TestRefSetFirstAddWins(t *testing.T) {
	s := NewRefSet()
	s.Add(Ref{ID: "x", Kind: mediastore.KindVideo})
	s.Add(Ref{ID: "x", Kind: mediastore.KindImage})

	ref, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, mediastore.KindVideo, ref.Kind)
	assert.Equal(t, 1, s.Len())
}

func TestRefSetDiffByIDOnly(t *testing.T) {
	initial := NewRefSet()
	initial.Add(Ref{ID: "a", Kind: mediastore.KindImage})
	initial.Add(Ref{ID: "b", Kind: mediastore.KindVideo})
	initial.Add(Ref{ID: "c", Kind: mediastore.KindRaw})

	final := NewRefSet()
	final.Add(Ref{ID: "a", Kind: mediastore.KindImage})
	// Same ID now used under a different kind annotation; it is still live.
	final.Add(Ref{ID: "c", Kind: mediastore.KindImage})

	diff := initial.Diff(final)
	assert.Equal(t, []string{"b"}, diff.IDs())

	ref, ok := diff.Get("b")
	require.True(t, ok)
	assert.Equal(t, mediastore.KindVideo, ref.Kind)
}

func TestRefSetDiffAgainstNil(t *testing.T) {
	s := NewRefSet()
	s.Add(Ref{ID: "a", Kind: mediastore.KindImage})

	diff := s.Diff(nil)
	assert.Equal(t, []string{"a"}, diff.IDs())
}

func TestRefSetUnion(t *testing.T) {
	a := NewRefSet()
	a.Add(Ref{ID: "one", Kind: mediastore.KindImage})

	b := NewRefSet()
	b.Add(Ref{ID: "two", Kind: mediastore.KindRaw})
	b.Add(Ref{ID: "one", Kind: mediastore.KindVideo}) // duplicate, first tagging kept

	a.Union(b)
	assert.Equal(t, []string{"one", "two"}, a.IDs())

	ref, _ := a.Get("one")
	assert.Equal(t, mediastore.KindImage, ref.Kind)

	a.Union(nil)
	assert.Equal(t, 2, a.Len())
}

func TestRefSetByKind(t *testing.T) {
	s := NewRefSet()
	s.Add(Ref{ID: "img2", Kind: mediastore.KindImage})
	s.Add(Ref{ID: "img1", Kind: mediastore.KindImage})
	s.Add(Ref{ID: "vid", Kind: mediastore.KindVideo})

	groups := s.ByKind()
	assert.Equal(t, []string{"img1", "img2"}, groups[mediastore.KindImage])
	assert.Equal(t, []string{"vid"}, groups[mediastore.KindVideo])
	assert.NotContains(t, groups, mediastore.KindRaw)
}
