package rules

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFood(t *testing.T) {
	f := NewFood(&fixedSource{})
	require.Equal(t, Cell{15, 10}, f.Position())
}

func TestFood_RelocateBounds(t *testing.T) {
	g := Grid{Width: 12, Height: 7}
	f := NewFood(rand.New(rand.NewSource(1)))

	for i := 0; i < 1000; i++ {
		f.Relocate(g)
		p := f.Position()
		require.True(t, p.Col >= 1 && p.Col <= g.Width-2, "col out of range: %s", p)
		require.True(t, p.Row >= 1 && p.Row <= g.Height-2, "row out of range: %s", p)
	}
}

func TestFood_RelocateExtremes(t *testing.T) {
	g := Grid{Width: 12, Height: 7}

	f := NewFood(&fixedSource{values: []int{0, 0}})
	f.Relocate(g)
	require.Equal(t, Cell{1, 1}, f.Position())

	f = NewFood(&fixedSource{values: []int{9, 4}})
	f.Relocate(g)
	require.Equal(t, Cell{10, 5}, f.Position())
}

func TestFood_RelocateIgnoresSnake(t *testing.T) {
	g := Grid{Width: 40, Height: 30}
	s := NewSnake()
	// (6,5) is a body segment; relocation doesn't avoid it.
	f := NewFood(&fixedSource{values: []int{5, 4}})
	f.Relocate(g)
	require.Equal(t, Cell{6, 5}, f.Position())
	require.Equal(t, DeathCauseSelfCollision, s.Collision(g, f.Position()))
}
