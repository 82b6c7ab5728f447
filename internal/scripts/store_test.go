package scripts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raikerian/go-adstudio/internal/scripts"
)

func TestStore(t *testing.T) {
	store, err := scripts.NewStore(2)
	require.NoError(t, err)

	_, _, err = store.Lookup("u1", 1)
	assert.ErrorIs(t, err, scripts.ErrNoSession)

	store.Put("u1", &scripts.Session{
		Project:   bakery,
		Scripts:   []scripts.Script{{Title: "A", Text: "a"}, {Title: "B", Text: "b"}},
		CreatedAt: time.Now(),
	})

	p, s, err := store.Lookup("u1", 2)
	require.NoError(t, err)
	assert.Equal(t, "B", s.Title)
	assert.Equal(t, "La Espiga", p.DisplayName())

	for _, n := range []int{0, 3} {
		_, _, err = store.Lookup("u1", n)
		assert.ErrorIs(t, err, scripts.ErrScriptIndex)
	}

	store.Put("u2", &scripts.Session{})
	store.Put("u3", &scripts.Session{})
	_, err = store.Session("u1")
	assert.ErrorIs(t, err, scripts.ErrNoSession, "least recently used user is evicted")
	assert.Equal(t, 2, store.Len())
}
