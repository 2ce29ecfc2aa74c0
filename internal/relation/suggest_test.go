package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	roster := []string{"Castle in the Sky", "Porco Rosso", "Princess Mononoke"}

	s, ok := Suggest("Castle In The Sky ", roster)
	assert.True(t, ok)
	assert.Equal(t, "Castle in the Sky", s.Title)
	assert.Greater(t, s.Score, 0.9)
}

func TestSuggest_NoCloseMatch(t *testing.T) {
	_, ok := Suggest("zzzz", []string{"Porco Rosso"})
	assert.False(t, ok)

	_, ok = Suggest("Porco Rosso", nil)
	assert.False(t, ok)
}
