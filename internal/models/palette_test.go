package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvatarColorForIsStable(t *testing.T) {
	id := "user_a7f0471fb9c64a00af7b3029234cff99"
	first := AvatarColorFor(id)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, AvatarColorFor(id))
	}
}

func TestAvatarColorForReturnsPaletteEntry(t *testing.T) {
	ids := []string{
		"user_a7f0471fb9c64a00af7b3029234cff99",
		"space_ac4e67b98b34b44c4a39466e93e",
		"x",
		"",
	}
	for _, id := range ids {
		c := AvatarColorFor(id)
		assert.Contains(t, DefaultAvatarColors, c, "id %q", id)
	}
}

func TestAvatarColorDistinguishesIDs(t *testing.T) {
	// Not a guarantee for arbitrary ids; these two differ in their
	// trailing runes, which is what the hash reads.
	a := AvatarColorFor("user_00000000000000000000000000000001")
	b := AvatarColorFor("user_00000000000000000000000000000002")
	assert.NotEqual(t, a, b)
}
