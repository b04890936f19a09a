package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtraClients(t *testing.T) {
	_, _, existing := BuildStaticShopEntities()
	dg := NewDataGenerator(DefaultShopSeed, quietLogger())

	clients, err := dg.ExtraClients(30, existing)
	require.NoError(t, err)
	require.Len(t, clients, 30)

	emails := make(map[string]bool)
	for _, c := range existing {
		emails[c.Email] = true
	}
	for _, c := range clients {
		assert.False(t, emails[c.Email], "email %s reused", c.Email)
		emails[c.Email] = true

		assert.Equal(t, strings.ToLower(c.Email), c.Email)
		assert.NotEmpty(t, c.Name)
		assert.LessOrEqual(t, len([]rune(c.Name)), 120)
		assert.LessOrEqual(t, len([]rune(c.PostalCode)), 20)
	}
}

func TestExtraClientsDeterministic(t *testing.T) {
	a, err := NewDataGenerator(9, quietLogger()).ExtraClients(5, nil)
	require.NoError(t, err)
	b, err := NewDataGenerator(9, quietLogger()).ExtraClients(5, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExtraClientsInvalidCount(t *testing.T) {
	dg := NewDataGenerator(1, quietLogger())

	_, err := dg.ExtraClients(-1, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	clients, err := dg.ExtraClients(0, nil)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "Sé", truncate("Sétubal", 2))
}
