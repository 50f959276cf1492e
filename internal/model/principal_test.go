package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipal_MapRoundtrip(t *testing.T) {
	claims := map[string]any{"email": "a@x.com", "name": "Ann", "age": float64(31)}

	p, err := PrincipalFromMap(claims)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", p.Email)
	assert.Equal(t, map[string]any{"name": "Ann", "age": float64(31)}, p.Claims)

	assert.Equal(t, claims, p.AsMap())
}

func TestPrincipal_NoExtraClaims(t *testing.T) {
	p, err := PrincipalFromMap(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)
	assert.Nil(t, p.Claims)
}

func TestPrincipal_EmailNotString(t *testing.T) {
	_, err := PrincipalFromMap(map[string]any{"email": float64(42)})
	assert.Error(t, err)
}

func TestPrincipal_ReservedClaim(t *testing.T) {
	_, ok := Principal{Email: "a@x.com", Claims: map[string]any{"role": "x"}}.ReservedClaim()
	assert.False(t, ok)

	name, ok := Principal{Email: "a@x.com", Claims: map[string]any{"exp": 1}}.ReservedClaim()
	assert.True(t, ok)
	assert.Equal(t, "exp", name)
}
