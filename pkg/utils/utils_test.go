package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatedReference(t *testing.T) {
	at := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	ref := DatedReference("INV", at)

	assert.True(t, strings.HasPrefix(ref, "INV-20240131-"))
	assert.Len(t, ref, len("INV-20240131-0000"))
}

func TestMillisReference(t *testing.T) {
	at := time.UnixMilli(1706659200123)
	assert.Equal(t, "CASH-1706659200123", MillisReference("CASH", at))
}

func TestSequentialID(t *testing.T) {
	assert.Equal(t, "C0005", SequentialID("C", 5, 4))
}

func TestFormatRupiahKeepsDigits(t *testing.T) {
	out := FormatRupiah(decimal.NewFromInt(56000))
	assert.True(t, strings.HasPrefix(out, "Rp "))
	assert.Contains(t, out, "56")
	assert.Contains(t, out, "000")

	assert.True(t, strings.HasPrefix(FormatRupiah(decimal.NewFromInt(-100)), "-Rp "))
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "retail-pos", time.Hour)
	token, expiresAt, err := m.GenerateToken("user-002", "kasir01", "Siti Sarah", "Kasir")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "kasir01", claims.Username)
	assert.Equal(t, "Siti Sarah", claims.FullName)
	assert.Equal(t, "Kasir", claims.Role)

	_, err = NewJWTManager("other", "retail-pos", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}
