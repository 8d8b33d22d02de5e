package persistence

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/ftracker/internal/domain"
)

func TestPageTokenRoundTrip(t *testing.T) {
	c := &domain.Cursor{RecordedAt: time.Date(2025, time.October, 27, 20, 0, 0, 123456000, time.UTC), ID: "sum-1"}

	token := EncodePageToken(c)
	require.NotContains(t, token, "=")

	decoded, err := DecodePageToken(token)
	require.NoError(t, err)
	require.True(t, c.RecordedAt.Equal(decoded.RecordedAt))
	require.Equal(t, time.UTC, decoded.RecordedAt.Location())
	require.Equal(t, "sum-1", decoded.ID)
}

func TestEmptyPageToken(t *testing.T) {
	require.Equal(t, "", EncodePageToken(nil))

	c, err := DecodePageToken("  ")
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestDecodePageTokenRejectsGarbage(t *testing.T) {
	encode := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	cases := map[string]string{
		"not base64":    "%%%",
		"not json":      encode("2025-10-27T20:00:00Z|sum-1"),
		"missing id":    encode(`{"r":1761595200000000000}`),
		"missing time":  encode(`{"s":"sum-1"}`),
		"unknown field": encode(`{"r":1761595200000000000,"s":"sum-1","x":1}`),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePageToken(token)
			require.ErrorIs(t, err, ErrInvalidPageToken)
		})
	}
}
