//go:build unit

package notice

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("secret", time.Minute)

	for _, n := range []Notice{
		Success("予約を作成しました。"),
		Error("その時間帯はすでに予約があります。別の時間を選んでください。"),
	} {
		token, err := codec.Encode(n)
		require.NoError(t, err)

		got, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestCodec_Rejects(t *testing.T) {
	codec := NewCodec("secret", time.Minute)
	token, err := codec.Encode(Error("boom"))
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		_, err := NewCodec("other", time.Minute).Decode(token)
		assert.ErrorIs(t, err, ErrInvalidNotice)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		parts[1] = parts[1][:len(parts[1])-2] + "AA"
		_, err := codec.Decode(strings.Join(parts, "."))
		assert.ErrorIs(t, err, ErrInvalidNotice)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := codec.Decode("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidNotice)
	})

	t.Run("expired", func(t *testing.T) {
		base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		c := NewCodec("secret", time.Minute)
		c.now = func() time.Time { return base }
		old, err := c.Encode(Success("ok"))
		require.NoError(t, err)

		c.now = func() time.Time { return base.Add(2 * time.Minute) }
		_, err = c.Decode(old)
		assert.ErrorIs(t, err, ErrExpiredNotice)
	})
}
