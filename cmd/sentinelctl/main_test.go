package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datasentinel/internal/watermark/codec"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeMatchesCodec(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c, err := codec.New("cli-secret", 0)
	require.NoError(t, err)

	out, err := run(t, "encode", "--secret", "cli-secret", "--partner", "partner1", "--user", "user1", "--at", at.Format(time.RFC3339))
	require.NoError(t, err)
	assert.Equal(t, c.Encode("partner1", "user1", at), strings.TrimSpace(out))
}

func TestEncodeDropsSubMicrosecondPrecision(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 987654321, time.UTC)
	c, err := codec.New("cli-secret", 0)
	require.NoError(t, err)

	out, err := run(t, "encode", "--secret", "cli-secret", "--partner", "partner1", "--user", "user1", "--at", at.Format(time.RFC3339Nano))
	require.NoError(t, err)
	assert.Equal(t, c.Encode("partner1", "user1", at.Truncate(time.Microsecond)), strings.TrimSpace(out))
}

func TestEncodeRequiresPartnerAndUser(t *testing.T) {
	_, err := run(t, "encode", "--secret", "s", "--user", "user1")
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	t.Run("json output carries anchor hashes", func(t *testing.T) {
		out, err := run(t, "generate", "--type", "id", "--count", "3", "--seed", "7", "--json")
		require.NoError(t, err)

		var values []generateOutput
		require.NoError(t, json.Unmarshal([]byte(out), &values))
		require.Len(t, values, 3)
		for _, v := range values {
			assert.True(t, strings.HasPrefix(v.Value, "HT-"))
			assert.True(t, strings.HasPrefix(v.Hash, "0x"))
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := run(t, "generate", "--type", "ssn")
		assert.ErrorContains(t, err, "unknown token type")
	})

	t.Run("count out of range", func(t *testing.T) {
		_, err := run(t, "generate", "--count", "0")
		assert.Error(t, err)
	})
}

func TestHash(t *testing.T) {
	out, err := run(t, "hash", "hello")
	require.NoError(t, err)
	assert.Equal(t, "0x1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8", strings.TrimSpace(out))
}
