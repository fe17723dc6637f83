package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadMissingFileIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), ".env"))

	values, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, values)

	_, ok, err := store.Get(KeyDomain)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreSetRoundTripsInEitherOrder(t *testing.T) {
	tests := []struct {
		name  string
		order [][2]string
	}{
		{name: "domain first", order: [][2]string{{KeyDomain, "foo"}, {KeyAPIKey, "bar"}}},
		{name: "api key first", order: [][2]string{{KeyAPIKey, "bar"}, {KeyDomain, "foo"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			require.NoError(t, os.WriteFile(path, []byte("OTHER_KEY=keep me\n"), 0o644))

			store := NewStore(path)
			for _, kv := range tt.order {
				require.NoError(t, store.Set(kv[0], kv[1]))
			}

			reloaded := NewStore(path)
			values, err := reloaded.Load()
			require.NoError(t, err)
			assert.Equal(t, "foo", values[KeyDomain])
			assert.Equal(t, "bar", values[KeyAPIKey])
			assert.Equal(t, "keep me", values["OTHER_KEY"])
		})
	}
}

func TestStoreSetReplacesExistingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	store := NewStore(path)

	require.NoError(t, store.Set(KeyDomain, "first"))
	require.NoError(t, store.Set(KeyDomain, "second"))

	value, ok, err := store.Get(KeyDomain)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestStoreSetEmptyValueUnsets(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	store := NewStore(path)

	require.NoError(t, store.Set(KeyDomain, "node"))
	require.NoError(t, store.Set(KeyDomain, ""))

	values, err := store.Load()
	require.NoError(t, err)
	value, present := values[KeyDomain]
	assert.True(t, present)
	assert.Empty(t, value)

	_, ok, err := store.Get(KeyDomain)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreSetRejectsEmptyKey(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), ".env"))
	assert.Error(t, store.Set("  ", "value"))
}

func TestStoreSetLeavesOtherLinesUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	original := "# my comment\nPIN=007\nHOME_DIR=/x\nDERIVED=${HOME_DIR}/y\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	store := NewStore(path)
	require.NoError(t, store.Set(KeyAPIKey, "sk$abc"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original+`GAIA_API_KEY="sk\$abc"`+"\n", string(data))

	values, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk$abc", values[KeyAPIKey])
	assert.Equal(t, "007", values["PIN"])
	assert.Equal(t, "/x/y", values["DERIVED"])
}

func TestStoreSetReplacesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	original := "A=1\nexport DOMAIN=old\nB=2\nDOMAIN=dup"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	require.NoError(t, NewStore(path).Set(KeyDomain, "007"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A=1\nDOMAIN=\"007\"\nB=2\n", string(data))

	value, _, err := NewStore(path).Get(KeyDomain)
	require.NoError(t, err)
	assert.Equal(t, "007", value)
}

func TestStoreSetDoesNotMatchKeyPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOMAIN_ALIAS=keep\n"), 0o644))

	store := NewStore(path)
	require.NoError(t, store.Set(KeyDomain, "node"))

	values, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "keep", values["DOMAIN_ALIAS"])
	assert.Equal(t, "node", values[KeyDomain])
}

func TestStoreSetRoundTripsSpecialCharacters(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), ".env"))

	for _, value := range []string{`a"b`, `back\slash`, "${HOME}", "with space # not a comment"} {
		require.NoError(t, store.Set(KeyAPIKey, value))
		got, _, err := store.Get(KeyAPIKey)
		require.NoError(t, err)
		assert.Equal(t, value, got)
	}
}
