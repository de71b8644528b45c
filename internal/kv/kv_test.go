package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sant0-9/companion/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	file, err := NewFile(filepath.Join(dir, "files"), 0)
	require.NoError(t, err)

	db, err := NewSQLite(filepath.Join(dir, "kv.db"))
	require.NoError(t, err)

	stores := map[string]Store{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": db,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "mode-tutor-history", []byte(`[1,2,3]`)))
			got, err := s.Get(ctx, "mode-tutor-history")
			require.NoError(t, err)
			assert.Equal(t, `[1,2,3]`, string(got))

			require.NoError(t, s.Set(ctx, "mode-tutor-history", []byte(`[4]`)))
			got, err = s.Get(ctx, "mode-tutor-history")
			require.NoError(t, err)
			assert.Equal(t, `[4]`, string(got))

			require.NoError(t, s.Delete(ctx, "mode-tutor-history"))
			_, err = s.Get(ctx, "mode-tutor-history")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Delete(ctx, "never-set"), "deleting a missing key is not an error")
		})
	}
}

func TestKeysWithSeparators(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			keys := []string{"a/b", "../escape", "with space", "stickers-custom"}
			for i, k := range keys {
				require.NoError(t, s.Set(ctx, k, []byte{byte('a' + i)}))
			}
			for i, k := range keys {
				got, err := s.Get(ctx, k)
				require.NoError(t, err, k)
				assert.Equal(t, []byte{byte('a' + i)}, got)
			}
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	v := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", v))
	v[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestFileQuota(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f, err := NewFile(dir, 4)
	require.NoError(t, err)

	require.NoError(t, f.Set(ctx, "small", []byte("1234")))

	err = f.Set(ctx, "big", []byte("12345"))
	assert.True(t, errors.Is(err, ErrQuotaExceeded))

	_, err = f.Get(ctx, "big")
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "a rejected write leaves no temp files behind")
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "kv.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, s.Set(ctx, "k", []byte("v")))
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StoreConfig
		want    any
		wantErr bool
	}{
		{name: "memory", cfg: config.StoreConfig{Backend: "memory"}, want: &Memory{}},
		{name: "file", cfg: config.StoreConfig{Backend: "file", Path: filepath.Join(dir, "f")}, want: &File{}},
		{name: "sqlite", cfg: config.StoreConfig{Backend: "sqlite", Path: filepath.Join(dir, "s.db")}, want: &SQLite{}},
		{name: "unknown", cfg: config.StoreConfig{Backend: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
		})
	}
}
