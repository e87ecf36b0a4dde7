package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WriteThenReadAll(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, []string{dir})

	require.NoError(t, s.Write("example.com/shop/model", "CatalogFactory", []byte(`{"name":"CatalogFactory"}`)))

	artifacts, err := s.ReadAll()
	require.NoError(t, err)
	require.Len(t, artifacts, 1)

	want := filepath.Join(dir, "example.com", "shop", "model", "CatalogFactory"+Suffix)
	assert.Equal(t, want, artifacts[0].Path)
	assert.Equal(t, `{"name":"CatalogFactory"}`, string(artifacts[0].Payload))
}

func TestStore_EnumerationOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	// Names chosen so lexical order within a root differs from write order,
	// and the zulu entry in the first root still precedes everything in the
	// second root.
	w1 := New(first, nil)
	require.NoError(t, w1.Write("pkg", "zulu", []byte("z1")))
	require.NoError(t, w1.Write("pkg", "alpha", []byte("a1")))
	w2 := New(second, nil)
	require.NoError(t, w2.Write("pkg", "alpha", []byte("a2")))

	artifacts, err := New("", []string{first, second}).ReadAll()
	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	assert.Equal(t, "a1", string(artifacts[0].Payload))
	assert.Equal(t, "z1", string(artifacts[1].Payload))
	assert.Equal(t, "a2", string(artifacts[2].Payload))
}

func TestStore_MissingDirSkipped(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, []string{filepath.Join(dir, "never-written"), dir})

	require.NoError(t, s.Write("pkg", "only", []byte("ok")))

	artifacts, err := s.ReadAll()
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "ok", string(artifacts[0].Payload))
}

func TestStore_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	s := New(dir, []string{dir})
	require.NoError(t, s.Write("pkg", "kept", []byte("keep me")))

	artifacts, err := s.ReadAll()
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "keep me", string(artifacts[0].Payload))
}

func TestStore_EmptyPath(t *testing.T) {
	artifacts, err := New(t.TempDir(), nil).ReadAll()
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}
