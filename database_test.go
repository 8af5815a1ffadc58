package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *database {
	t.Helper()

	db, err := newDatabase(filepath.Join(t.TempDir(), "songbook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDatabase_SongLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	song := &Song{Title: "Amazing Grace", Artist: "Traditional", TagIDs: []string{"a", "b"}}
	require.NoError(t, db.AddSong(ctx, song))
	assert.Len(t, song.ID, documentIDLength)
	assert.False(t, song.CreatedAt.IsZero())
	assert.Equal(t, song.CreatedAt, song.UpdatedAt)

	got, err := db.GetSong(ctx, song.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amazing Grace", got.Title)
	assert.Equal(t, []string{"a", "b"}, got.TagIDs)
	assert.True(t, song.CreatedAt.Equal(got.CreatedAt))

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, db.UpdateSong(ctx, &Song{ID: song.ID, Title: "Grace", TagIDs: []string{}}))

	got, err = db.GetSong(ctx, song.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.Title)
	assert.Empty(t, got.Artist)
	assert.Empty(t, got.TagIDs)
	assert.True(t, song.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	require.NoError(t, db.DeleteSong(ctx, song.ID))
	_, err = db.GetSong(ctx, song.ID)
	assert.ErrorIs(t, err, errNoDocument)
}

func TestDatabase_UpdateMissingSong(t *testing.T) {
	db := newTestDatabase(t)

	err := db.UpdateSong(context.Background(), &Song{ID: "missing", Title: "x"})
	assert.ErrorIs(t, err, errNoDocument)

	songs, err := db.AllSongs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestDatabase_DeleteMissingIsNoop(t *testing.T) {
	db := newTestDatabase(t)

	assert.NoError(t, db.DeleteSong(context.Background(), "missing"))
	assert.NoError(t, db.DeleteTag(context.Background(), "missing"))
}

func TestDatabase_TagsByName(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	var worship []*Tag
	for _, name := range []string{"Worship", "Advent", "Worship", "Christmas"} {
		tag := &Tag{Name: name, Color: "c"}
		require.NoError(t, db.AddTag(ctx, tag))
		if name == "Worship" {
			worship = append(worship, tag)
		}
	}

	tags, err := db.TagsByName(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 4)

	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	assert.Equal(t, []string{"Advent", "Christmas", "Worship", "Worship"}, names)
	assert.Equal(t, worship[0].ID, tags[2].ID, "equal names keep insertion order")
	assert.Equal(t, worship[1].ID, tags[3].ID)
}
