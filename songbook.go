package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const defaultTagColor = "bg-gray-100 text-gray-800"

// defaultTags always exist; listing tags recreates any that are missing.
var defaultTags = []Tag{
	{Name: "Joyful", Color: "bg-yellow-100 text-yellow-800"},
	{Name: "Solemn", Color: "bg-indigo-100 text-indigo-800"},
	{Name: "English", Color: "bg-blue-100 text-blue-800"},
	{Name: "Tagalog", Color: "bg-red-100 text-red-800"},
}

type documentStore interface {
	AddSong(ctx context.Context, song *Song) error
	GetSong(ctx context.Context, id string) (*Song, error)
	AllSongs(ctx context.Context) ([]*Song, error)
	UpdateSong(ctx context.Context, song *Song) error
	DeleteSong(ctx context.Context, id string) error
	AddTag(ctx context.Context, tag *Tag) error
	AllTags(ctx context.Context) ([]*Tag, error)
	TagsByName(ctx context.Context) ([]*Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

// transcriber turns a photographed lyric or chord sheet into plain text.
type transcriber interface {
	Transcribe(ctx context.Context, image []byte, mimeType string) (string, error)
}

// songbook implements the song and tag operations on top of a document
// store. A nil store or transcriber means that collaborator is not
// configured and the operations depending on it fail with a
// configuration error.
type songbook struct {
	store       documentStore
	transcriber transcriber
	validator   *requestValidator
}

func newSongbook(store documentStore, tr transcriber) *songbook {
	return &songbook{
		store:       store,
		transcriber: tr,
		validator:   newRequestValidator(),
	}
}

func (b *songbook) configured() bool {
	return b.store != nil
}

// ListSongs returns every song with resolved tags, filtered by search and
// tagID when they are non-empty, ordered by title.
func (b *songbook) ListSongs(ctx context.Context, search, tagID string) ([]*Song, error) {
	if b.store == nil {
		return nil, errStoreNotConfigured
	}

	songs, err := b.store.AllSongs(ctx)
	if err != nil {
		return nil, externalError("Failed to fetch songs", err)
	}
	tags, err := b.store.AllTags(ctx)
	if err != nil {
		return nil, externalError("Failed to fetch songs", err)
	}

	byID := indexTags(tags)
	for _, song := range songs {
		resolveTags(song, byID)
	}

	if search != "" {
		needle := strings.ToLower(search)
		songs = slices.DeleteFunc(songs, func(s *Song) bool {
			return !songMatches(s, needle)
		})
	}

	if tagID != "" {
		songs = slices.DeleteFunc(songs, func(s *Song) bool {
			return !slices.Contains(s.TagIDs, tagID)
		})
	}

	sortSongsByTitle(songs)
	if songs == nil {
		songs = []*Song{}
	}
	return songs, nil
}

func (b *songbook) GetSong(ctx context.Context, id string) (*Song, error) {
	if b.store == nil {
		return nil, errStoreNotConfigured
	}

	song, err := b.store.GetSong(ctx, id)
	if errors.Is(err, errNoDocument) {
		return nil, notFoundError("Song not found")
	} else if err != nil {
		return nil, externalError("Failed to fetch song", err)
	}

	tags, err := b.store.AllTags(ctx)
	if err != nil {
		return nil, externalError("Failed to fetch song", err)
	}

	resolveTags(song, indexTags(tags))
	return song, nil
}

// CreateSong validates in, rejects a song whose title and artist match an
// existing song ignoring case and surrounding space, and stores it.
//
// The duplicate scan and the insert are separate round trips, so two
// concurrent creates of the same song can both succeed.
func (b *songbook) CreateSong(ctx context.Context, in SongInput) (string, error) {
	if b.store == nil {
		return "", errStoreNotConfigured
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Artist = strings.TrimSpace(in.Artist)
	in.Lyrics = strings.TrimSpace(in.Lyrics)

	failures, err := b.validator.check(in)
	if err != nil {
		return "", externalError("Failed to create song", err)
	}
	if len(failures) > 0 {
		return "", missingFieldsError(failures)
	}

	existing, err := b.store.AllSongs(ctx)
	if err != nil {
		return "", externalError("Failed to create song", err)
	}

	title := strings.ToLower(in.Title)
	artist := strings.ToLower(in.Artist)
	for _, s := range existing {
		if normalize(s.Title) == title && normalize(s.Artist) == artist {
			return "", conflictError("Duplicate song detected! %q by %q already exists in the database.", in.Title, in.Artist)
		}
	}

	song := &Song{
		Title:    in.Title,
		Artist:   in.Artist,
		Lyrics:   in.Lyrics,
		Chords:   in.Chords,
		TagIDs:   in.Tags,
		VideoURL: in.VideoURL,
	}
	err = b.store.AddSong(ctx, song)
	if err != nil {
		return "", externalError("Failed to create song", err)
	}

	slog.Info("created song", "id", song.ID, "song", song.String())
	return song.ID, nil
}

// UpdateSong overwrites every writable field of the song. Fields absent
// from in become empty; nothing is validated or trimmed.
func (b *songbook) UpdateSong(ctx context.Context, id string, in SongInput) error {
	if b.store == nil {
		return errStoreNotConfigured
	}

	tagIDs := in.Tags
	if tagIDs == nil {
		tagIDs = []string{}
	}

	err := b.store.UpdateSong(ctx, &Song{
		ID:       id,
		Title:    in.Title,
		Artist:   in.Artist,
		Lyrics:   in.Lyrics,
		Chords:   in.Chords,
		TagIDs:   tagIDs,
		VideoURL: in.VideoURL,
	})
	if errors.Is(err, errNoDocument) {
		return notFoundError("Song not found")
	} else if err != nil {
		return externalError("Failed to update song", err)
	}
	return nil
}

// DeleteSong removes a song. Deleting an unknown id is not an error.
func (b *songbook) DeleteSong(ctx context.Context, id string) error {
	if b.store == nil {
		return errStoreNotConfigured
	}

	err := b.store.DeleteSong(ctx, id)
	if err != nil {
		return externalError("Failed to delete song", err)
	}
	return nil
}

// DeleteSongs removes each song in ids and returns how many ids were
// processed. It stops at the first store failure.
func (b *songbook) DeleteSongs(ctx context.Context, ids []string) (int, error) {
	if b.store == nil {
		return 0, errStoreNotConfigured
	}
	if len(ids) == 0 {
		return 0, validationError("No songs selected")
	}

	for i, id := range ids {
		err := b.store.DeleteSong(ctx, id)
		if err != nil {
			return i, externalError("Failed to delete songs", err)
		}
	}
	return len(ids), nil
}

// ListTags returns all tags ordered by name after repairing the tag
// collection: later tags repeating an earlier name are deleted and missing
// default tags are created.
func (b *songbook) ListTags(ctx context.Context) ([]*Tag, error) {
	if b.store == nil {
		return nil, errStoreNotConfigured
	}

	tags, err := b.store.TagsByName(ctx)
	if err != nil {
		return nil, externalError("Failed to fetch tags", err)
	}

	seen := make(map[string]bool, len(tags))
	unique := make([]*Tag, 0, len(tags)+len(defaultTags))
	for _, tag := range tags {
		if seen[tag.Name] {
			err = b.store.DeleteTag(ctx, tag.ID)
			if err != nil {
				return nil, externalError("Failed to fetch tags", err)
			}
			slog.Info("removed duplicate tag", "id", tag.ID, "name", tag.Name)
			continue
		}
		seen[tag.Name] = true
		unique = append(unique, tag)
	}

	added := false
	for _, def := range defaultTags {
		if seen[def.Name] {
			continue
		}

		tag := &Tag{Name: def.Name, Color: def.Color}
		err = b.store.AddTag(ctx, tag)
		if err != nil {
			return nil, externalError("Failed to fetch tags", err)
		}
		slog.Info("created default tag", "id", tag.ID, "name", tag.Name)

		seen[tag.Name] = true
		unique = append(unique, tag)
		added = true
	}

	if added {
		c := collate.New(language.English)
		slices.SortStableFunc(unique, func(x, y *Tag) int {
			return c.CompareString(x.Name, y.Name)
		})
	}
	return unique, nil
}

// CreateTag stores a new tag. Name uniqueness is not checked here; ListTags
// removes repeated names.
func (b *songbook) CreateTag(ctx context.Context, in TagInput) (*Tag, error) {
	if b.store == nil {
		return nil, errStoreNotConfigured
	}

	if strings.TrimSpace(in.Name) == "" {
		return nil, validationError("Tag name is required")
	}

	tag := &Tag{Name: in.Name, Color: in.Color}
	if tag.Color == "" {
		tag.Color = defaultTagColor
	}

	err := b.store.AddTag(ctx, tag)
	if err != nil {
		return nil, externalError("Failed to create tag", err)
	}
	return tag, nil
}

// DeleteTag removes a tag. Songs keep the id in their TagIDs; it is
// dropped when their tags are resolved.
func (b *songbook) DeleteTag(ctx context.Context, id string) error {
	if b.store == nil {
		return errStoreNotConfigured
	}

	err := b.store.DeleteTag(ctx, id)
	if err != nil {
		return externalError("Failed to delete tag", err)
	}
	return nil
}

// Transcribe returns the text of a photographed lyric or chord sheet.
func (b *songbook) Transcribe(ctx context.Context, in TranscribeInput) (string, error) {
	failures, err := b.validator.check(in)
	if err != nil {
		return "", externalError("Failed to extract text from image", err)
	}
	for _, f := range failures {
		if f.Rule == "required" {
			return "", validationError("Missing required fields")
		}
	}
	if len(failures) > 0 {
		return "", validationError(fmt.Sprintf("Invalid type %q: must be lyrics or chords", in.Type))
	}

	if b.transcriber == nil {
		return "", errTranscriberNotConfigured
	}

	image, err := base64.StdEncoding.DecodeString(in.Base64Data)
	if err != nil {
		return "", validationError("Image data is not valid base64")
	}

	text, err := b.transcriber.Transcribe(ctx, image, in.MimeType)
	if err != nil {
		return "", externalError("Failed to extract text from image", err)
	}
	return text, nil
}

// indexTags maps tag ids to tags.
func indexTags(tags []*Tag) map[string]*Tag {
	byID := make(map[string]*Tag, len(tags))
	for _, tag := range tags {
		byID[tag.ID] = tag
	}
	return byID
}

// resolveTags sets song.Tags to the tags named by song.TagIDs, in TagIDs
// order, skipping ids that no longer exist.
func resolveTags(song *Song, byID map[string]*Tag) {
	if song.TagIDs == nil {
		song.TagIDs = []string{}
	}

	song.Tags = make([]*Tag, 0, len(song.TagIDs))
	for _, id := range song.TagIDs {
		if tag, ok := byID[id]; ok {
			song.Tags = append(song.Tags, tag)
		}
	}
}

// songMatches reports whether any text field or resolved tag name of s
// contains needle, which must already be lower case.
func songMatches(s *Song, needle string) bool {
	for _, field := range []string{s.Title, s.Artist, s.Lyrics, s.Chords} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return slices.ContainsFunc(s.Tags, func(t *Tag) bool {
		return strings.Contains(strings.ToLower(t.Name), needle)
	})
}

// sortSongsByTitle orders songs by title using English collation. Songs
// with equal titles keep their relative order.
func sortSongsByTitle(songs []*Song) {
	c := collate.New(language.English)
	slices.SortStableFunc(songs, func(a, b *Song) int {
		return c.CompareString(a.Title, b.Title)
	})
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
