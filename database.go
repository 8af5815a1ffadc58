package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// errNoDocument is returned when a document id does not exist in its
// collection.
var errNoDocument = errors.New("document does not exist")

// database is the document store: one table per collection, keyed by an
// opaque id assigned on add.
type database struct {
	db *gorm.DB
}

func newDatabase(path string) (*database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}

	err = db.AutoMigrate(&Song{}, &Tag{})
	if err != nil {
		return nil, fmt.Errorf("migrate document store: %w", err)
	}

	return &database{
		db: db,
	}, nil
}

func (d *database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *database) AddSong(ctx context.Context, song *Song) error {
	id, err := newDocumentID()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	song.ID = id
	song.CreatedAt = now
	song.UpdatedAt = now
	return d.db.WithContext(ctx).Create(song).Error
}

func (d *database) GetSong(ctx context.Context, id string) (*Song, error) {
	var song *Song
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&song).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNoDocument
	}
	return song, err
}

func (d *database) AllSongs(ctx context.Context) ([]*Song, error) {
	var songs []*Song
	return songs, d.db.WithContext(ctx).Find(&songs).Error
}

// UpdateSong overwrites every writable field of an existing song and
// refreshes UpdatedAt. CreatedAt is left untouched.
func (d *database) UpdateSong(ctx context.Context, song *Song) error {
	song.UpdatedAt = time.Now().UTC()

	res := d.db.WithContext(ctx).
		Model(&Song{}).
		Where("id = ?", song.ID).
		Select("title", "artist", "lyrics", "chords", "tag_ids", "video_url", "updated_at").
		Updates(song)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNoDocument
	}
	return nil
}

func (d *database) DeleteSong(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Where("id = ?", id).Delete(&Song{}).Error
}

func (d *database) AddTag(ctx context.Context, tag *Tag) error {
	id, err := newDocumentID()
	if err != nil {
		return err
	}

	tag.ID = id
	return d.db.WithContext(ctx).Create(tag).Error
}

func (d *database) AllTags(ctx context.Context) ([]*Tag, error) {
	var tags []*Tag
	return tags, d.db.WithContext(ctx).Find(&tags).Error
}

// TagsByName returns all tags ordered by name. Tags sharing a name are
// returned in insertion order.
func (d *database) TagsByName(ctx context.Context) ([]*Tag, error) {
	var tags []*Tag
	return tags, d.db.WithContext(ctx).Order("name").Order("rowid").Find(&tags).Error
}

func (d *database) DeleteTag(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Where("id = ?", id).Delete(&Tag{}).Error
}
