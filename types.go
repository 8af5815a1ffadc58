package main

import "time"

type Tag struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"index"`
	Color string `json:"color"`
}

// Song is a stored song document. Tags is never persisted; it is resolved
// from TagIDs against the tag collection on every read.
type Song struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Lyrics    string    `json:"lyrics"`
	Chords    string    `json:"chords"`
	TagIDs    []string  `json:"tagIds" gorm:"column:tag_ids;serializer:json"`
	VideoURL  string    `json:"video_url" gorm:"column:video_url"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
	Tags      []*Tag    `json:"tags" gorm:"-"`
}

func (s *Song) String() string {
	str := `"` + s.Title + `"`
	if s.Artist != "" {
		str += ` by ` + s.Artist
	}
	return str
}

// SongInput is the writable field set of a song as sent by clients.
// Tags carries tag ids.
type SongInput struct {
	Title    string   `json:"title" label:"Title" validate:"required"`
	Artist   string   `json:"artist" label:"Artist" validate:"required"`
	Lyrics   string   `json:"lyrics" label:"Lyrics" validate:"required"`
	Chords   string   `json:"chords"`
	Tags     []string `json:"tags" label:"Tags (at least one)" validate:"required,min=1"`
	VideoURL string   `json:"video_url"`
}

type TagInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TranscribeInput struct {
	Base64Data string `json:"base64Data" label:"base64Data" validate:"required"`
	MimeType   string `json:"mimeType" label:"mimeType" validate:"required"`
	Type       string `json:"type" label:"type" validate:"required,oneof=lyrics chords"`
}
