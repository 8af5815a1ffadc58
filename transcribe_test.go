package main

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriber struct {
	text string
	err  error

	image    []byte
	mimeType string
	calls    int
}

func (f *fakeTranscriber) Transcribe(_ context.Context, image []byte, mimeType string) (string, error) {
	f.calls++
	f.image = image
	f.mimeType = mimeType
	return f.text, f.err
}

func TestCleanTranscription(t *testing.T) {
	assert.Equal(t, "Verse:\nAmazing grace\n\nChorus:", cleanTranscription("**Verse:**\nAmazing grace\n\n**Chorus:**"))
	assert.Equal(t, "G  C  D", cleanTranscription("G  C  D"))
}

func TestSongbookTranscribe(t *testing.T) {
	image := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(image)

	fake := &fakeTranscriber{text: "Verse:\nG C D"}
	b := newSongbook(nil, fake)

	text, err := b.Transcribe(context.Background(), TranscribeInput{Base64Data: encoded, MimeType: "image/png", Type: "chords"})
	require.NoError(t, err)
	assert.Equal(t, "Verse:\nG C D", text)
	assert.Equal(t, image, fake.image)
	assert.Equal(t, "image/png", fake.mimeType)
}

func TestSongbookTranscribe_Invalid(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("img"))

	tests := []struct {
		name string
		in   TranscribeInput
		want string
	}{
		{name: "no image", in: TranscribeInput{MimeType: "image/png", Type: "lyrics"}, want: "Missing required fields"},
		{name: "no mime type", in: TranscribeInput{Base64Data: encoded, Type: "lyrics"}, want: "Missing required fields"},
		{name: "no type", in: TranscribeInput{Base64Data: encoded, MimeType: "image/png"}, want: "Missing required fields"},
		{name: "unknown type", in: TranscribeInput{Base64Data: encoded, MimeType: "image/png", Type: "tabs"}, want: `Invalid type "tabs": must be lyrics or chords`},
		{name: "bad base64", in: TranscribeInput{Base64Data: "not base64!", MimeType: "image/png", Type: "lyrics"}, want: "Image data is not valid base64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTranscriber{}
			b := newSongbook(nil, fake)

			_, err := b.Transcribe(context.Background(), tt.in)
			require.ErrorIs(t, err, errValidation)

			var apiErr *apiError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.want, apiErr.message)
			assert.Zero(t, fake.calls)
		})
	}
}

func TestSongbookTranscribe_Failures(t *testing.T) {
	in := TranscribeInput{Base64Data: base64.StdEncoding.EncodeToString([]byte("img")), MimeType: "image/jpeg", Type: "lyrics"}

	_, err := newSongbook(nil, nil).Transcribe(context.Background(), in)
	assert.ErrorIs(t, err, errConfiguration)

	cause := errors.New("quota exceeded")
	_, err = newSongbook(nil, &fakeTranscriber{err: cause}).Transcribe(context.Background(), in)
	require.ErrorIs(t, err, errExternal)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Failed to extract text from image")
}
