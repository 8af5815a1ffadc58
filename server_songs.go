package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *server) getSongs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	songs, err := s.book.ListSongs(r.Context(), query.Get("search"), query.Get("tagId"))
	if err != nil {
		s.renderError(w, r, err, "Failed to fetch songs")
		return
	}

	s.renderJSON(w, http.StatusOK, songs)
}

func (s *server) getSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.book.GetSong(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, r, err, "Failed to fetch song")
		return
	}

	s.renderJSON(w, http.StatusOK, song)
}

func (s *server) postSong(w http.ResponseWriter, r *http.Request) {
	var in SongInput
	err := decodeBody(w, r, &in)
	if err != nil {
		s.renderError(w, r, err, "Failed to create song")
		return
	}

	id, err := s.book.CreateSong(r.Context(), in)
	if err != nil {
		s.renderError(w, r, err, "Failed to create song")
		return
	}

	s.renderJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *server) putSong(w http.ResponseWriter, r *http.Request) {
	var in SongInput
	err := decodeBody(w, r, &in)
	if err != nil {
		s.renderError(w, r, err, "Failed to update song")
		return
	}

	err = s.book.UpdateSong(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.renderError(w, r, err, "Failed to update song")
		return
	}

	s.renderSuccess(w)
}

func (s *server) deleteSong(w http.ResponseWriter, r *http.Request) {
	err := s.book.DeleteSong(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, r, err, "Failed to delete song")
		return
	}

	s.renderSuccess(w)
}

func (s *server) postBulkDeleteSongs(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	err := decodeBody(w, r, &body)
	if err != nil {
		s.renderError(w, r, err, "Failed to delete songs")
		return
	}

	n, err := s.book.DeleteSongs(r.Context(), body.IDs)
	if err != nil {
		s.renderError(w, r, err, "Failed to delete songs")
		return
	}

	s.renderJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"deleted": n,
	})
}
