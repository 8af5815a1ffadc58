package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *server) getTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.book.ListTags(r.Context())
	if err != nil {
		s.renderError(w, r, err, "Failed to fetch tags")
		return
	}

	s.renderJSON(w, http.StatusOK, tags)
}

func (s *server) postTag(w http.ResponseWriter, r *http.Request) {
	var in TagInput
	err := decodeBody(w, r, &in)
	if err != nil {
		s.renderError(w, r, err, "Failed to create tag")
		return
	}

	tag, err := s.book.CreateTag(r.Context(), in)
	if err != nil {
		s.renderError(w, r, err, "Failed to create tag")
		return
	}

	s.renderJSON(w, http.StatusCreated, tag)
}

func (s *server) deleteTag(w http.ResponseWriter, r *http.Request) {
	err := s.book.DeleteTag(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, r, err, "Failed to delete tag")
		return
	}

	s.renderSuccess(w)
}
