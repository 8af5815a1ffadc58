package main

import (
	"net/http"
)

func (s *server) postOCR(w http.ResponseWriter, r *http.Request) {
	var in TranscribeInput
	err := decodeBody(w, r, &in)
	if err != nil {
		s.renderError(w, r, err, "Failed to extract text from image")
		return
	}

	text, err := s.book.Transcribe(r.Context(), in)
	if err != nil {
		s.renderError(w, r, err, "Failed to extract text from image")
		return
	}

	s.renderJSON(w, http.StatusOK, map[string]string{"text": text})
}
