package main

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	documentIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	documentIDLength   = 20
)

// newDocumentID returns an opaque, URL-safe document id.
func newDocumentID() (string, error) {
	id, err := gonanoid.Generate(documentIDAlphabet, documentIDLength)
	if err != nil {
		return "", fmt.Errorf("generate document id: %w", err)
	}
	return id, nil
}
