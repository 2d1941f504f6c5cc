// Package server exposes the backing store service: a whole-document
// endpoint the client core pushes its composite record document to and
// pulls it back from. The service never inspects collection contents;
// last write wins.
package server

import (
	"encoding/json"

	"foodcycle/pkg/domain"
)

// DocumentStore persists the composite document verbatim.
type DocumentStore interface {
	// Load returns the current document. A store that has never been
	// written returns an empty document, not an error.
	Load() (json.RawMessage, error)
	// Save replaces the document with payload.
	Save(payload json.RawMessage) error
}

func emptyDocument() json.RawMessage {
	data, _ := json.Marshal(domain.EmptyStoreDocument())
	return data
}
