package society

import "errors"

var (
	ErrApartmentNotFound = errors.New("apartment not found")
	// ErrStaleDocument is returned by Store.Save when the document revision
	// no longer matches the stored one, meaning another writer saved first.
	ErrStaleDocument = errors.New("stale apartment document")
)
