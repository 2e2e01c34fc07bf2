package society

import "context"

// Store is the persistence gateway: a key-value store of whole apartment
// documents keyed by apartment id. There are no partial updates; Save
// rewrites the entire document.
type Store interface {
	// List returns every stored document. Membership lookups (login by
	// phone, join by invite code) scan across all apartments.
	List(ctx context.Context) ([]Apartment, error)
	Get(ctx context.Context, id string) (*Apartment, error)
	// Save upserts the document. When a document with the same id already
	// exists and its revision differs from doc.Revision, Save fails with
	// ErrStaleDocument. On success doc.Revision is advanced.
	Save(ctx context.Context, doc *Apartment) error
}
