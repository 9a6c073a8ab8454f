package calls

import (
	"errors"
	"sync"

	"github.com/wudi/pdfbridge/document"
)

// errInvalidHandle covers unknown, destroyed and currently checked out
// handles alike; the caller cannot tell these apart and does not need to.
var errInvalidHandle = errors.New("Invalid 'pdfDocumentHandle' parameter specified")

// handleRegistry hands out numeric handles for open documents. Dispatch
// removes a document for the duration of one operation and restores it
// under the same handle afterwards, giving each operation exclusive use of
// the document without a per-document lock.
type handleRegistry struct {
	mu      sync.Mutex
	nextID  int64
	entries map[int64]document.Document
}

func newHandleRegistry() *handleRegistry {
	return &handleRegistry{entries: make(map[int64]document.Document)}
}

func (r *handleRegistry) put(doc document.Document) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.entries[r.nextID] = doc
	return r.nextID
}

func (r *handleRegistry) checkout(handle int64) (document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.entries[handle]
	if !ok {
		return nil, errInvalidHandle
	}
	delete(r.entries, handle)
	return doc, nil
}

func (r *handleRegistry) checkin(handle int64, doc document.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[handle] = doc
}

func (r *handleRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// drain removes and returns every registered document.
func (r *handleRegistry) drain() []document.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := make([]document.Document, 0, len(r.entries))
	for _, doc := range r.entries {
		docs = append(docs, doc)
	}
	r.entries = make(map[int64]document.Document)
	return docs
}
