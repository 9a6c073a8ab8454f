// Package calls exposes document building as named operations with JSON
// parameters and results, the form scripting hosts and job runners invoke.
package calls

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/wudi/pdfbridge/document"
	"github.com/wudi/pdfbridge/observability"
)

// Module dispatches named PDF operations over a shared document registry.
// It is safe for concurrent use; each operation holds its document
// exclusively for the duration of the call.
type Module struct {
	registry *handleRegistry
	log      observability.Logger
	tracer   observability.Tracer
}

// Option configures a Module.
type Option func(*Module)

// WithLogger sets the logger used for call outcomes.
func WithLogger(log observability.Logger) Option {
	return func(m *Module) { m.log = log }
}

// WithTracer sets the tracer wrapped around each call.
func WithTracer(tracer observability.Tracer) Option {
	return func(m *Module) { m.tracer = tracer }
}

// NewModule creates a Module with an empty document registry.
func NewModule(opts ...Option) *Module {
	m := &Module{
		registry: newHandleRegistry(),
		log:      observability.NopLogger{},
		tracer:   observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type handler func(ctx context.Context, m *Module, params []byte) (interface{}, error)

var handlers = map[string]handler{
	"pdf_create_document":             opCreateDocument,
	"pdf_load_font":                   opLoadFont,
	"pdf_add_page":                    opAddPage,
	"pdf_write_text":                  opWriteText,
	"pdf_write_text_inside_rectangle": opWriteTextInsideRectangle,
	"pdf_draw_line":                   opDrawLine,
	"pdf_draw_rectangle":              opDrawRectangle,
	"pdf_draw_image":                  opDrawImage,
	"pdf_write_markdown":              opWriteMarkdown,
	"pdf_save_to_file":                opSaveToFile,
	"pdf_destroy_document":            opDestroyDocument,
}

// Operations lists the registered call names, sorted.
func Operations() []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs the named operation with JSON-encoded parameters and returns
// the JSON-encoded result.
func (m *Module) Call(ctx context.Context, name string, params []byte) ([]byte, error) {
	h, ok := handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown call name: [%s]", name)
	}
	ctx, span := m.tracer.StartSpan(ctx, "calls."+name)
	defer span.Finish()

	start := time.Now()
	result, err := h(ctx, m, params)
	if err != nil {
		span.SetError(err)
		m.log.Error("call failed",
			observability.String("call", name),
			observability.Error("error", err))
		return nil, err
	}
	m.log.Debug("call done",
		observability.String("call", name),
		observability.Duration(observability.MetricCallTime, time.Since(start)),
		observability.Int(observability.MetricDocumentsActive, m.registry.count()))
	return json.Marshal(result)
}

// borrow checks the document out for one operation and restores it under
// the same handle, whether or not the operation succeeded.
func (m *Module) borrow(handle int64, fn func(document.Document) (interface{}, error)) (interface{}, error) {
	doc, err := m.registry.checkout(handle)
	if err != nil {
		return nil, err
	}
	defer m.registry.checkin(handle, doc)
	return fn(doc)
}

// OpenDocuments reports how many documents the registry currently holds.
func (m *Module) OpenDocuments() int {
	return m.registry.count()
}

// Close destroys every document still registered and empties the registry.
func (m *Module) Close() error {
	var firstErr error
	for _, doc := range m.registry.drain() {
		if err := doc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
