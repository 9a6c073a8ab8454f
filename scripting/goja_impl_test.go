package scripting

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wudi/pdfbridge/calls"
	"github.com/wudi/pdfbridge/observability"
)

func TestExecuteExpression(t *testing.T) {
	e := NewEngine()
	got, err := e.Execute(context.Background(), "6 * 7")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != int64(42) {
		t.Fatalf("got %v (%T), want 42", got, got)
	}
}

func TestExecuteSyntaxError(t *testing.T) {
	e := NewEngine()
	if _, err := e.Execute(context.Background(), "function {"); err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestExecuteCanceledContext(t *testing.T) {
	e := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Execute(ctx, "1 + 1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExecuteInterruptsRunawayScript(t *testing.T) {
	e := NewEngine()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := e.Execute(ctx, "while (true) {}")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("interrupt took too long: %v", elapsed)
	}
}

type stubCaller struct {
	name   string
	params string
	result string
	err    error
}

func (s *stubCaller) Call(_ context.Context, name string, params []byte) ([]byte, error) {
	s.name = name
	s.params = string(params)
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.result), nil
}

func TestPdfcallRoundTrip(t *testing.T) {
	stub := &stubCaller{result: `{"ok": true, "n": 3}`}
	e := NewEngine()
	if err := e.RegisterCalls(stub); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := e.Execute(context.Background(), `pdfcall("some_op", {alpha: 1}).n`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != int64(3) {
		t.Fatalf("got %v, want 3", got)
	}
	if stub.name != "some_op" {
		t.Fatalf("caller saw name %q", stub.name)
	}
	if !strings.Contains(stub.params, `"alpha":1`) {
		t.Fatalf("caller saw params %q", stub.params)
	}
}

func TestPdfcallDefaultsParams(t *testing.T) {
	stub := &stubCaller{result: `{}`}
	e := NewEngine()
	if err := e.RegisterCalls(stub); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := e.Execute(context.Background(), `pdfcall("bare_op")`); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stub.params != "{}" {
		t.Fatalf("caller saw params %q, want {}", stub.params)
	}
}

func TestPdfcallErrorBecomesException(t *testing.T) {
	stub := &stubCaller{err: errors.New("kaboom in call")}
	e := NewEngine()
	if err := e.RegisterCalls(stub); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := e.Execute(context.Background(), `
		var msg = "";
		try { pdfcall("doomed"); } catch (e) { msg = String(e); }
		msg`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	s, ok := got.(string)
	if !ok || !strings.Contains(s, "kaboom in call") {
		t.Fatalf("got %v, want caught message", got)
	}
}

func TestScriptBuildsDocument(t *testing.T) {
	m := calls.NewModule()
	defer m.Close()

	e := NewEngine()
	if err := e.RegisterCalls(m); err != nil {
		t.Fatalf("register: %v", err)
	}

	path := filepath.Join(t.TempDir(), "scripted.pdf")
	script := fmt.Sprintf(`
		var doc = pdfcall("pdf_create_document").pdfDocumentHandle;
		pdfcall("pdf_add_page", {pdfDocumentHandle: doc, format: "A4", orientation: "PORTRAIT"});
		pdfcall("pdf_write_text", {
			pdfDocumentHandle: doc,
			fontName: "Helvetica",
			fontSize: 18,
			text: "from script",
			x: 100,
			y: 700,
			color: {r: 0.2, g: 0.2, b: 1}
		});
		pdfcall("pdf_draw_line", {pdfDocumentHandle: doc, beginX: 100, beginY: 680, endX: 300, endY: 680});
		pdfcall("pdf_save_to_file", {pdfDocumentHandle: doc, path: %q});
		pdfcall("pdf_destroy_document", {pdfDocumentHandle: doc});
		"done"`, path)

	got, err := e.Execute(context.Background(), script)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != "done" {
		t.Fatalf("got %v, want done", got)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() == 0 {
		t.Fatalf("empty output file")
	}
	if n := m.OpenDocuments(); n != 0 {
		t.Fatalf("expected all documents destroyed, got %d", n)
	}
}

type captureLogger struct {
	infos []string
}

func (l *captureLogger) Debug(string, ...observability.Field) {}

func (l *captureLogger) Info(msg string, _ ...observability.Field) {
	l.infos = append(l.infos, msg)
}

func (l *captureLogger) Warn(string, ...observability.Field)              {}
func (l *captureLogger) Error(string, ...observability.Field)             {}
func (l *captureLogger) With(...observability.Field) observability.Logger { return l }

func TestConsoleLog(t *testing.T) {
	log := &captureLogger{}
	e := NewEngine(WithLogger(log))
	if _, err := e.Execute(context.Background(), `console.log("hello", 42)`); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(log.infos) != 1 || log.infos[0] != "hello 42" {
		t.Fatalf("console output: %v", log.infos)
	}
}
