package scripting

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/wudi/pdfbridge/observability"
)

// GojaEngine runs JavaScript on a goja runtime. One engine wraps one
// runtime and is not safe for concurrent use.
type GojaEngine struct {
	vm  *goja.Runtime
	log observability.Logger
	ctx context.Context
}

// Option configures a GojaEngine.
type Option func(*GojaEngine)

// WithLogger routes console output and engine diagnostics to log.
func WithLogger(log observability.Logger) Option {
	return func(e *GojaEngine) { e.log = log }
}

func NewEngine(opts ...Option) *GojaEngine {
	e := &GojaEngine{vm: goja.New(), log: observability.NopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	e.installConsole()
	return e
}

func (e *GojaEngine) installConsole() {
	console := e.vm.NewObject()
	console.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		e.log.Info(strings.Join(parts, " "))
		return goja.Undefined()
	})
	e.vm.Set("console", console)
}

func (e *GojaEngine) Execute(ctx context.Context, script string) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.ctx = ctx
	defer func() { e.ctx = nil }()

	done := make(chan struct{})
	defer close(done)
	defer e.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := e.vm.RunString(script)
	if err != nil {
		if interruptedErr, ok := err.(*goja.InterruptedError); ok {
			if cause := interruptedErr.Unwrap(); cause != nil {
				return nil, cause
			}
			return nil, context.Canceled
		}
		return nil, err
	}
	return val.Export(), nil
}

// callCtx is the context of the Execute invocation currently on the stack.
func (e *GojaEngine) callCtx() context.Context {
	if e.ctx != nil {
		return e.ctx
	}
	return context.Background()
}

// RegisterCalls exposes caller as a global pdfcall(name, params) function.
// Parameters are passed as a plain object and encoded to JSON; results
// decode back into objects. A failed call surfaces as a JavaScript
// exception carrying the operation's message.
func (e *GojaEngine) RegisterCalls(caller Caller) error {
	return e.vm.Set("pdfcall", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(e.vm.NewTypeError("pdfcall requires a call name"))
		}
		name := call.Arguments[0].String()

		params := []byte("{}")
		if len(call.Arguments) > 1 && !goja.IsUndefined(call.Arguments[1]) && !goja.IsNull(call.Arguments[1]) {
			encoded, err := json.Marshal(call.Arguments[1].Export())
			if err != nil {
				panic(e.vm.NewGoError(fmt.Errorf("cannot encode parameters for call [%s]: %v", name, err)))
			}
			params = encoded
		}

		res, err := caller.Call(e.callCtx(), name, params)
		if err != nil {
			panic(e.vm.NewGoError(err))
		}
		var decoded interface{}
		if len(res) > 0 {
			if err := json.Unmarshal(res, &decoded); err != nil {
				panic(e.vm.NewGoError(fmt.Errorf("cannot decode result of call [%s]: %v", name, err)))
			}
		}
		return e.vm.ToValue(decoded)
	})
}
