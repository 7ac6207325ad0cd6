package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/selengine/internal/dom"
	"github.com/dshills/selengine/internal/engine/selection"
	"github.com/dshills/selengine/internal/logging"
)

// DefaultMaxDepth is the default limit on nested on_change dispatch.
const DefaultMaxDepth = 16

// Runtime binds a Lua state to one selection and its document.
//
// gopher-lua's LState is not goroutine-safe. A Runtime must be used from the
// goroutine that drives the selection.
type Runtime struct {
	L *lua.LState

	sel *selection.Selection
	doc *dom.Document
	out io.Writer
	log *logging.Logger

	handlers []*lua.LFunction
	depth    int
	maxDepth int
	lastErr  error

	removeListener func()
	closed         bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithOutput sets where print writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runtime) {
		r.log = l
	}
}

// WithMaxDepth sets how deeply on_change handlers may nest.
func WithMaxDepth(n int) Option {
	return func(r *Runtime) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// New creates a runtime driving sel over doc.
func New(sel *selection.Selection, doc *dom.Document, opts ...Option) *Runtime {
	r := &Runtime{
		sel:      sel,
		doc:      doc,
		out:      os.Stdout,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = logging.OrNull(r.log).WithComponent("script")

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.installSandbox()
	r.register("sel", r.selFuncs())
	r.register("doc", r.docFuncs())

	r.removeListener = sel.AddListener(r.dispatch)
	return r
}

// openSafeLibraries opens only the libraries that cannot reach the host.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

func (r *Runtime) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		r.L.SetGlobal(name, lua.LNil)
	}
	r.L.SetGlobal("print", r.L.NewFunction(r.print))
}

func (r *Runtime) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}

func (r *Runtime) register(name string, funcs map[string]lua.LGFunction) {
	r.L.SetGlobal(name, r.L.SetFuncs(r.L.NewTable(), funcs))
}

// Run executes code. Cancelling ctx interrupts the script.
func (r *Runtime) Run(ctx context.Context, code string) error {
	return r.run(ctx, func() error { return r.L.DoString(code) })
}

// RunFile executes the Lua file at path.
func (r *Runtime) RunFile(ctx context.Context, path string) error {
	return r.run(ctx, func() error { return r.L.DoFile(path) })
}

func (r *Runtime) run(ctx context.Context, fn func() error) (err error) {
	if r.closed {
		return ErrRuntimeClosed
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
	}()
	if err := fn(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("script interrupted: %w", ctxErr)
		}
		return err
	}
	return nil
}

// Global returns a global Lua value.
func (r *Runtime) Global(name string) lua.LValue {
	if r.closed {
		return lua.LNil
	}
	return r.L.GetGlobal(name)
}

// LastError returns the most recent on_change handler failure, or nil.
func (r *Runtime) LastError() error {
	return r.lastErr
}

// Close detaches the runtime from the selection and releases the Lua state.
func (r *Runtime) Close() {
	if r.closed {
		return
	}
	r.removeListener()
	r.handlers = nil
	r.L.Close()
	r.closed = true
}

// dispatch runs every on_change handler for one selection change.
func (r *Runtime) dispatch(c selection.Change) {
	if r.closed || len(r.handlers) == 0 {
		return
	}
	if r.depth >= r.maxDepth {
		r.fail(fmt.Errorf("%w: %s at depth %d", ErrHandlerDepth, c.Reason, r.depth))
		return
	}
	r.depth++
	defer func() { r.depth-- }()

	for _, h := range slices.Clone(r.handlers) {
		err := r.L.CallByParam(lua.P{Fn: h, NRet: 0, Protect: true},
			lua.LString(c.Reason.String()), lua.LNumber(c.RangeCount))
		if err != nil {
			r.fail(fmt.Errorf("%w: %v", ErrHandler, err))
		}
	}
}

func (r *Runtime) fail(err error) {
	r.lastErr = err
	r.log.Warn("%v", err)
}
