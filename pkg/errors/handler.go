package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

type handlerSlot struct {
	h ErrorHandler
}

var current atomic.Pointer[handlerSlot]

func init() {
	current.Store(&handlerSlot{h: &LogHandler{}})
}

// Handler returns the global error handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// SetHandler installs h as the global error handler and returns the one it
// replaced. Pass nil to restore a non-verbose LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	return current.Swap(&handlerSlot{h: h}).h
}

// Report stamps err and hands it to the global handler.
func Report(err *ElementError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic stamps err and hands it to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in progress as a PanicError tagged with op. It must
// be deferred directly:
//
//	defer errors.Recover("frame.Loop.task")
func Recover(op string) {
	r := recover()
	if r == nil {
		return
	}
	ReportPanic(&PanicError{Op: op, Value: r, StackTrace: CaptureStack()})
}

// CaptureStack formats the stack of its caller's caller, one function per
// entry followed by its file and line.
func CaptureStack() string {
	pcs := make([]uintptr, 32)
	pcs = pcs[:runtime.Callers(3, pcs)]
	if len(pcs) == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs)
	for {
		f, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			return sb.String()
		}
	}
}

// Chain fans every report out to handlers in order. Nil handlers are skipped.
func Chain(handlers ...ErrorHandler) ErrorHandler {
	return chain(handlers)
}

type chain []ErrorHandler

func (c chain) HandleError(err *ElementError) {
	for _, h := range c {
		if h != nil {
			h.HandleError(err)
		}
	}
}

func (c chain) HandlePanic(err *PanicError) {
	for _, h := range c {
		if h != nil {
			h.HandlePanic(err)
		}
	}
}
