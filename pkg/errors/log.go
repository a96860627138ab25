package errors

import "go.uber.org/zap"

// LogHandler is an ErrorHandler that writes through the global zap logger.
type LogHandler struct {
	// Verbose enables stack traces in the output.
	Verbose bool
}

// HandleError logs an ElementError at error level.
func (h *LogHandler) HandleError(err *ElementError) {
	if err == nil {
		return
	}
	fields := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if err.Tag != "" {
		fields = append(fields, "tag", err.Tag)
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, "stack", err.StackTrace)
	}
	zap.S().Errorw("element error", fields...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []any{"value", err.Value}
	if err.Op != "" {
		fields = append(fields, "op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, "stack", err.StackTrace)
	}
	zap.S().Errorw("element panic", fields...)
}
