package errors

import (
	"fmt"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including timestamps.
	Verbose bool
}

// HandleError logs a PipError to stderr.
func (h *LogHandler) HandleError(err *PipError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[pipify error] %s [%s] at %s: %v\n",
			err.Op, err.Kind, err.Timestamp.Format("15:04:05.000"), err.Err)
	} else {
		fmt.Fprintf(os.Stderr, "[pipify error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError to stderr.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		fmt.Fprintf(os.Stderr, "[pipify panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(os.Stderr, "[pipify panic] %v\n", err.Value)
	}
}
