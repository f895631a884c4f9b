// Package errors provides structured error reporting for the pipify bridge.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPlatform indicates a floating-surface session or native bridge error.
	KindPlatform
	// KindCapture indicates a frame snapshot failure.
	KindCapture
	// KindEncode indicates a pixel-buffer or sample encoding failure.
	KindEncode
	// KindLifecycle indicates an invalid session lifecycle operation.
	KindLifecycle
	// KindConfig indicates a configuration loading or parsing error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindCapture:
		return "capture"
	case KindEncode:
		return "encode"
	case KindLifecycle:
		return "lifecycle"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// PipError represents a structured error in the pipify bridge.
type PipError struct {
	// Op is the operation that failed (e.g., "pip.Controller.Start").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *PipError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *PipError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "pump.Pump.Tick").
	Op string
	// Value is the value passed to panic().
	Value any
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the bridge.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *PipError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
