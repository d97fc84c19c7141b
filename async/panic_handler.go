// Package async holds helpers for goroutines spawned on behalf of a session.
package async

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// PanicHandler is given the value recovered from a panicking goroutine.
type PanicHandler interface {
	HandlePanic(r any)
}

// NoopPanicHandler does not handle panics: the recovered value is raised again.
type NoopPanicHandler struct{}

func (NoopPanicHandler) HandlePanic(r any) {
	panic(r)
}

// LogPanicHandler logs the panic together with the goroutine's stack and lets the goroutine exit normally.
type LogPanicHandler struct {
	Log *logrus.Entry
}

func (h LogPanicHandler) HandlePanic(r any) {
	log := h.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	log.WithField("panic", r).WithField("stack", string(debug.Stack())).Error("Recovered from panic")
}

// HandlePanic must be deferred directly. If the handler is nil the panic is left alone.
func HandlePanic(panicHandler PanicHandler) {
	if panicHandler == nil {
		return
	}

	if r := recover(); r != nil {
		panicHandler.HandlePanic(r)
	}
}
