// Package logging ties together the pprof labels and the log fields of a remote operation.
package logging

import (
	"context"
	"fmt"
	"runtime"
	"runtime/pprof"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Fields are attached both as pprof labels and as log fields.
type Fields map[string]any

// Do runs fn with the goroutine labelled by the caller's function and the given fields.
// fn receives an entry derived from log carrying the same fields.
func Do(ctx context.Context, log *logrus.Entry, fields Fields, fn func(context.Context, *logrus.Entry)) {
	pprof.Do(ctx, getLabels(fields), func(ctx context.Context) {
		fn(ctx, log.WithFields(logrus.Fields(fields)))
	})
}

func getLabels(fields Fields) pprof.LabelSet {
	// Get the stack frame of Do's caller.
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		panic("failed to get caller's stack frame")
	}

	labels := []string{"fn", runtime.FuncForPC(pc).Name(), "file", file, "line", strconv.Itoa(line)}

	for key, val := range fields {
		labels = append(labels, key, fmt.Sprintf("%v", val))
	}

	return pprof.Labels(labels...)
}
