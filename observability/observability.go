// Package observability defines where a client sends metrics about failed remote operations.
package observability

// Sender receives metrics. Implementations must be safe for concurrent use.
type Sender interface {
	AddMetrics(metrics ...map[string]interface{})
}
