package metrics

import "time"

const schemaName = "gmail_client_errors_total"
const schemaVersion = 1

func generateFailureMetric(errorType string, labels map[string]string) map[string]interface{} {
	all := map[string]string{
		"errorType": errorType,
	}

	for key, value := range labels {
		all[key] = value
	}

	return map[string]interface{}{
		"Name":      schemaName,
		"Version":   schemaVersion,
		"Timestamp": time.Now().Unix(),
		"Data": map[string]interface{}{
			"Value":  1,
			"Labels": all,
		},
	}
}

// GenerateFailedRemoteOperationMetric counts an operation the session failed; op is e.g. "select", "fetch", "store".
func GenerateFailedRemoteOperationMetric(op string) map[string]interface{} {
	return generateFailureMetric("failedRemoteOperation", map[string]string{"op": op})
}

func GenerateMessageNotFoundMetric() map[string]interface{} {
	return generateFailureMetric("messageNotFound", nil)
}

func GenerateFailedParseMessageMetric() map[string]interface{} {
	return generateFailureMetric("failedParseMessage", nil)
}

func GenerateMissingCounterpartMetric() map[string]interface{} {
	return generateFailureMetric("missingAllMailCounterpart", nil)
}
