package server

// MetricsProvider is the interface that exposes the communication with the
// metrics system; it is implemented by the providers in the metrics package.
type MetricsProvider interface {
	// ObserveHTTPRequestDuration stores the elapsed time for an HTTP request
	ObserveHTTPRequestDuration(method, handler, statusCode string, elapsed float64)
	// IncreaseWebhookRequest increases the counter for the webhook requests
	// identified by name
	IncreaseWebhookRequest(name string)

	// ObserveGithubRequestDuration stores the elapsed time for github requests
	ObserveGithubRequestDuration(method, handler, statusCode string, elapsed float64)
	// IncreaseGithubCacheHits stores the number of cache hits when a github
	// request is done
	IncreaseGithubCacheHits(method, handler string)
	// IncreaseGithubCacheMisses stores the number of cache misses when a
	// github request is done
	IncreaseGithubCacheMisses(method, handler string)

	// ObserveCronTaskDuration stores the elapsed time for a cron task
	ObserveCronTaskDuration(name string, elapsed float64)
	// IncreaseCronTaskErrors stores the number of errors for a cron task
	IncreaseCronTaskErrors(name string)

	// ObserveTriageRunDuration stores the elapsed time for a triage pipeline
	// run, labeled by its terminal outcome
	ObserveTriageRunDuration(outcome string, elapsed float64)
	// IncreaseTriageStageErrors stores the number of failed pipeline stages
	IncreaseTriageStageErrors(stage string)
}
