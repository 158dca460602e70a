/*
Package observability turns engine lifecycle hooks into logs and Prometheus metrics.

Both are plain domain.LifecycleHooks values, so they can be combined with
domain.MergeHooks and passed to the engine:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := domain.MergeHooks(observability.LogHooks(logger), metrics.Hooks())
*/
package observability
