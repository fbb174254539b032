/*
Package observability provides monitoring for editing sessions.

It turns history and persistence lifecycle events into structured log records
and Prometheus metrics. Both are exposed as domain.LifecycleHooks so they can
be merged and handed to an editor or a history manager.
*/
package observability
