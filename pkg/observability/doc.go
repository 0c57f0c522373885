/*
Package observability turns engine lifecycle events into Prometheus metrics
and structured audit logs.

Both are exposed as domain.LifecycleHooks and can be combined with
domain.ComposeHooks before being passed to the engine.
*/
package observability
