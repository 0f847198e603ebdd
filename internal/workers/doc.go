/*
Package workers sizes worker pools and runs blocking jobs off the caller's
goroutine.

# Sizing

Count uses GOMAXPROCS, which Go 1.19+ sets from container CPU limits, rather
than runtime.NumCPU:

	workers.ForCPU(8)   // 1 per CPU, at most 8
	workers.ForIO(16)   // 2 per CPU, at most 16
	workers.ForMixed(8) // 1.5 per CPU, at most 8

VAULTVIEW_WORKERS overrides the computed count; the limit still applies.

# Background jobs

A Pool runs each job on its own goroutine and lets the caller wait for it:

	pool := workers.NewPool(0) // unbounded
	var out []byte
	err := pool.Do(ctx, func() { out, runErr = cmd.Output() })

The decoder processes launched by the extractor run this way, so an HTTP
handler or CLI command blocks only its own goroutine. A bounded pool
(size > 0) queues callers until a slot frees up; the context limits how long
a caller queues, never how long a started job runs.
*/
package workers
