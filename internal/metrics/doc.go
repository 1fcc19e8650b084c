// Package metrics accumulates per-phase frame latencies.
//
// [Telemetry] keeps an unbounded running mean for the physics and render
// phases. Both means are weighted by the same frame counter, which advances
// once per frame rather than once per sample:
//
//	tel := metrics.NewTelemetry()
//	tel.Update(metrics.Physics, physMs)
//	tel.Update(metrics.Render, renderMs)
//	avg := tel.Average(metrics.Render)
//
// Updates are O(1) in time and space and telemetry is never reset.
//
// [FrameBudget] counts frames that overran the frame period, and
// [Summarize] turns a recorded series into percentiles for reports.
package metrics
