// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metric exposes server counters for Prometheus at GET /metrics.
// A nil *Metrics is valid and records nothing.
package metric
