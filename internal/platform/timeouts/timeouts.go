// Package timeouts defines shared timeout constants used across the service.
// Centralizing these values prevents drift between handlers and makes the
// durations discoverable.
package timeouts

import "time"

// StoreRequest caps the time allowed for a single record store call made
// from a request handler.
const StoreRequest = 5 * time.Second

// SchemaBootstrap caps a full schema provisioning pass, which may create
// tables and policies on a cold database.
const SchemaBootstrap = 10 * time.Second

// SelfHealRetry is the wait before the single retry of the in-handler
// schema self-heal. The DDL is idempotent, so one retry is safe.
const SelfHealRetry = 500 * time.Millisecond

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
