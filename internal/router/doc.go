// Package router maps one chat input box onto four backend operations.
//
// # Overview
//
// The backend exposes semantically different operations (query, compare,
// config-gen, troubleshoot) with divergent request and response shapes.
// Router.Submit builds the mode-specific request, calls the gateway, and
// normalizes every response kind into one assistant message, so the
// transcript stays a single uniform stream.
//
// # Turn discipline
//
// The chat path is serialized: one turn in flight per conversation,
// enforced with an atomic busy flag. The user message is recorded before
// the backend call starts, so transcript order follows submission order
// regardless of backend latency. Failures become error-flagged assistant
// messages; Submit never surfaces an error to the caller.
//
// # Session identity
//
// query and troubleshoot read the stored session id and overwrite it with
// whatever the response carries (last response wins). compare and
// config-gen neither read nor write it.
package router
