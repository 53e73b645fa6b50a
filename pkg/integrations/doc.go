// Package integrations provides HTTP clients for external service APIs.
//
// # Overview
//
// This package contains low-level API clients for the services Machina
// talks to. Each service has its own subpackage:
//
//   - [conversion]: the remote automaton conversion service (NFA-to-DFA
//     determinization and regular grammar extraction)
//
// # Client Pattern
//
// Service clients follow a consistent pattern:
//
//	client, err := conversion.NewClient("http://localhost:9000", conversion.Options{})
//	dfa, err := client.ToDFA(ctx, spec)
//
// Clients handle:
//   - HTTP requests with a shared timeout
//   - JSON encoding and decoding
//   - Status-to-error mapping with structured error codes
//
// Clients never retry. A failed conversion is reported as-is and the caller
// decides whether to resubmit.
//
// # Shared Infrastructure
//
// The [Client] type provides the HTTP plumbing used by every service
// client: request construction, default headers, observability hooks, and
// error mapping.
//
// # Adding a New Service
//
// To integrate another service:
//
//  1. Create a subpackage: pkg/integrations/<service>/
//  2. Define request and response structs matching the wire schema
//  3. Embed [Client] and implement typed methods per endpoint
//  4. Map service failures onto pkg/errors codes
//
// [conversion]: github.com/nfalab/machina/pkg/integrations/conversion
package integrations
