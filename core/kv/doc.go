// Package kv abstracts the durable client state the content layer keeps
// between runs: the selected display language, the content version marker
// the admin panel bumps after edits, and the persisted translation cache.
//
// Three implementations cover the deployment shapes:
//
//   - Memory: ephemeral, for tests and opt-out sessions
//   - File: single-host JSON state file with atomic replacement
//   - Redis: shared state for the public site and the admin panel running
//     as separate processes
//
// Values are opaque strings. Structured state (the translation cache) is
// stored as one JSON blob under a single well-known key.
package kv
