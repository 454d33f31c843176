// Package file defines the handle layer kernel objects plug into.
//
// Key Components:
//   - Ops: the operations contract a file implementation provides
//   - Handle: a per-endpoint reference with access mode and flags
//   - Info: stat-style description of the object
//   - Event codes for readiness and hang-up subscriptions
//
// Handles are cheap and concurrency-safe. The flag word is mutable and
// sampled once at the start of each operation; access modes are fixed
// at open time and enforced before a request reaches the object.
package file
