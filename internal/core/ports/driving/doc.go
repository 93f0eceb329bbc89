// Package driving provides interfaces exposed to external actors
// (primary/inbound ports): the read-only query operations.
package driving
