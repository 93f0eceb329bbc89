// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding providers and cache persistence.
package driven
