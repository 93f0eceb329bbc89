// Package services implements the core behaviour of docquery: markdown
// chunk parsing, the load-or-regenerate corpus cache protocol, brute-force
// semantic search, and the query facade exposed to adapters.
package services
