// Package cli provides shared plumbing for the voiceforge command line
// tool: the context-based configuration store, request file loading, and
// output formatting.
package cli
