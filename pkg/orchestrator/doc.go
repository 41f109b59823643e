// Package orchestrator wires the transform → variant → palette → renderer
// pipeline for a single signature, providing dependency injection friendly
// helpers for consumers that prefer a single entry point.
package orchestrator
