// Package orchestrator wires the loader → transformer → decorators → theme →
// renderer pipeline behind a single Generate call.
package orchestrator
