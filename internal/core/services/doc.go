// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The filter engine in filter.go is pure: it performs no I/O, never
// mutates its inputs and is safe to call from any number of goroutines.
package services
