// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no knowledge of the upstream API client,
// the SQLite stores, or the CLI that drives them.
package services
