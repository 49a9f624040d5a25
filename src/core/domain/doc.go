// Package domain contains the core model of the fantasy roster engine:
// the FantasyTeam aggregate and its embedded roster entries, formation
// parsing, the pure roster validators, and domain errors.
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Validators are pure: they return structured results, never mutate
package domain
