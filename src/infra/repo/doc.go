// Package repo contains the Postgres adapters for the core ports: the
// FantasyTeam store plus the read-only player/team registries and the
// user directory.
package repo
