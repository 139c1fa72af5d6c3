// Package types defines the Todo entity, the Store interface, change
// notification events, and standard errors for the ticklist system.
package types
