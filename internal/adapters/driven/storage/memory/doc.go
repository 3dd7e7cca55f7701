// Package memory provides in-memory implementations of driven port interfaces.
// They back tests and the local oracle when no data directory is configured.
package memory
