// Package memory provides in-memory implementations of the driven ports.
// They back tests and runs that do not persist anything to disk.
package memory
