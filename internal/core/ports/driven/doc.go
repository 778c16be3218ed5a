// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SearchProvider: Web search used to find candidate sources for each chunk
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ScoreRecorder: Writes the originality score back to a document service
//   - ReportStore: Keeps a history of analysis reports (SQLite)
//   - DocumentReader: Extracts plain text from files on disk
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
