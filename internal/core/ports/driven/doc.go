// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Vectorizer: Projects text into the fixed process-wide vocabulary
//   - IndexStore: Similarity index persistence, one index per document
//   - ConversationStore: Durable per-document message log
//   - DocumentRegistry: Document metadata persistence (SQLite)
//   - TextExtractor: Plain text extraction from staged files
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AnswerService: Generates natural-language answers from retrieved
//     context. Without it, queries return the raw ranked chunks.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
