// Package webharvest turns article web pages into searchable documents.
// It extracts clean article text from raw HTML while preserving the
// position of inline images as marker tokens, and indexes the resulting
// documents in a file-backed vector store for semantic search with
// optional publication-date filtering.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, trafilatura/, gemini/).
package webharvest
