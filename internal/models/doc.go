// Package models defines domain entities for the Rooha emotion detection client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): structs mirroring backend API payloads
//   - [AnalysisResult] : One analysis response (emotion, mood, confidence, tracks)
//   - [Track] : Recommended track with optional preview and external link
//   - [HistoryEntry] : Past session as returned by /api/history
//   - [Stats] : Aggregate figures from /api/stats
//   - [AuthStatus] : Current identity from /api/auth/status
//
// 2. Persistent entities: database-backed models with lifecycle management
//   - [Analysis] : Local log record of an analysis run from this client
//
// Persistent entities implement the [Model] interface providing ID generation,
// timestamps and validation. The [Repository] interface defines standard CRUD
// operations for database access.
package models
