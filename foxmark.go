// Package foxmark provides a single-user bookmark manager. It imports a
// browser's bookmark export, downloads and sanitizes the linked pages,
// indexes the combined text in a full-text index, and serves search with
// excerpts, history, and mark CRUD.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, bluemonday/, http/).
package foxmark
