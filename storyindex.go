// Package storyindex builds a full-text search index and listing metadata
// for the articles published on a single hosted blog. It discovers article
// URLs from several listing sources, fetches and extracts each article, and
// projects the results into search and metadata records.
//
// This package contains domain types, pure domain functions and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/, http/,
// gofeed/).
package storyindex
