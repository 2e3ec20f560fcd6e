// Package cinedex ingests a paginated movie listing site into a normalized
// local catalog. It crawls listing pages, extracts overview and detail
// attributes, resolves shared taxonomy entities (cast, creators, directors,
// genres, keywords) and keeps a denormalized full-text search document per
// movie.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package cinedex
