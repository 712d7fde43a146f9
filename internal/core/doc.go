// Package core provides the catalog model and the view pipeline.
//
// This package holds all domain logic independent of any UI or transport
// layer. It can be used by web handlers, CLI tools, or tests without
// modification.
//
// # Catalog
//
// A [Catalog] is an immutable set of [Product] records partitioned by
// version. It is built once from a loaded source with [NewCatalog] and
// served through a [Store], which swaps whole snapshots atomically when a
// source is reloaded.
//
// # View Pipeline
//
// Every displayed table is a derived view computed by [Run]:
//
//  1. The version partition is chosen ([Catalog.ResolveVersion] applies the
//     first-version default, [Catalog.Select] returns its rows)
//  2. [Filter] keeps rows matching every active [Predicates] field
//  3. [Sort] orders the result by one [SortSpec], stably
//
// Each stage allocates its output, so the catalog is never modified.
//
// # Error Handling
//
// Pipeline stages are total and never fail. Load and export failures are
// mapped to user-friendly messages using [MapError].
package core
