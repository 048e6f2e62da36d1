// Package tasks runs long playlist operations with progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] resolves many playlist URLs with a bounded worker pool and writes one
// file per playlist in any [formatter] format, plus an export_manifest.json that records what
// succeeded and what failed. A failing playlist never stops the others.
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on an optional channel. Sends use select with default
// so a slow or absent reader never blocks the export.
package tasks
