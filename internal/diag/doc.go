// Package diag defines the diagnostic model shared by the loader, the
// translator and the driver.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced while
//     loading a signal graph or translating it to Wagner IR.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – short human oriented text.
//   - Node – the signal node the finding is about; signal.NoNodeID when the
//     finding concerns a whole file.
//   - Notes – optional secondary nodes/messages.
//
// Translation never fails because of a diagnostic. An unsupported construct
// still yields an Error leaf in the IR; the diagnostic is the side channel
// that tells the caller it happened.
//
// # Emitting diagnostics
//
// Phases hold a diag.Reporter. Use ReportWarning/ReportInfo/ReportError to
// build a record, chain WithNote, then Emit. BagReporter collects into a Bag,
// which supports sorting, deduplication and a stable one-line rendering.
//
// Rendering for terminals and JSON lives in internal/diagfmt.
package diag
