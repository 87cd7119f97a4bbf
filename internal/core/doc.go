// Package core provides the domain logic for student score sheets.
//
// It is independent of any transport: the web API, the CLI and tests all
// call the same functions. Nothing in this package logs or performs I/O
// beyond reading the io.Reader it is handed.
//
// # Pipeline
//
// A load runs in three steps:
//
//   - [Parse] splits text into a [RawTable]. It never fails and does not
//     interpret quotes, so a raw grid is always available for inspection.
//   - [Map] converts every data row into a [Student] and returns an
//     immutable [Dataset]. It is all-or-nothing: one short row fails the
//     whole table with a [*RowError]. [MapWithOptions] can skip short rows
//     instead.
//   - Statistics such as [AverageOf], [PassRates], [Summarize] and
//     [Correlation] are pure functions of a Dataset and a [Selector].
//
// [Snapshot] bundles the three for one file so callers can keep the raw
// table even when mapping fails.
//
// # Score Fields
//
// The three score columns are registered at init time and looked up by key:
//
//	f, err := core.LookupField("potions")
//	rates, err := core.PassRates(ds, f.Select, core.DefaultBuckets())
//
// # Error Handling
//
// Errors are sentinels matched with errors.Is, plus [RowError] for row-level
// detail. [MapError] turns any of them into a [UserMessage] with a stable
// code for display.
package core
