// Package core provides the ingestion and export engine for veterinary
// service records.
//
// This package holds all domain logic independent of any transport or
// storage layer. It can be used by web handlers, CLI tools, or tests
// without modification; persistence is reached through the [Store]
// interface.
//
// # Architecture
//
// The engine is organized in dependency order, leaves first:
//
//   - Field Resolver: [Resolve] finds a semantic field in a [RawRow] from a
//     prioritized [FieldAliasSet], with a case-folded fallback pass.
//   - Type Coercers: [ParseDate], [ToInt], [ToFloat], [NormalizeEnum],
//     [NormalizeBool] and [SplitList] turn loose cell values into typed values.
//   - Client Resolver: [ClientResolver] finds or creates the [ClientRef] a
//     record refers to.
//   - Serial Allocator: [SerialAllocator] hands out a unique human-facing
//     serial per record.
//   - Row Processors: one [KindDefinition] per record kind, registered at init
//     time from the kinds package.
//   - Batch Engine: [Engine] drives rows through a processor in fixed-size
//     chunks and aggregates a [BatchResult].
//   - Export Formatter: [BuildTable], [WriteCSV] and [WriteExcel] flatten
//     typed records back into bilingual tabular output.
//
// # Kind Registry
//
// Kinds are registered at init time using [Register]:
//
//	core.Register(core.KindDefinition{
//	    Info:      core.KindInfo{Key: core.KindVaccination, Label: "Vaccination", SerialPrefix: "VAC"},
//	    NewRecord: func() core.Record { return &core.Vaccination{} },
//	    Process:   processVaccination,
//	})
//
// # Error Handling
//
// Row-scoped failures ([ErrFieldMissing], [ErrInvalidDate],
// [ErrClientIdentityMissing], [ErrPersistenceValidation]) are captured by the
// batch engine into the result; [ErrParse] and [ErrNoActingUser] abort a
// batch before any row is attempted. Technical errors are mapped to
// user-facing messages with support codes by [MapError].
package core
