// Package domain models fish stock status records and the provincial
// boundary polygons they are mapped onto.
//
// # Data Sources
//
// Records come from the classified stock assessment table (one row per
// year, province and species group). The table is produced by analysts in
// a spreadsheet and exported as CSV or XLSX, so column names drift between
// releases ("Tahun" vs "tahun ", "Kelompok Ikan" vs "species_group"). The
// dataset package maps the known spellings onto [Record] fields.
//
// Regions come from a GeoJSON FeatureCollection of Indonesian provinces.
// Different boundary releases name the province attribute differently:
//
//	PROVINSI   BIG administrative boundaries
//	WADMPR     RBI "wilayah administrasi provinsi" code tables
//	KD_PROV    BPS code tables (matched by the broader "prov" pass)
//	NAME_1     GADM (no province hint, rejected)
//
// The attribute is discovered at query time by [ResolveProvinceKey].
//
// # Join Keys
//
// Province names are compared after trimming and upper-casing on both
// sides ([NormalizeKey]). Species group names are only trimmed; they are
// displayed as typed in the source table.
//
// # Status Labels
//
// Stock status follows the Indonesian fisheries assessment vocabulary:
//
//	UNDERFISHING             green   stock under-exploited
//	UNCERTAIN                gray    assessment inconclusive
//	DATA DEFICIENT           gray    not enough data
//	OVERFISHING              red     exploitation above MSY
//	GROWTH OVERFISHING       yellow  fish caught before reaching size
//	RECRUITMENT OVERFISHING  orange  spawning stock depleted
//
// Labels are matched case-insensitively. Anything else, including a missing
// status, renders in [FallbackColor] and missing statuses are shown as
// [NoDataLabel].
//
// # Population Index
//
// TP_C and TP_E are the catch-based and effort-based utilisation indices.
// The dashboard "population" of a row is their mean; a species card uses
// the mean of the per-column means over a year, which matches the way the
// assessment team reports it.
package domain
