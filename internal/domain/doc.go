// Package domain models reported domestic well-failure (dry well) data and
// the pure transformations the ETL pipeline applies to it.
//
// # Data Sources
//
// Two inputs describe the same population of well failures:
//
// The point layer is a shapefile digitized by a GIS pass over the reporting
// system. Each feature carries a Drywell_ID attribute (numeric, stored as
// text in the DBF) and a Report_Dat attribute: the date the GIS pass recorded
// the report, as YYYY-MM-DD text.
//
// The shortage workbook is an export from the household water supply shortage
// reporting system. Relevant columns:
//
//	"Drywell ID"                   — numeric identifier shared with the point layer
//	"Shortages"                    — free-text failure category
//	"Approximate Issue Start Date" — when the failure is believed to have begun
//	"Record Creation Date"         — when the report entered the system
//
// The two date columns are renamed issue_date and report_date during
// normalization and parsed to calendar-date granularity; any time-of-day
// component in the workbook is discarded.
//
// # Category Normalization
//
// The Shortages column accumulated ad-hoc phrasings for the same failure
// mode. Three known variants are mapped to the canonical label
// "Dry well (groundwater)" by exact substring substitution (no fuzzy
// matching). The mapping lives in [DefaultSubstitutions] and is configurable.
//
// # Two Report Dates
//
// report_date (workbook "Record Creation Date") and Report_Dat (point layer)
// are independently sourced and intentionally kept distinct: the former is
// the reporting-system intake date, the latter was stamped by the digitizing
// pass. Imputation of a missing issue_date uses report_date before the join
// and Report_Dat after it, which covers points with no workbook match.
//
// # Date Window
//
// Downstream calibration uses reports whose resolved issue_date falls in a
// fixed inclusive year window (2012–2016 for this dataset). A record whose
// issue_date cannot be resolved from any source sorts out of the window and
// is excluded.
package domain
