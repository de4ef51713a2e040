// Package tabular is the flat-file sink and source for collected data.
//
// Records keep their cells in insertion order, so exported CSV columns
// are stable run to run. Writing always overwrites the target file;
// reading supports both CSV exports and XLSX workbooks.
package tabular
