// Package datatable implements a sortable, filterable, paginated table.
//
// Table is pure state. Rows pass through three stages, in order:
//
//  1. filter: rows whose filter column contains the filter text
//     (case-insensitive), or matches it as a fuzzy subsequence;
//  2. sort: a stable sort on one column using Comparator, ascending or
//     descending, or source order when no sort is active;
//  3. paginate: the slice belonging to the current page.
//
// Model draws a Table with Bubble Tea and maps keys and mouse clicks onto
// the table's operations. The page strip under the rows is a
// pagination.Strip wired to the table's page methods.
package datatable
