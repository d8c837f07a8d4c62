// Package grid implements the geometry and selection core of the windowed
// profile grid.
//
// Everything here is a pure function of its inputs or a small owned store:
//   - Layout resolves per-column widths and cumulative x-offsets from a ColumnSpec
//   - CalculateWindow maps a scroll offset and viewport size to the inclusive
//     row and column ranges that must be rendered
//   - SelectionStore tracks selected cells addressed by CellKey
//
// Units are abstract: the terminal front end uses character cells for widths
// and lines for row heights, but nothing in this package depends on that.
// Rendering lives in internal/tui.
package grid
