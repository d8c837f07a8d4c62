// Package tui renders profile datasets as an interactive, windowed grid.
//
// GridModel is the controller: it owns scroll state, the cursor and the
// selection, and draws only the cells inside the current grid.Window.
// AppModel wraps it with a title bar, status footer, go-to-row prompt,
// reload and export. RenderPlain draws the same window once, without
// styling, for non-interactive output.
package tui
