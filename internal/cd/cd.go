// Package cd provides short names for gio layout types.
//
// Dot-import this package in UI code to write widget functions as func(gtx C) D.
package cd

import "gioui.org/layout"

type (
	C = layout.Context
	D = layout.Dimensions
)
