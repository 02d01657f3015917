//go:build tools

// This file pins the gogio packaging tool used to build the Android, iOS and
// browser versions of scicalc:
//
//	go run gioui.org/cmd/gogio -target android ./scicalc
package tools

import (
	_ "gioui.org/cmd/gogio"
)
