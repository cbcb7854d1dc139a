//go:build danmakudebug

package core

import "fmt"

// Debug reports whether invariant assertions are enabled.
const Debug = true

// Assert panics when cond is false. Enabled with -tags danmakudebug.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("danmaku: assertion failed: "+format, args...))
	}
}
