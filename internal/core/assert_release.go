//go:build !danmakudebug

package core

// Debug reports whether invariant assertions are enabled.
const Debug = false

// Assert is a no-op in release builds; callers clamp the offending value instead.
func Assert(cond bool, format string, args ...any) {}
