package clock

import "go.uber.org/fx"

// Module provides the wall clock; tests construct Fixed directly.
var Module = fx.Module("clock",
	fx.Provide(func() Clock { return SystemClock{} }),
)
