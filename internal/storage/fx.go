package storage

import "go.uber.org/fx"

var Module = fx.Module("storage",
	fx.Provide(NewUnconfigured),
	fx.Provide(func(s *Unconfigured) ObjectStorage { return s }),
)
