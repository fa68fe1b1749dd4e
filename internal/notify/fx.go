package notify

import "go.uber.org/fx"

var Module = fx.Module("notify",
	fx.Provide(NewOutbox),
	fx.Provide(func(n *LogNotifier) Notifier { return n }),
	fx.Provide(NewLogNotifier),
)
