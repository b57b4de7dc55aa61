package schemacache

import "go.uber.org/fx"

// FXModule provides the process-wide schema cache as both *Memory and Cache.
var FXModule = fx.Module("schemacache",
	fx.Provide(
		New,
		func(m *Memory) Cache { return m },
	),
)
