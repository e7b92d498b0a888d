// Package config loads settings structs from environment variables.
//
// Fields are bound with caarlos0/env struct tags. A .env file in the working
// directory is read once, before the first load, and never overrides
// variables that are already set.
//
//	var busCfg bus.Config
//	if err := config.Load(&busCfg); err != nil {
//		return err
//	}
//
//	var logCfg logger.Config
//	config.MustLoad(&logCfg) // panics on failure, for startup code
//
//	b := bus.New(
//		bus.WithConfig(busCfg),
//		bus.WithLogger(logger.NewFromConfig(logCfg)),
//	)
//
// # Caching
//
// A struct type is parsed from the environment the first time it is loaded.
// Every later Load of the same type copies the cached value, so changes to
// the environment after that point are not seen:
//
//	config.MustLoad(&a) // parses BUS_NAME, BUS_DEFAULT_PRIORITY
//	config.MustLoad(&b) // same type, cached copy
//
// Failed loads are not cached.
package config
