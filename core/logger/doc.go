// Package logger builds slog loggers and provides attribute helpers with
// consistent key names.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("game"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("bus ready",
//		logger.Component("bus"),
//		logger.Count("channels", 4),
//	)
//
// Loggers can also be built from environment configuration:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg)
//
// # Context-Aware Logging
//
// Context extractors pull attributes out of the context of every record:
//
//	log := logger.New(
//		logger.WithProduction("game"),
//		logger.WithContextExtractors(bus.ContextExtractors()...),
//	)
//
//	log.InfoContext(ctx, "handled") // includes channel and envelope_id when present
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, which slog drops,
// so they can be used without nil checks:
//
//	log.Error("handler failed",
//		logger.Channel("Gameplay"),
//		logger.PayloadType("PlayerMoved"),
//		logger.Error(err),
//	)
package logger
