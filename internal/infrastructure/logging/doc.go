// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: sampled JSON output
//   - Development: colored console output at debug level
//
// Each desktop component logs through a named child logger so that
// registry, store, stream and hook output can be filtered apart. WindowID,
// PackageID and ClientID keep field names consistent across components.
//
// Example Usage:
//
//	logger, err := logging.New(logging.ProductionConfig("info"))
//	store := window.NewStore(reg, oracle, binding).
//		WithLogger(logger.Component("store"))
//	logger.Info("window opened", logging.WindowID(1), logging.PackageID("calc"))
package logging
