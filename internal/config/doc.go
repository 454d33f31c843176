// Package config provides environment-based configuration for the
// kernel library.
//
// Configuration only covers ambient concerns: log level and diagnostic
// tracing. Object semantics such as buffer capacities are compile-time
// constants and deliberately not configurable here.
package config
