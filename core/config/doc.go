// Package config provides type-safe environment variable loading with
// per-type caching. A .env file, when present, is loaded once on first use;
// parsing into struct fields is handled by the caarlos0/env library.
//
// Basic usage:
//
//	type ServerConfig struct {
//		Addr        string        `env:"SERVER_ADDR" envDefault:":8080"`
//		ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Each configuration type is parsed only once per process; subsequent Load
// calls for the same type return the cached value.
package config
