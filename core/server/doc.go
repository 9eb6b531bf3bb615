// Package server provides the outer transport listener: a graceful net/http
// server with plain and TLS support, environment-based configuration, and
// functional options. It decodes nothing itself; requests are handed to the
// router as-is.
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := srv.Start(ctx, r); err != nil {
//		log.Fatal(err)
//	}
package server
