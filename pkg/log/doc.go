// Package log provides the logging abstraction used by plog components.
//
// The client and the follower log through the Logger interface so embedding
// applications can route plog output into their own logging. A zerolog
// adapter is provided for the CLI and a no-op logger is the library default.
//
//	logger := log.NewZerologAdapter(os.Stderr, "debug")
//	c, err := client.New(cfg, client.WithLogger(logger))
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package log
