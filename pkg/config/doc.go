// Package config loads configuration structs from environment
// variables, with optional .env file support for development.
//
// Annotate a struct with env tags and hand a pointer to [Load]:
//
//	type ServeConfig struct {
//	    Addr       string        `env:"MELBA_ADDR" envDefault:":8080"`
//	    MaxVisible int           `env:"MELBA_MAX_VISIBLE" envDefault:"5"`
//	    Duration   time.Duration `env:"MELBA_DURATION" envDefault:"5s"`
//	}
//
//	var cfg ServeConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// The first Load in a process also reads the default .env file from the
// working directory when one exists; real environment variables win
// over .env entries. Parsing is delegated to caarlos0/env, so its full
// tag syntax (required, expand, custom separators) applies.
package config
