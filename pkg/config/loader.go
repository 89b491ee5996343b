package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// dotenvOnce guards the one-time .env read. A missing file is fine;
// production processes carry their environment directly.
var dotenvOnce sync.Once

// Load parses environment variables into the provided struct using its
// env tags. The default .env file is read once per process before the
// first parse; values already present in the environment win.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParse, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Use it for
// configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: load failed: %v", err))
	}
}
