package config

import (
	"time"
)

type Fixtures struct {
	Path string `env:"FIXTURES_PATH"`
}

type Persist struct {
	// FlushInterval bounds how long a burst of changes waits before it is saved.
	FlushInterval time.Duration `env:"PERSIST_FLUSH_INTERVAL" envDefault:"500ms"`
}
