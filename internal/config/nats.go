package config

import (
	"fmt"
	"time"
)

const serviceName = "dealboard"

type Nats struct {
	Enabled          bool          `env:"NATS_ENABLED" envDefault:"true"`
	URL              string        `env:"NATS_URL" envDefault:"nats://127.0.0.1:4222"`
	MaxReconnects    int           `env:"NATS_MAX_RECONNECTS" envDefault:"10"`
	ReconnectTimeout time.Duration `env:"NATS_RECONNECT_TIMEOUT" envDefault:"10s"`
	SubjectPrefix    string        `env:"NATS_SUBJECT_PREFIX" envDefault:"dealboard"`
}

// GenerateGroupName builds the queue group shared by every replica of the service.
func GenerateGroupName(name string) string {
	return fmt.Sprintf("%s.%s", serviceName, name)
}
