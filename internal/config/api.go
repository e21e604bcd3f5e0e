package config

import (
	"time"
)

type API struct {
	Listen       string        `env:"API_HTTP_LISTEN" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"API_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"API_WRITE_TIMEOUT" envDefault:"10s"`
}

type Prometheus struct {
	Listen string `env:"PROMETHEUS_LISTEN" envDefault:":2112"`
}

type Health struct {
	Listen string `env:"HEALTH_LISTEN" envDefault:":3000"`
}
