package config

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

type DB struct {
	Driver             string `env:"DB_DRIVER" envDefault:"postgres"`
	DSN                string `env:"DB_DSN"`
	MaxOpenConnections int    `env:"DB_MAX_OPEN_CONNECTIONS" envDefault:"10"`
	Debug              bool   `env:"DB_DEBUG" envDefault:"false"`
}
