package config

type App struct {
	Log        Log
	DB         DB
	Nats       Nats
	API        API
	Prometheus Prometheus
	Health     Health
	Vault      Vault
	Fixtures   Fixtures
	Persist    Persist
}
