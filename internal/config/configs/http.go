package configs

import "time"

// HTTP defines configuration for the HTTP server.
type HTTP struct {
	// Port is the TCP port the server listens on.
	Port uint16 `env:"PORT" envDefault:"8080" validate:"required"`
	// Transport selects the router: "fiber" serves through go-router, "chi"
	// through net/http.
	Transport string `env:"TRANSPORT" envDefault:"fiber" validate:"oneof=fiber chi"`
	// BasePath prefixes every dashboard route.
	BasePath        string        `env:"BASE_PATH" envDefault:"/admin" validate:"startswith=/"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	ExportLimit     int           `env:"EXPORT_LIMIT" envDefault:"10" validate:"gte=1"`
	EventLimit      int           `env:"EVENT_LIMIT" envDefault:"120" validate:"gte=1"`
	// Metrics serves Prometheus metrics at /metrics.
	Metrics bool `env:"METRICS" envDefault:"true"`
}
