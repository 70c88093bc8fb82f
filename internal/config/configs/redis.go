package configs

import "time"

// Redis configures the theme preference store. An empty Addr keeps
// preferences in memory.
type Redis struct {
	Addr      string        `env:"ADDR"`
	Password  string        `env:"PASSWORD"`
	DB        int           `env:"DB" envDefault:"0" validate:"gte=0"`
	KeyPrefix string        `env:"KEY_PREFIX" envDefault:"campaign-dashboard:"`
	TTL       time.Duration `env:"TTL" envDefault:"0s" validate:"gte=0"`
}

// Enabled reports whether a Redis address is configured.
func (r Redis) Enabled() bool {
	return r.Addr != ""
}
