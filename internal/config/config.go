package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	DBDSN   string `env:"DB_DSN" envDefault:"fitnz.db"` // sqlite file in project root
	LogFile string `env:"LOG_FILE" envDefault:"./fitnz.log"`

	// Bounded wait for external payment confirmation. The checkout engine
	// never holds its transaction open while waiting on this.
	PaymentTimeout time.Duration `env:"PAYMENT_TIMEOUT" envDefault:"5s"`
}

func Load() Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s PAYMENT_TIMEOUT=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.PaymentTimeout)
	return cfg
}
