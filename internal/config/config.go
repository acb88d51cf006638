package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Debug   bool    `yaml:"debug" env:"DEBUG" env-default:"false"`
	Storage string  `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Server  Server  `yaml:"server"`
	DB      DB      `yaml:"db"`
	Cache   Cache   `yaml:"cache"`
	Limiter Limiter `yaml:"limiter"`
	Tasks   Tasks   `yaml:"tasks"`
}

type Server struct {
	Port string `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	Host string `yaml:"host" env:"SERVER_HOST" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"2s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"2s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type DB struct {
	Dsn             string        `yaml:"dsn" env:"DB_DSN"`
	MaxConns        int           `yaml:"max_conns" env-default:"25"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
}

type Cache struct {
	Enabled bool          `yaml:"enabled" env:"CACHE_ENABLED" env-default:"false"`
	Addr    string        `yaml:"addr" env:"CACHE_ADDR" env-default:"localhost:6379"`
	TTL     time.Duration `yaml:"ttl" env-default:"30s"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled" env-default:"false"`
	Rps     float64 `yaml:"rps" env-default:"20"`
	Burst   int     `yaml:"burst" env-default:"5"`
}

type Tasks struct {
	MaxWorkers   int `yaml:"max_workers" env-default:"2"`
	MaxQueueSize int `yaml:"max_queue_size" env-default:"64"`
}

func MustLoad(configPath string) *Config {
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic(fmt.Errorf("config file %s not found", configPath))
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic(err)
	}
	if cfg.Storage == StoragePostgres && cfg.DB.Dsn == "" {
		panic(fmt.Errorf("db.dsn is required when storage is %q", StoragePostgres))
	}
	return &cfg
}
