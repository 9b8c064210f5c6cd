package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendSQL    = "sql"
)

type Config struct {
	Env    string `yaml:"env" env:"ENV" env-default:"local"`
	Listen struct {
		BindIP    string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port      string `yaml:"port" env:"PORT" env-default:"9100"`
		Timeout   int    `yaml:"timeout" env-default:"15"`
		PublicURL string `yaml:"public_url" env:"PUBLIC_URL" env-default:"http://localhost:3000"`
	} `yaml:"listen"`
	Storage struct {
		Backend    string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"memory"`
		AtomicPair bool   `yaml:"atomic_pair" env-default:"false"`
	} `yaml:"storage"`
	Mongo struct {
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"schoolpick"`
	} `yaml:"mongo"`
	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"127.0.0.1:6379"`
		Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
		DB       int    `yaml:"db" env-default:"0"`
		Prefix   string `yaml:"prefix" env-default:"schoolpick:"`
	} `yaml:"redis"`
	SQL struct {
		Driver string `yaml:"driver" env:"SQL_DRIVER" env-default:"sqlite"`
		DSN    string `yaml:"dsn" env:"SQL_DSN" env-default:"schoolpick.db"`
	} `yaml:"sql"`
	Kakao struct {
		RestApiKey string `yaml:"rest_api_key" env:"KAKAO_REST_API_KEY" env-default:""`
		MapApiKey  string `yaml:"map_api_key" env:"KAKAO_MAP_API_KEY" env-default:""`
		BaseURL    string `yaml:"base_url" env-default:"https://apis-navi.kakaomobility.com"`
		Timeout    int    `yaml:"timeout" env-default:"10"`
		Retries    int    `yaml:"retries" env-default:"0"`
	} `yaml:"kakao"`
	Visitor struct {
		CookieName string `yaml:"cookie_name" env-default:"visitor_id"`
		MaxAgeDays int    `yaml:"max_age_days" env-default:"365"`
		Secure     bool   `yaml:"secure" env-default:"false"`
	} `yaml:"visitor"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
		if err = instance.validate(); err != nil {
			log.Fatal(err)
		}
	})
	return instance
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendMongo, BackendRedis, BackendSQL:
	default:
		return fmt.Errorf("unsupported storage backend: %q", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendSQL && c.SQL.Driver != "sqlite" && c.SQL.Driver != "postgres" {
		return fmt.Errorf("unsupported sql driver: %q", c.SQL.Driver)
	}
	return nil
}
