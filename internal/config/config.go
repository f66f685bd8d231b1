package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

type Config struct {
	Env          string             `yaml:"env" env:"ENV" env-default:"local"`
	DSN          string             `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP         HTTPConfig         `yaml:"http"`
	Auth         AuthConfig         `yaml:"auth"`
	Storage      StorageConfig      `yaml:"storage"`
	Redis        RedisConf          `yaml:"redis"`
	Identity     IdentityConfig     `yaml:"identity"`
	ProfileCache ProfileCacheConfig `yaml:"profile_cache"`
}

type HTTPConfig struct {
	Host      string `yaml:"host"`
	Port      string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	BodyLimit string `yaml:"body_limit" env-default:"12M"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	Issuer    string `yaml:"issuer" env-default:"artfeed"`
}

type StorageConfig struct {
	Driver    string      `yaml:"driver" env:"STORAGE_DRIVER" env-default:"local"`
	PublicURL string      `yaml:"public_url" env:"STORAGE_PUBLIC_URL"`
	LocalDir  string      `yaml:"local_dir" env-default:"./uploads"`
	Minio     MinioConfig `yaml:"minio"`
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env-default:"artfeed"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type RedisConf struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"`
}

type IdentityConfig struct {
	BaseURL string        `yaml:"base_url" env:"IDENTITY_BASE_URL"`
	APIKey  string        `yaml:"api_key" env:"IDENTITY_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

// ProfileCacheConfig sets how long resolved author profiles are kept in
// process and in Redis.
type ProfileCacheConfig struct {
	LocalTTL        time.Duration `yaml:"local_ttl" env-default:"1m"`
	SharedTTL       time.Duration `yaml:"shared_ttl" env-default:"10m"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env-default:"5m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	if cfg.Storage.Driver != StorageLocal && cfg.Storage.Driver != StorageMinio {
		panic("unknown storage driver: " + cfg.Storage.Driver)
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
