package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"prod"`
	ErrorLog    string `yaml:"error_log" env:"ERROR_LOG" env-default:"errors.log"`
	HTTPServer  `yaml:"http_server"`
	DB          DB       `yaml:"db"`
	Session     Session  `yaml:"session"`
	Report      Report   `yaml:"report"`
	FrontendDir string   `yaml:"frontend_dir" env:"FRONTEND_DIR" env-default:"./frontend-dist"`
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:8081,http://localhost:5173"`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type DB struct {
	User      string `yaml:"db_user" env:"DB_USER" env-required:"true"`
	Password  string `yaml:"db_password" env:"DB_PASSWORD"`
	Host      string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	Port      int    `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	Name      string `yaml:"db_name" env:"DB_NAME" env-required:"true"`
	ParseTime bool   `yaml:"parse_time" env-default:"true"`
}

type Session struct {
	Key    string        `yaml:"key" env:"SESSION_KEY"`
	Name   string        `yaml:"name" env-default:"mes-console"`
	Domain string        `yaml:"domain"`
	Secure bool          `yaml:"secure" env-default:"false"`
	MaxAge time.Duration `yaml:"max_age" env-default:"720h"`
}

type Report struct {
	// Identity namespaces the persisted report state inside the session.
	Identity  string `yaml:"identity" env-default:"monthly"`
	Locale    string `yaml:"locale" env-default:"ru-RU"`
	DayWidth  int    `yaml:"day_width" env-default:"56"`
	WeekWidth int    `yaml:"week_width" env-default:"72"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
