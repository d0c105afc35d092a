package core

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendDatabase = "database"
	BackendFile     = "file"
)

// Database engines
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

type (
	Config struct {
		Env          string
		Build        string
		Debug        bool
		RollbarToken string
		Storage      StorageConfig
		Database     DatabaseConfig
		Server       ServerConfig
	}

	StorageConfig struct {
		Backend          string
		FileDir          string
		EnforceIntegrity bool
	}

	DatabaseConfig struct {
		Engine     string
		Path       string
		Host       string
		Port       int
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}

	ServerConfig struct {
		Host            string
		ShutdownTimeout time.Duration
	}
)

// Address returns the "host:port" of a server database.
func (dbc DatabaseConfig) Address() string {
	return net.JoinHostPort(dbc.Host, strconv.Itoa(dbc.Port))
}

func (conf *Config) String() string {
	return fmt.Sprintf("env=%s build=%s backend=%s engine=%s", conf.Env, conf.Build, conf.Storage.Backend, conf.Database.Engine)
}

// NewConfig loads the configuration from defaults, the optional `config/.env.<env>` file and the environment.
// Env vars are prefixed with SIMS_ and use `_` as separator, eg. SIMS_DATABASE_ENGINE=postgres.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("env", "DEV")
	v.SetDefault("build", "dev")
	v.SetDefault("debug", true)
	v.SetDefault("rollbarToken", "")
	v.SetDefault("storage.backend", BackendDatabase)
	v.SetDefault("storage.file.dir", "data")
	v.SetDefault("storage.file.enforceIntegrity", false)
	v.SetDefault("database.engine", EngineSQLite)
	v.SetDefault("database.path", "sims.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "sims")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("server.host", ":8000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	v.SetEnvPrefix("sims")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	env := strings.ToUpper(os.Getenv("SIMS_ENV")) // DEV (local; default), TEST, PROD
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		RollbarToken: v.GetString("rollbarToken"),
		Storage: StorageConfig{
			Backend:          strings.ToLower(v.GetString("storage.backend")),
			FileDir:          v.GetString("storage.file.dir"),
			EnforceIntegrity: v.GetBool("storage.file.enforceIntegrity"),
		},
		Database: DatabaseConfig{
			Engine:     strings.ToLower(v.GetString("database.engine")),
			Path:       v.GetString("database.path"),
			Host:       v.GetString("database.host"),
			Port:       v.GetInt("database.port"),
			Name:       v.GetString("database.name"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			DisableTLS: v.GetBool("database.disableTLS"),
		},
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
	}
}
