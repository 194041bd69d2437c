// Package config предоставляет структуры и функции для загрузки конфигурации приложения.
//
// Значения читаются один раз при старте из переменных окружения (и файла .env),
// либо из YAML-файла, путь к которому задан в CONFIG_PATH. Полученный *Config
// далее передаётся в конструкторы компонентов и не изменяется.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	// PolicyAnyAuthenticated пускает в дашборд любого вошедшего пользователя.
	PolicyAnyAuthenticated = "any_authenticated"
	// PolicyRoleRequired пускает только пользователей с ролью RequiredRole.
	PolicyRoleRequired = "role_required"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"APP_ENV" env-default:"production"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	UploadFolder            string `yaml:"upload_folder" env:"UPLOAD_FOLDER" env-default:"uploads"`
	MaxUploadSize           int64  `yaml:"max_upload_size" env:"MAX_UPLOAD_SIZE" env-default:"10485760"`
	Database                `yaml:"database"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Mail                    `yaml:"mail"`
	Session                 `yaml:"session"`
	Access                  `yaml:"access"`
	RateLimit               `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	Port        string        `yaml:"port" env:"PORT" env-default:"8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Database описывает подключение к PostgreSQL по отдельным параметрам.
// Используется, если DATABASE_URL не задан.
type Database struct {
	Host                   string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	DBPort                 string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	DBUser                 string `yaml:"user" env:"DB_USER"`
	DBPassword             string `yaml:"password" env:"DB_PASS"`
	Name                   string `yaml:"name" env:"DB_NAME"`
	SSLMode                string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	InstanceConnectionName string `yaml:"instance_connection_name" env:"INSTANCE_CONNECTION_NAME"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT" env-default:"3s"`
}

// Mail структура для настройки SMTP-релея
type Mail struct {
	SMTPHost        string        `yaml:"server" env:"MAIL_SERVER" env-default:"smtp.gmail.com"`
	SMTPPort        string        `yaml:"port" env:"MAIL_PORT" env-default:"587"`
	UseTLS          bool          `yaml:"use_tls" env:"MAIL_USE_TLS" env-default:"true"`
	UseSSL          bool          `yaml:"use_ssl" env:"MAIL_USE_SSL" env-default:"false"`
	SMTPUser        string        `yaml:"username" env:"MAIL_USERNAME"`
	SMTPPass        string        `yaml:"password" env:"MAIL_PASSWORD"`
	SenderName      string        `yaml:"sender_name" env:"MAIL_SENDER_NAME" env-default:"Nutriêde Website"`
	Recipient       string        `yaml:"recipient" env:"MAIL_RECIPIENT" env-default:"nutriede@nutriede.com.br"`
	MailDialTimeout time.Duration `yaml:"dial_timeout" env:"MAIL_DIAL_TIMEOUT" env-default:"10s"`
}

// Session структура для работы с cookie сессии
type Session struct {
	SecretKey  string        `yaml:"secret_key" env:"SECRET_KEY"`
	TokenTTL   time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"720h"`
	CookieName string        `yaml:"cookie_name" env:"SESSION_COOKIE" env-default:"nutriede_session"`
	Secure     bool          `yaml:"secure" env:"SESSION_SECURE" env-default:"true"`
}

// Access задаёт политику доступа к внутреннему разделу.
type Access struct {
	Policy       string `yaml:"policy" env:"ACCESS_POLICY" env-default:"any_authenticated"`
	RequiredRole string `yaml:"required_role" env:"ACCESS_REQUIRED_ROLE" env-default:"manager"`
}

// RateLimit ограничивает частоту POST-запросов форм.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"1"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"5"`
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает .env (если он есть), затем YAML из CONFIG_PATH или переменные окружения.
func Load() (*Config, error) {
	const op = "config.Load"

	// .env необязателен: в Cloud Run переменные приходят из окружения.
	_ = godotenv.Load()

	var cfg Config
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cfg.SecretKey == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cfg.SecretKey = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	switch c.Policy {
	case PolicyAnyAuthenticated:
	case PolicyRoleRequired:
		if c.RequiredRole == "" {
			return errors.New("access policy role_required needs ACCESS_REQUIRED_ROLE")
		}
	default:
		return fmt.Errorf("unknown access policy %q", c.Policy)
	}
	if c.UseTLS && c.UseSSL {
		return errors.New("MAIL_USE_TLS and MAIL_USE_SSL are mutually exclusive")
	}
	if c.MaxUploadSize <= 0 {
		return errors.New("MAX_UPLOAD_SIZE must be positive")
	}
	return nil
}

// Address возвращает адрес, на котором слушает HTTP-сервер.
func (c *Config) Address() string {
	return ":" + c.Port
}

// RoleRequired сообщает, включена ли проверка роли.
func (a Access) RoleRequired() bool {
	return a.Policy == PolicyRoleRequired
}

// DSN возвращает строку подключения к PostgreSQL. DATABASE_URL имеет приоритет;
// при заданном INSTANCE_CONNECTION_NAME используется unix-сокет Cloud SQL.
func (c *Config) DSN() string {
	if c.StorageConnectionString != "" {
		return c.StorageConnectionString
	}

	host := c.Host
	if c.InstanceConnectionName != "" {
		host = "/cloudsql/" + c.InstanceConnectionName
	}

	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	if c.InstanceConnectionName != "" {
		// pgx принимает путь к сокету через параметр host
		q.Set("host", host)
		u.RawQuery = q.Encode()
	} else {
		u.Host = net.JoinHostPort(host, c.DBPort)
	}
	return u.String()
}

func randomSecret() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage: %s\n"+
			"MigrationsPath: %s\n"+
			"UploadFolder: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  Password: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Mail:\n"+
			"  Server: %s:%s\n"+
			"  TLS: %t SSL: %t\n"+
			"  Username: %s\n"+
			"  Password: %s\n"+
			"  Recipient: %s\n"+
			"Session:\n"+
			"  SecretKey: %s\n"+
			"  TTL: %s\n"+
			"Access: %s (%s)\n",
		c.Env,
		mask(c.DSN()),
		c.MigrationsPath,
		c.UploadFolder,
		c.AddressRedis,
		mask(c.RedisConnection.Password),
		c.DB,
		c.Address(),
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.SMTPHost, c.SMTPPort,
		c.UseTLS, c.UseSSL,
		c.SMTPUser,
		mask(c.SMTPPass),
		c.Recipient,
		mask(c.SecretKey),
		c.TokenTTL,
		c.Policy, c.RequiredRole,
	)
}
