package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Images        ImageConfig
	AuthRateLimit AuthRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TAILORWARE_APP_ENV" required:"true"`
	Port         string `envconfig:"TAILORWARE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TAILORWARE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TAILORWARE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TAILORWARE_DB_DSN"`
	Driver string `envconfig:"TAILORWARE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TAILORWARE_DB_HOST"`
	LegacyPort     int    `envconfig:"TAILORWARE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TAILORWARE_DB_USER"`
	LegacyPassword string `envconfig:"TAILORWARE_DB_PASSWORD"`
	LegacyName     string `envconfig:"TAILORWARE_DB_NAME"`
	LegacySSLMode  string `envconfig:"TAILORWARE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TAILORWARE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TAILORWARE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TAILORWARE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TAILORWARE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TAILORWARE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TAILORWARE_REDIS_ADDR"`
	Password     string        `envconfig:"TAILORWARE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TAILORWARE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TAILORWARE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TAILORWARE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TAILORWARE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TAILORWARE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TAILORWARE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"TAILORWARE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"TAILORWARE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"TAILORWARE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"TAILORWARE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TAILORWARE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TAILORWARE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TAILORWARE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TAILORWARE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TAILORWARE_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TAILORWARE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TAILORWARE_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"TAILORWARE_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"TAILORWARE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"TAILORWARE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"TAILORWARE_GCS_BUCKET_NAME" required:"true"`
	UploadURLExpiry   time.Duration `envconfig:"TAILORWARE_GCS_UPLOAD_URL_EXPIRY" required:"true"`
	DownloadURLExpiry time.Duration `envconfig:"TAILORWARE_GCS_DOWNLOAD_URL_EXPIRY" required:"true"`
}

type ImageConfig struct {
	MaxUploadMB int `envconfig:"TAILORWARE_MAX_UPLOAD_MB" default:"20"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"TAILORWARE_LOGIN_RATE_WINDOW" default:"5m"`
	LoginIPLimit    int           `envconfig:"TAILORWARE_LOGIN_RATE_IP_LIMIT" default:"20"`
	LoginEmailLimit int           `envconfig:"TAILORWARE_LOGIN_RATE_EMAIL_LIMIT" default:"8"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
