package config

// EnvPrefix is passed to envconfig; individual keys below carry it explicitly
// so tests and deployment manifests can reference them verbatim.
const EnvPrefix = "TAILORWARE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "TAILORWARE_APP_ENV"
	EnvPort     = "TAILORWARE_APP_PORT"
	EnvLogLevel = "TAILORWARE_LOG_LEVEL"

	EnvDBDSN  = "TAILORWARE_DB_DSN"
	EnvDBHost = "TAILORWARE_DB_HOST"
	EnvDBUser = "TAILORWARE_DB_USER"
	EnvDBName = "TAILORWARE_DB_NAME"

	EnvRedisURL = "TAILORWARE_REDIS_URL"

	EnvJWTSecret              = "TAILORWARE_JWT_SECRET"
	EnvJWTIssuer              = "TAILORWARE_JWT_ISSUER"
	EnvJWTExpMins             = "TAILORWARE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "TAILORWARE_REFRESH_TOKEN_TTL_MINUTES"

	EnvGCPProjectID      = "TAILORWARE_GCP_PROJECT_ID"
	EnvGCSBucket         = "TAILORWARE_GCS_BUCKET_NAME"
	EnvGCSUploadExpiry   = "TAILORWARE_GCS_UPLOAD_URL_EXPIRY"
	EnvGCSDownloadExpiry = "TAILORWARE_GCS_DOWNLOAD_URL_EXPIRY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
