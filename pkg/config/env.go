package config

const EnvPrefix = "AURAWAVE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv      = "AURAWAVE_APP_ENV"
	EnvPort        = "AURAWAVE_APP_PORT"
	EnvTimeZone    = "AURAWAVE_TIME_ZONE"
	EnvDBDSN       = "AURAWAVE_DB_DSN"
	EnvDBHost      = "AURAWAVE_DB_HOST"
	EnvDBUser      = "AURAWAVE_DB_USER"
	EnvDBPassword  = "AURAWAVE_DB_PASSWORD"
	EnvDBName      = "AURAWAVE_DB_NAME"
	EnvRedisURL    = "AURAWAVE_REDIS_URL"
	EnvJWTSecret   = "AURAWAVE_JWT_SECRET"
	EnvAdminEmail  = "AURAWAVE_ADMIN_EMAIL"
	EnvAdminPass   = "AURAWAVE_ADMIN_PASSWORD"
	EnvOrderIDBase = "AURAWAVE_ORDER_ID_BASE"
)

var dbPartEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
