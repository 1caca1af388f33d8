package config

const EnvPrefix = "KIARA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"
)
