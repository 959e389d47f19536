package config

import "os"

type Config struct {
	AppPort string
	AppEnv  string

	DataFile string // xlsx container holding the four tables

	JWTSecret string

	AdminID     string
	AdminPW     string // plain comparison, used when AdminPWHash is unset
	AdminPWHash string // bcrypt hash; takes precedence over AdminPW
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	return &Config{
		AppPort: get("APP_PORT", "8080"),
		AppEnv:  get("APP_ENV", "dev"),

		DataFile: get("DATA_FILE", "data.xlsx"),

		JWTSecret: get("JWT_SECRET", "dev-secret"),

		AdminID:     get("ADMIN_ID", "admin"),
		AdminPW:     get("ADMIN_PW", "admin123"),
		AdminPWHash: get("ADMIN_PW_HASH", ""),
	}
}
