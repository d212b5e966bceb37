package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port string }
type DBCfg struct{ DSN string }
type RedisCfg struct{ Addr string }

type SecurityCfg struct {
	JWTSecret       []byte
	TokenTTL        time.Duration
	RateLimitPerMin int
}

type UploadsCfg struct{ Dir string }

type Cfg struct {
	App     AppCfg
	DB      DBCfg
	Redis   RedisCfg
	Sec     SecurityCfg
	Uploads UploadsCfg
}

// Dev reports whether the API should run against the in-memory store.
func (c Cfg) Dev() bool { return c.App.Env == "dev" }

func Load() Cfg {
	// 1) Load .env into process env (if file exists)
	_ = godotenv.Load()

	// 2) Read from env via viper
	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "dev")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("UPLOADS_DIR", "uploads")
	viper.SetDefault("RATE_LIMIT_PER_MIN", 300)

	ttl, err := time.ParseDuration(viper.GetString("TOKEN_TTL"))
	if err != nil || ttl <= 0 {
		log.Fatal().Msg("TOKEN_TTL must be a positive duration")
	}

	cfg := Cfg{
		App: AppCfg{
			Env:  viper.GetString("APP_ENV"),
			Port: viper.GetString("APP_PORT"),
		},
		DB:    DBCfg{DSN: viper.GetString("DB_DSN")},
		Redis: RedisCfg{Addr: viper.GetString("REDIS_ADDR")},
		Sec: SecurityCfg{
			JWTSecret:       []byte(strings.TrimSpace(viper.GetString("JWT_SECRET"))),
			TokenTTL:        ttl,
			RateLimitPerMin: viper.GetInt("RATE_LIMIT_PER_MIN"),
		},
		Uploads: UploadsCfg{Dir: viper.GetString("UPLOADS_DIR")},
	}

	// 3) Fail fast on required settings
	if len(cfg.Sec.JWTSecret) == 0 {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	if cfg.DB.DSN == "" && !cfg.Dev() {
		log.Fatal().Msg("DB_DSN is required outside dev")
	}

	return cfg
}
