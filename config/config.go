package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultJWTSecret signs tokens when JWT_SECRET is unset in dev mode.
const DefaultJWTSecret = "dev-secret-change-me"

type AppConfig struct {
	Port     string
	Timezone string
	DBPath   string
	LogLevel string

	JWTSecret    string
	JWTSecretSet bool
	TokenTTL     time.Duration
	OTPDevCode   string
	OTPTTL       time.Duration

	RedisAddr     string
	RedisPassword string
	AMQPURL       string

	YieldAPIURL      string
	YieldConfigXLSX  string
	YieldFactorsYAML string
	LocationsYAML    string
	PincodeAPIURL    string
	GeocodeAPIURL    string

	NewsAllowedDomains []string

	AdminPhone       string
	AdminPassword    string
	DevAdminFallback bool

	// set when .env exists but could not be parsed
	EnvFileErr error
}

func Load() AppConfig {
	var envErr error
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		envErr = err
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	dur := func(k string, def time.Duration) time.Duration {
		if d, err := time.ParseDuration(get(k, "")); err == nil && d > 0 {
			return d
		}
		return def
	}
	flag := func(k string, def bool) bool {
		if b, err := strconv.ParseBool(get(k, "")); err == nil {
			return b
		}
		return def
	}

	cfg := AppConfig{
		Port:     get("PORT", "8080"),
		Timezone: get("TZ", "Asia/Kolkata"),
		DBPath:   get("DB_PATH", "alphafarm.db"),
		LogLevel: get("LOG_LEVEL", "info"),

		JWTSecret:    get("JWT_SECRET", DefaultJWTSecret),
		JWTSecretSet: os.Getenv("JWT_SECRET") != "",
		TokenTTL:     dur("TOKEN_TTL", 7*24*time.Hour),
		OTPDevCode:   get("OTP_DEV_CODE", ""),
		OTPTTL:       dur("OTP_TTL", 5*time.Minute),

		RedisAddr:     get("REDIS_ADDR", ""),
		RedisPassword: get("REDIS_PASSWORD", ""),
		AMQPURL:       get("AMQP_URL", ""),

		YieldAPIURL:      get("YIELD_API_URL", ""),
		YieldConfigXLSX:  get("YIELD_CONFIG_XLSX", ""),
		YieldFactorsYAML: get("YIELD_FACTORS_YAML", ""),
		LocationsYAML:    get("LOCATIONS_YAML", ""),
		PincodeAPIURL:    get("PINCODE_API_URL", "https://api.postalpincode.in/pincode/"),
		GeocodeAPIURL:    get("GEOCODE_API_URL", "https://nominatim.openstreetmap.org/reverse"),

		NewsAllowedDomains: splitList(get("NEWS_ALLOWED_DOMAINS", "thehindu.com,krishijagran.com,pib.gov.in")),

		AdminPhone:       get("ADMIN_PHONE", ""),
		AdminPassword:    get("ADMIN_PASSWORD", ""),
		DevAdminFallback: flag("DEV_ADMIN_FALLBACK", false),

		EnvFileErr: envErr,
	}
	return cfg
}

// DevMode reports whether a development shortcut is switched on.
func (c AppConfig) DevMode() bool {
	return c.OTPDevCode != "" || c.DevAdminFallback
}

// Validate rejects configs that would run production on dev defaults.
func (c AppConfig) Validate() error {
	if !c.JWTSecretSet && !c.DevMode() {
		return fmt.Errorf("JWT_SECRET must be set unless OTP_DEV_CODE or DEV_ADMIN_FALLBACK is enabled")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

// Fields returns the config as log fields with secrets masked.
func (c AppConfig) Fields() []zap.Field {
	return []zap.Field{
		zap.String("port", c.Port),
		zap.String("tz", c.Timezone),
		zap.String("db_path", c.DBPath),
		zap.String("log_level", c.LogLevel),
		zap.String("jwt_secret", mask(c.JWTSecret)),
		zap.Duration("token_ttl", c.TokenTTL),
		zap.Bool("otp_dev_mode", c.OTPDevCode != ""),
		zap.Duration("otp_ttl", c.OTPTTL),
		zap.String("redis_addr", c.RedisAddr),
		zap.Bool("amqp", c.AMQPURL != ""),
		zap.String("yield_api_url", c.YieldAPIURL),
		zap.String("yield_config_xlsx", c.YieldConfigXLSX),
		zap.String("yield_factors_yaml", c.YieldFactorsYAML),
		zap.String("locations_yaml", c.LocationsYAML),
		zap.Strings("news_allowed_domains", c.NewsAllowedDomains),
		zap.String("admin_phone", c.AdminPhone),
		zap.String("admin_password", mask(c.AdminPassword)),
		zap.Bool("dev_admin_fallback", c.DevAdminFallback),
	}
}
