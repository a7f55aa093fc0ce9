package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config ortam yapılandırmalarını tutar
type Config struct {
	AppEnv string
	Port   string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	JWTSecret string

	// Cüzdan / mağaza ayarları (tutarlar en küçük birim cinsinden, kuruş)
	Currency       string
	TopupMaxAmount int64

	// Banka hareket feed'i (dış servis)
	BankFeedURL     string
	BankFeedTimeout time.Duration

	// Bildirim webhook'u (best-effort, boşsa kapalı)
	NotifyWebhookURL string

	// Otomatik mutabakat aralığı (0 ise poller kapalı)
	ReconcileInterval time.Duration
}

// yardımcı fonksiyon: ortam değişkeni yoksa default değeri döner
func getEnv(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt64 ortam değişkenini int64 olarak okur, parse edilemezse default döner
func getEnvInt64(key string, defaultVal int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// getEnvDuration ortam değişkenini duration olarak okur (örn: "30s", "5m")
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// LoadConfig tüm yapılandırmayı yükler
func LoadConfig() *Config {
	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8080"),
		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "ilhan"),
		DBPass: getEnv("DB_PASS", "password"),
		DBName: getEnv("DB_NAME", "storedb"),

		JWTSecret: getEnv("JWT_SECRET", "change-this-secret-in-production"),

		Currency:       getEnv("CURRENCY", "TRY"),
		TopupMaxAmount: getEnvInt64("TOPUP_MAX_AMOUNT", 100_000_000), // 1.000.000 TL

		BankFeedURL:     getEnv("BANK_FEED_URL", ""),
		BankFeedTimeout: getEnvDuration("BANK_FEED_TIMEOUT", 10*time.Second),

		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),

		ReconcileInterval: getEnvDuration("RECONCILE_INTERVAL", 0),
	}
}

// GetDSN veritabanı bağlantı URL'sini döner
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName,
	)
}
