package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string
	AppEnv         string
	RazorpayKeyID  string
	MerchantName   string
	PaymentTimeout time.Duration
	HTTPTimeout    time.Duration
	SessionFile    string
	CallbackAddr   string
	APIRateLimit   float64
	APIRateBurst   int
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:     os.Getenv("API_BASE_URL"),
		AppEnv:         os.Getenv("APP_ENV"),
		RazorpayKeyID:  os.Getenv("RAZORPAY_KEY_ID"),
		MerchantName:   getEnv("MERCHANT_NAME", "Hridhayam"),
		PaymentTimeout: getSeconds("PAYMENT_TIMEOUT", 300*time.Second),
		HTTPTimeout:    getSeconds("HTTP_TIMEOUT", 15*time.Second),
		SessionFile:    getEnv("SESSION_FILE", defaultSessionFile()),
		CallbackAddr:   getEnv("CALLBACK_ADDR", "127.0.0.1:0"),
		APIRateLimit:   getFloat("API_RATE_LIMIT", 10),
		APIRateBurst:   getInt("API_RATE_BURST", 20),
	}

	if cfg.APIBaseURL == "" {
		log.Fatal("Environment variables not loaded properly: API_BASE_URL is empty")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getSeconds reads a whole number of seconds; bad or non-positive values fall back to the default.
func getSeconds(key string, defaultValue time.Duration) time.Duration {
	n := getInt(key, 0)
	if n <= 0 {
		return defaultValue
	}
	return time.Duration(n) * time.Second
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getFloat(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f <= 0 {
		return defaultValue
	}
	return f
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hridhayam-session.json"
	}
	return filepath.Join(home, ".hridhayam", "session.json")
}
