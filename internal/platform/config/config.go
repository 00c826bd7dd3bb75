package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevAPIKey is the pre-shared key used when SENTINEL_API_KEY is unset outside production.
const DevAPIKey = "SECRET123"

// Server captures process-level configuration.
type Server struct {
	Addr           string
	Environment    string
	LogLevel       string
	APIKey         string
	AdminKey       string
	AllowedOrigins []string
	SeedFile       string

	Watermark Watermark
	Trap      Trap
	Risk      Risk

	DatabaseURL string
	Redis       RedisConfig
	Kafka       KafkaConfig
	Registry    RegistryConfig
}

// Watermark configures marker derivation.
type Watermark struct {
	Secret string
	// Length is the number of hex characters kept after the "wm_" prefix.
	Length int
}

// Trap configures honeytoken generation and simulated hits.
type Trap struct {
	Domain               string
	SimulatedProbability float64
}

// Risk configures the scoring engine.
type Risk struct {
	TrapDelta           int
	EscalationThreshold int
	RepeatWindow        time.Duration
	RepeatCount         int
	VelocityInterval    time.Duration
}

// RedisConfig configures the optional risk score backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit mirror.
type KafkaConfig struct {
	Brokers         string
	AuditTopic      string
	Acks            string
	Retries         int
	DeliveryTimeout time.Duration
}

// RegistryConfig configures the optional honeytoken anchoring registry.
type RegistryConfig struct {
	URL        string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// IsProduction reports whether dev fallbacks must be refused.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

// Load reads an optional .env file and then the environment.
func Load() (Server, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from environment variables.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:           envOr("SENTINEL_ADDR", ":5000"),
		Environment:    envOr("ENVIRONMENT", "development"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		APIKey:         os.Getenv("SENTINEL_API_KEY"),
		AdminKey:       os.Getenv("SENTINEL_ADMIN_KEY"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		SeedFile:       os.Getenv("SEED_FILE"),
		Watermark: Watermark{
			Secret: os.Getenv("WATERMARK_SECRET"),
			Length: envInt("WATERMARK_LENGTH", 32),
		},
		Trap: Trap{
			Domain:               envOr("TRAP_DOMAIN", "example.com"),
			SimulatedProbability: envFloat("SIMULATED_HIT_PROBABILITY", 0.5),
		},
		Risk: Risk{
			TrapDelta:           envInt("RISK_TRAP_DELTA", 20),
			EscalationThreshold: envInt("RISK_ESCALATION_THRESHOLD", 85),
			RepeatWindow:        envDuration("RISK_REPEAT_WINDOW", 24*time.Hour),
			RepeatCount:         envInt("RISK_REPEAT_COUNT", 3),
			VelocityInterval:    envDuration("RISK_VELOCITY_INTERVAL", 10*time.Minute),
		},
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			AuditTopic:      envOr("KAFKA_AUDIT_TOPIC", "sentinel.audit"),
			Acks:            "all",
			Retries:         3,
			DeliveryTimeout: 30 * time.Second,
		},
		Registry: RegistryConfig{
			URL:        os.Getenv("REGISTRY_URL"),
			APIKey:     os.Getenv("REGISTRY_API_KEY"),
			Timeout:    envDuration("REGISTRY_TIMEOUT", 5*time.Second),
			MaxRetries: envInt("REGISTRY_MAX_RETRIES", 3),
		},
	}

	if cfg.APIKey == "" {
		if cfg.IsProduction() {
			return Server{}, fmt.Errorf("SENTINEL_API_KEY is required in production")
		}
		cfg.APIKey = DevAPIKey
	}
	if cfg.Watermark.Secret == "" {
		if cfg.IsProduction() {
			return Server{}, fmt.Errorf("WATERMARK_SECRET is required in production")
		}
		cfg.Watermark.Secret = "dev-watermark-secret-change-in-production"
	}
	if cfg.Watermark.Length < 16 || cfg.Watermark.Length > 64 || cfg.Watermark.Length%2 != 0 {
		return Server{}, fmt.Errorf("WATERMARK_LENGTH must be an even number between 16 and 64, got %d", cfg.Watermark.Length)
	}
	if cfg.Trap.SimulatedProbability < 0 || cfg.Trap.SimulatedProbability > 1 {
		return Server{}, fmt.Errorf("SIMULATED_HIT_PROBABILITY must be within [0,1]")
	}
	if cfg.Risk.EscalationThreshold <= 0 || cfg.Risk.EscalationThreshold > 100 {
		return Server{}, fmt.Errorf("RISK_ESCALATION_THRESHOLD must be within (0,100]")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
