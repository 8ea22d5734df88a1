package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Log      LogConfig      `yaml:"log"`
	Seed     SeedConfig     `yaml:"seed"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	MaxPassengers     int    `yaml:"max_passengers"`
	ReferenceAttempts int    `yaml:"reference_attempts"`
	InitialStatus     string `yaml:"initial_status"`
	TxTimeoutSeconds  int    `yaml:"tx_timeout_seconds"`
	FlightsCacheTTL   int    `yaml:"flights_cache_ttl_seconds"`
}

const (
	DefaultMaxPassengers     = 10
	DefaultReferenceAttempts = 5
	DefaultInitialStatus     = "CONFIRMED"
	DefaultTxTimeoutSeconds  = 5
	DefaultFlightsCacheTTL   = 30
)

// WithDefaults fills unset booking policy values.
func (b BookingConfig) WithDefaults() BookingConfig {
	if b.MaxPassengers <= 0 {
		b.MaxPassengers = DefaultMaxPassengers
	}
	if b.ReferenceAttempts <= 0 {
		b.ReferenceAttempts = DefaultReferenceAttempts
	}
	if b.InitialStatus == "" {
		b.InitialStatus = DefaultInitialStatus
	}
	if b.TxTimeoutSeconds <= 0 {
		b.TxTimeoutSeconds = DefaultTxTimeoutSeconds
	}
	if b.FlightsCacheTTL <= 0 {
		b.FlightsCacheTTL = DefaultFlightsCacheTTL
	}
	return b
}

func (b BookingConfig) TxTimeout() time.Duration {
	return time.Duration(b.TxTimeoutSeconds) * time.Second
}

func (b BookingConfig) CacheTTL() time.Duration {
	return time.Duration(b.FlightsCacheTTL) * time.Second
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SeedConfig lists flights loaded into the in-memory store at startup.
type SeedConfig struct {
	Flights []FlightSeed `yaml:"flights"`
}

type FlightSeed struct {
	FlightNumber  string    `yaml:"flight_number"`
	Airline       string    `yaml:"airline"`
	FromCity      string    `yaml:"from_city"`
	ToCity        string    `yaml:"to_city"`
	DepartureTime time.Time `yaml:"departure_time"`
	ArrivalTime   time.Time `yaml:"arrival_time"`
	Fare          string    `yaml:"fare"`
	Rows          int       `yaml:"rows"`
	SeatsPerRow   int       `yaml:"seats_per_row"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ApplyEnv()
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverPostgres
	}
	cfg.Booking = cfg.Booking.WithDefaults()

	return &cfg, nil
}
