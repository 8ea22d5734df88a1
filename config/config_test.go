package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":8080"
database:
  host: localhost
  port: 5432
  user: booking
  password: secret
  name: booking
  ssl_mode: disable
kafka:
  brokers: ["localhost:9092"]
  booking_topic: bookings
booking:
  max_passengers: 4
  initial_status: PENDING
seed:
  flights:
    - flight_number: TK100
      fare: "99.90"
      rows: 10
      seats_per_row: 6
      departure_time: 2026-11-02T08:30:00Z
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "host=localhost port=5432 user=booking password=secret dbname=booking sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)

	assert.Equal(t, 4, cfg.Booking.MaxPassengers)
	assert.Equal(t, "PENDING", cfg.Booking.InitialStatus)
	assert.Equal(t, DefaultReferenceAttempts, cfg.Booking.ReferenceAttempts)
	assert.Equal(t, 5*time.Second, cfg.Booking.TxTimeout())
	assert.Equal(t, 30*time.Second, cfg.Booking.CacheTTL())

	require.Len(t, cfg.Seed.Flights, 1)
	assert.Equal(t, "99.90", cfg.Seed.Flights[0].Fare)
	assert.Equal(t, time.Date(2026, 11, 2, 8, 30, 0, 0, time.UTC), cfg.Seed.Flights[0].DepartureTime)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unclosed"), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}
