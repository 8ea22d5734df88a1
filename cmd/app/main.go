package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/cache"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logrus.Fatalf("load .env: %v", err)
	}
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		gateway  repository.Gateway
		flightDB repository.FlightRepository
		bookDB   repository.BookingRepository
		probes   []bootstrap.Probe
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := repository.NewMemoryStore()
		if err := seedFlights(store, cfg.Seed.Flights); err != nil {
			log.WithError(err).Fatal("seed flights")
		}
		gateway, flightDB, bookDB = store, store, store.Bookings()
		log.WithField("flights", len(cfg.Seed.Flights)).Info("using in-memory store")
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.WithError(err).Fatal("connect postgres")
		}
		defer pool.Close()
		gateway = repository.NewGateway(pool)
		flightDB = repository.NewFlightRepository(pool)
		bookDB = repository.NewBookingRepository(pool)
		probes = append(probes, bootstrap.Probe{Name: "postgres", Check: pool.Ping})
	default:
		log.WithField("driver", cfg.Database.Driver).Fatal("unknown database driver")
	}

	var (
		flightCache  flights.FlightCache
		bookingCache booking.Cache
	)
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.CacheTTL())
		defer redisCache.Close()
		flightCache, bookingCache = redisCache, redisCache
		probes = append(probes, bootstrap.Probe{Name: "redis", Check: redisCache.Ping})
	}

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		p := kafka.NewProducer(cfg.Kafka.Brokers, log)
		defer p.Close()
		if err := p.CheckConnection(ctx); err != nil {
			log.WithError(err).Warn("kafka unreachable at startup")
		}
		producer = p
	}

	initial, err := domain.ParseBookingStatus(cfg.Booking.InitialStatus)
	if err != nil {
		log.WithError(err).Fatal("booking.initial_status")
	}

	flightService := flights.NewFlightService(flightDB, flightCache, log)
	bookingService := booking.NewBookingService(
		gateway,
		bookDB,
		bookingCache,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(log),
		booking.WithPolicy(booking.Policy{
			MaxPassengers:     cfg.Booking.MaxPassengers,
			ReferenceAttempts: cfg.Booking.ReferenceAttempts,
			InitialStatus:     initial,
			TxTimeout:         cfg.Booking.TxTimeout(),
		}),
	)

	if err := bootstrap.Run(ctx, cfg, log, flightService, bookingService, probes...); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
