package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Probe checks one dependency. A failing probe flips the health service to
// NOT_SERVING until it passes again.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

const probeInterval = 10 * time.Second

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
	health     *health.Server
	conn       *grpc.ClientConn
	log        *logrus.Logger
}

// Run starts the gRPC health server and the HTTP server (gin API, swagger
// UI and /healthz through grpc-gateway) and blocks until ctx is cancelled
// or a server fails.
func Run(ctx context.Context, cfg *config.Config, log *logrus.Logger, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, probes ...Probe) error {
	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}

	s, err := newServers(cfg, log, flightSvc, bookingSvc)
	if err != nil {
		lis.Close()
		return err
	}
	defer s.conn.Close()

	errCh := make(chan error, 2)
	go func() { errCh <- s.grpcServer.Serve(lis) }()
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go s.watch(ctx, probes)

	log.WithFields(logrus.Fields{
		"http": cfg.HTTP.Address,
		"grpc": cfg.GRPC.Address,
	}).Info("servers started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.health.Shutdown()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.grpcServer.GracefulStop()
		log.Info("servers stopped")
		return nil
	}
}

func newServers(cfg *config.Config, log *logrus.Logger, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) (*Servers, error) {
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	conn, err := grpc.NewClient(cfg.GRPC.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial gRPC %s: %w", cfg.GRPC.Address, err)
	}
	gwmux := runtime.NewServeMux(runtime.WithHealthzEndpoint(healthpb.NewHealthClient(conn)))

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           newRouter(cfg, log, gwmux, flightSvc, bookingSvc),
			ReadHeaderTimeout: 5 * time.Second,
		},
		health: healthSrv,
		conn:   conn,
		log:    log,
	}, nil
}

func newRouter(cfg *config.Config, log *logrus.Logger, gwmux http.Handler, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log))

	v1 := router.Group("/api/v1")
	api.NewFlightHandler(flightSvc).Register(v1.Group("/flights"))
	bookings := api.NewBookingHandler(bookingSvc)
	bookings.Register(v1.Group("/bookings"))
	bookings.RegisterUsers(v1.Group("/users"))

	router.GET("/healthz", gin.WrapH(gwmux))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/bookings.swagger.json"))))
	}
	return router
}

// watch runs the probes until ctx is done and mirrors the result into the
// health service.
func (s *Servers) watch(ctx context.Context, probes []Probe) {
	if len(probes) == 0 {
		return
	}
	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()
	for {
		s.probe(ctx, probes)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Servers) probe(ctx context.Context, probes []Probe) {
	status := healthpb.HealthCheckResponse_SERVING
	for _, p := range probes {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := p.Check(checkCtx)
		cancel()
		if err != nil {
			s.log.WithError(err).WithField("probe", p.Name).Warn("dependency check failed")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
}
