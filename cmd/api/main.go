package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camillapd/RoomReservationsAPI/internal/app"
	"github.com/camillapd/RoomReservationsAPI/internal/clock"
	"github.com/camillapd/RoomReservationsAPI/internal/config"
	"github.com/camillapd/RoomReservationsAPI/internal/queue"
	"github.com/camillapd/RoomReservationsAPI/internal/storage/postgres"
	transporthttp "github.com/camillapd/RoomReservationsAPI/internal/transport/http"
	"github.com/camillapd/RoomReservationsAPI/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()
	cfg := config.Load(logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	roomRepo := postgres.NewRoomRepository(pool)
	roomSvc := app.NewRoomService(roomRepo, clock.NewSystem())

	var reservationOpts []app.ReservationServiceOption
	if cfg.AMQPURL != "" {
		publisher, err := queue.NewPublisher(cfg.AMQPURL, cfg.EventQueue, logger)
		if err != nil {
			log.Fatalf("connect to rabbitmq: %v", err)
		}
		defer publisher.Close()
		reservationOpts = append(reservationOpts, app.WithEventPublisher(publisher))
		logger.Printf("reservation events enabled on queue %s", cfg.EventQueue)
	}

	reservationRepo := postgres.NewReservationRepository(pool)
	reservationSvc := app.NewReservationService(reservationRepo, clock.NewSystem(), reservationOpts...)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/meetingrooms", transporthttp.HandleMeetingRooms(roomSvc))
	mux.Handle("/meetingrooms/", transporthttp.HandleMeetingRooms(roomSvc))
	mux.Handle("/reservations", transporthttp.HandleReservations(reservationSvc))
	mux.Handle("/reservations/", transporthttp.HandleReservationByID(reservationSvc))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
