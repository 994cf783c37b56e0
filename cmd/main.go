package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	cancelByTokenHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/cancel_by_token"
	createAppointmentHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/create_appointment"
	createBlockedDayHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/create_blocked_day"
	deleteAppointmentHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/delete_appointment"
	deleteBlockedDayHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/delete_blocked_day"
	getAppointmentHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/get_appointment"
	getAppointmentsHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/get_appointments"
	getAvailabilityHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/get_availability"
	getBlockedDaysHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/get_blocked_days"
	getScheduleConfigHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/get_schedule_config"
	updateAppointmentHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/update_appointment"
	updateScheduleConfigHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/update_schedule_config"
	validateTokenHandler "github.com/matutevip/ginecoschedule-sub001/internal/api/handlers/validate_token"
	"github.com/matutevip/ginecoschedule-sub001/internal/api/middleware"
	"github.com/matutevip/ginecoschedule-sub001/internal/config"
	appointmentRepo "github.com/matutevip/ginecoschedule-sub001/internal/infra/storage/appointment"
	scheduleRepo "github.com/matutevip/ginecoschedule-sub001/internal/infra/storage/schedule"
	"github.com/matutevip/ginecoschedule-sub001/internal/integrations/calendar"
	appointmentsService "github.com/matutevip/ginecoschedule-sub001/internal/service/appointments"
	"github.com/matutevip/ginecoschedule-sub001/internal/service/calendarsync"
	"github.com/matutevip/ginecoschedule-sub001/internal/service/notify"
	scheduleService "github.com/matutevip/ginecoschedule-sub001/internal/service/schedule"
	cancelByTokenUC "github.com/matutevip/ginecoschedule-sub001/internal/usecase/cancel_by_token"
	createAppointmentUC "github.com/matutevip/ginecoschedule-sub001/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/matutevip/ginecoschedule-sub001/internal/usecase/get_availability"
	updateAppointmentUC "github.com/matutevip/ginecoschedule-sub001/internal/usecase/update_appointment"
	"github.com/matutevip/ginecoschedule-sub001/pkg/dbmetrics"
	"github.com/matutevip/ginecoschedule-sub001/pkg/logger"
	"github.com/matutevip/ginecoschedule-sub001/pkg/metrics"
	"github.com/matutevip/ginecoschedule-sub001/pkg/simpletxmanager"
	"github.com/matutevip/ginecoschedule-sub001/pkg/txmanager"
)

const sweepTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ginecoschedule...")

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Schedule.Timezone, err)
	}
	log.Info("Practice timezone: %s", cfg.Schedule.Timezone)

	// Collectors are registered up front; the metrics switch gates the
	// endpoint and the DB wrapper.
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	calendarClient := calendar.NewClient(
		cfg.Calendar.BaseURL,
		cfg.Calendar.CalendarID,
		cfg.Calendar.AuthToken,
		cfg.Calendar.Enabled,
		time.Duration(cfg.Calendar.Timeout)*time.Second,
		log,
	)
	if cfg.Calendar.Enabled {
		log.Info("Calendar integration enabled (base=%s, calendar=%s)",
			cfg.Calendar.BaseURL, cfg.Calendar.CalendarID)
	} else {
		log.Info("Calendar integration disabled")
	}

	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	notifySvc := notify.NewService(
		cfg.Notify.Enabled,
		cfg.Notify.SendgridAPIKey,
		cfg.Notify.FromEmail,
		cfg.Notify.FromName,
		cfg.Notify.AdminEmail,
		cfg.Notify.AdminName,
		cfg.Notify.PublicBaseURL,
		loc,
		log,
	)
	calendarSyncSvc := calendarsync.NewService(
		calendarClient,
		appointmentRepository,
		loc,
		cfg.Reconciler.WindowDays,
		metricsCollector,
		log,
	)
	scheduleSvc := scheduleService.NewService(scheduleRepository, txMgr, loc, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		calendarSyncSvc,
		notifySvc,
		loc,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(scheduleSvc, appointmentRepository, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleSvc,
		calendarSyncSvc,
		notifySvc,
		txMgr,
		loc,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleSvc,
		calendarSyncSvc,
		notifySvc,
		txMgr,
		loc,
		log,
	)
	cancelByTokenUseCase := cancelByTokenUC.NewUseCase(
		appointmentRepository,
		calendarSyncSvc,
		notifySvc,
		txMgr,
		log,
	)

	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelByToken := cancelByTokenHandler.NewHandler(cancelByTokenUseCase, log)
	validateToken := validateTokenHandler.NewHandler(cancelByTokenUseCase, log)
	getBlockedDays := getBlockedDaysHandler.NewHandler(scheduleSvc, log)
	createBlockedDay := createBlockedDayHandler.NewHandler(scheduleSvc, log)
	deleteBlockedDay := deleteBlockedDayHandler.NewHandler(scheduleSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: patients book and cancel without credentials.
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/cancel", cancelByToken.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/validate-token", validateToken.Handle).Methods(http.MethodGet)

	// Admin routes behind the shared token header.
	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Server.AdminToken))

	admin.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id:[0-9]+}", updateAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{id:[0-9]+}", deleteAppointment.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/blocked-days", getBlockedDays.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-days", createBlockedDay.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-days/{id:[0-9]+}", deleteBlockedDay.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/schedule-config", getScheduleConfig.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPatch)

	// Background jobs: reconciliation sweep and the daily agenda digest.
	scheduler := cron.New(cron.WithLocation(loc))
	if cfg.Reconciler.Enabled && cfg.Calendar.Enabled {
		_, err := scheduler.AddFunc(cfg.Reconciler.SweepCron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
			defer cancel()
			if err := calendarSyncSvc.Sweep(ctx, time.Now()); err != nil {
				log.Error("Reconciliation sweep failed: %v", err)
			}
		})
		if err != nil {
			log.Fatal("Failed to schedule reconciliation sweep: %v", err)
		}
		log.Info("Reconciliation sweep scheduled (%s, window %d days)",
			cfg.Reconciler.SweepCron, cfg.Reconciler.WindowDays)
	}
	if cfg.Notify.Enabled {
		_, err := scheduler.AddFunc(cfg.Reconciler.DigestCron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
			defer cancel()
			tomorrow := time.Now().In(loc).AddDate(0, 0, 1)
			appts, err := appointmentsSvc.DayAgenda(ctx, tomorrow)
			if err != nil {
				log.Error("Daily digest failed to load agenda: %v", err)
				return
			}
			notifySvc.DailyDigest(tomorrow, appts)
		})
		if err != nil {
			log.Fatal("Failed to schedule daily digest: %v", err)
		}
		log.Info("Daily digest scheduled (%s)", cfg.Reconciler.DigestCron)
	}
	scheduler.Start()

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
