package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hms-backend/config"
	deliveryHttp "hms-backend/internal/delivery/http"
	"hms-backend/internal/delivery/http/handler"
	"hms-backend/internal/delivery/http/middleware"
	"hms-backend/internal/infrastructure/cache"
	"hms-backend/internal/infrastructure/database"
	"hms-backend/internal/repository"
	"hms-backend/internal/service"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/jwt"
	"hms-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App)
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations
	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(cfg.DB); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logrus.Info("Database migrations applied")
	}

	// Initialize database
	gormLevel := logger.Warn
	if cfg.App.IsDevelopment() {
		gormLevel = logger.Info
	}
	db, err := database.NewPostgresConnection(cfg.DB, gormLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis (optional)
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize transactor
	tx := database.NewTransactor(db)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	departmentRepo := repository.NewDepartmentRepository()
	roomRepo := repository.NewRoomRepository()
	bedRepo := repository.NewBedRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	medicationRepo := repository.NewMedicationRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	labTestRepo := repository.NewLabTestRepository()
	testOrderRepo := repository.NewTestOrderRepository()
	billRepo := repository.NewBillRepository()
	paymentRepo := repository.NewPaymentRepository()
	eventRepo := repository.NewPatientEventRepository()
	notificationRepo := repository.NewNotificationRepository()
	messageRepo := repository.NewMessageRepository()
	alertRepo := repository.NewPatientAlertRepository()
	vitalRepo := repository.NewHealthVitalRepository()
	vaccinationRepo := repository.NewVaccinationRepository()
	referralRepo := repository.NewReferralRepository()
	soapNoteRepo := repository.NewSoapNoteRepository()
	refillRepo := repository.NewRefillRequestRepository()
	feedbackRepo := repository.NewDoctorFeedbackRepository()
	templateRepo := repository.NewPrescriptionTemplateRepository()
	recurringRepo := repository.NewRecurringAppointmentRepository()

	// Initialize services
	events := service.NewEventRecorder(log, eventRepo, notificationRepo)
	metricsCache := service.NewMetricsCache(redisClient, log, cfg.Redis.MetricsTTL)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(tx, log, userRepo, patientRepo, jwtService)
	patientUsecase := usecase.NewPatientUsecase(tx, log, patientRepo)
	doctorUsecase := usecase.NewDoctorUsecase(tx, log, userRepo, doctorRepo, patientRepo, appointmentRepo)
	facilityUsecase := usecase.NewFacilityUsecase(tx, log, departmentRepo, roomRepo, bedRepo, patientRepo, events, metricsCache)
	appointmentUsecase := usecase.NewAppointmentUsecase(tx, log, appointmentRepo, patientRepo, doctorRepo, events, metricsCache)
	medicationUsecase := usecase.NewMedicationUsecase(tx, log, medicationRepo)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(tx, log, prescriptionRepo, doctorRepo, patientRepo, events)
	labUsecase := usecase.NewLabUsecase(tx, log, labTestRepo, testOrderRepo, patientRepo, doctorRepo, events)
	billingUsecase := usecase.NewBillingUsecase(tx, log, billRepo, paymentRepo, patientRepo, events, metricsCache)
	timelineUsecase := usecase.NewTimelineUsecase(tx, log, eventRepo, patientRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(tx, log, paymentRepo, patientRepo, bedRepo, appointmentRepo, metricsCache)
	portalUsecase := usecase.NewPortalUsecase(tx, log, patientRepo, appointmentRepo, prescriptionRepo, testOrderRepo, billRepo, eventRepo)
	notificationUsecase := usecase.NewNotificationUsecase(tx, log, notificationRepo, userRepo, events)
	messageUsecase := usecase.NewMessageUsecase(tx, log, messageRepo, userRepo, events)
	clinicalUsecase := usecase.NewClinicalUsecase(tx, log, patientRepo, doctorRepo, alertRepo, vitalRepo, vaccinationRepo, events)
	referralUsecase := usecase.NewReferralUsecase(tx, log, referralRepo, patientRepo, doctorRepo, events)
	soapNoteUsecase := usecase.NewSoapNoteUsecase(tx, log, soapNoteRepo, appointmentRepo, doctorRepo)
	refillUsecase := usecase.NewRefillUsecase(tx, log, refillRepo, prescriptionRepo, patientRepo, doctorRepo, events)
	feedbackUsecase := usecase.NewFeedbackUsecase(tx, log, feedbackRepo, patientRepo, doctorRepo, appointmentRepo)
	templateUsecase := usecase.NewPrescriptionTemplateUsecase(tx, log, templateRepo, doctorRepo)
	recurringUsecase := usecase.NewRecurringAppointmentUsecase(tx, log, recurringRepo, patientRepo, doctorRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, customValidator),
		Patient:      handler.NewPatientHandler(patientUsecase, customValidator),
		Doctor:       handler.NewDoctorHandler(doctorUsecase, customValidator),
		Facility:     handler.NewFacilityHandler(facilityUsecase, customValidator),
		Appointment:  handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Medication:   handler.NewMedicationHandler(medicationUsecase, customValidator),
		Prescription: handler.NewPrescriptionHandler(prescriptionUsecase, customValidator),
		Lab:          handler.NewLabHandler(labUsecase, customValidator),
		Billing:      handler.NewBillingHandler(billingUsecase, customValidator),
		Timeline:     handler.NewTimelineHandler(timelineUsecase),
		Dashboard:    handler.NewDashboardHandler(dashboardUsecase),
		Portal:       handler.NewPortalHandler(portalUsecase),
		Notification: handler.NewNotificationHandler(notificationUsecase, messageUsecase, customValidator),
		Clinical:     handler.NewClinicalHandler(clinicalUsecase, customValidator),
		Referral:     handler.NewReferralHandler(referralUsecase, customValidator),
		SoapNote:     handler.NewSoapNoteHandler(soapNoteUsecase, customValidator),
		Refill:       handler.NewRefillHandler(refillUsecase, customValidator),
		Feedback:     handler.NewFeedbackHandler(feedbackUsecase, customValidator),
		Template:     handler.NewPrescriptionTemplateHandler(templateUsecase, customValidator),
		Recurring:    handler.NewRecurringAppointmentHandler(recurringUsecase, customValidator),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware()
	metricsMiddleware := middleware.NewMetricsMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, metricsMiddleware)
	httpHandler := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
