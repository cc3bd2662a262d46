package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/catalog"
	"github.com/top4/calldrivers/internal/config"
	"github.com/top4/calldrivers/internal/handlers"
	"github.com/top4/calldrivers/internal/middleware"
	"github.com/top4/calldrivers/internal/repository"
	"github.com/top4/calldrivers/internal/service"
	"github.com/top4/calldrivers/internal/sms"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	// Optional .env for local development; env vars win in production.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	cat, err := catalog.Load(cfg.Catalog.FilePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load catalog")
	}

	dynamoClient, err := initDynamoDB(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize DynamoDB")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Endpoint,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Repositories
	userRepo := repository.NewUserRepository(dynamoClient, cfg.DynamoDB.TableName, logger)
	bookingRepo := repository.NewBookingRepository(dynamoClient, cfg.DynamoDB.TableName, logger)
	challengeStore := repository.NewRedisChallengeStore(redisClient, logger)
	trackingRepo := repository.NewTrackingRepository(redisClient, logger)

	// Services
	smsSender, err := initSMSSender(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize SMS sender")
	}

	sessionService, err := service.NewSessionService(&cfg.JWT, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize session service")
	}

	otpService := service.NewOTPService(challengeStore, smsSender, &cfg.OTP, logger)
	fareService := service.NewFareService(cat)

	placesService, err := service.NewPlacesService(cfg.Places.APIKey, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize places service")
	}

	// Handlers
	authHandlers := handlers.NewAuthHandlers(otpService, sessionService, userRepo, cfg.Debug, logger)
	dataHandlers := handlers.NewDataHandlers(cat, logger)
	pricingHandlers := handlers.NewPricingHandlers(fareService, logger)
	locationHandlers := handlers.NewLocationHandlers(placesService, logger)
	trackingHandlers := handlers.NewTrackingHandlers(trackingRepo, logger)
	bookingHandlers := handlers.NewBookingHandlers(bookingRepo, fareService, logger)

	authMiddleware := middleware.NewAuthMiddleware(sessionService, logger)
	router := setupRouter(
		authHandlers,
		dataHandlers,
		pricingHandlers,
		locationHandlers,
		trackingHandlers,
		bookingHandlers,
		authMiddleware,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func initDynamoDB(cfg *config.Config, logger *logrus.Logger) (*dynamodb.Client, error) {
	var awsCfg aws.Config
	var err error

	if cfg.DynamoDB.Endpoint != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.DynamoDB.Region),
			awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					return aws.Endpoint{
						URL:           cfg.DynamoDB.Endpoint,
						SigningRegion: cfg.DynamoDB.Region,
					}, nil
				})),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.TODO())
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg)
	logger.Info("DynamoDB client initialized")
	return client, nil
}

func initSMSSender(cfg *config.Config, logger *logrus.Logger) (sms.Sender, error) {
	switch cfg.SMS.Provider {
	case "twilio":
		return sms.NewTwilioSender(cfg.SMS.TwilioAccountSID, cfg.SMS.TwilioAuthToken, cfg.SMS.TwilioFrom, logger)
	default:
		return sms.NewGatewaySender(
			cfg.SMS.GatewayBaseURL,
			cfg.SMS.GatewayUser,
			cfg.SMS.GatewayPassword,
			cfg.SMS.GatewayTimeout,
			logger,
		), nil
	}
}

func setupRouter(
	authHandlers *handlers.AuthHandlers,
	dataHandlers *handlers.DataHandlers,
	pricingHandlers *handlers.PricingHandlers,
	locationHandlers *handlers.LocationHandlers,
	trackingHandlers *handlers.TrackingHandlers,
	bookingHandlers *handlers.BookingHandlers,
	authMiddleware *middleware.AuthMiddleware,
	logger *logrus.Logger,
) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.LoggingMiddleware(logger))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "OPTIONS")

	api := router.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/send-otp", authHandlers.SendOTP).Methods("POST", "OPTIONS")
	auth.HandleFunc("/verify-otp", authHandlers.VerifyOTP).Methods("POST", "OPTIONS")
	auth.HandleFunc("/me", authHandlers.Me).Methods("GET", "OPTIONS")
	auth.HandleFunc("/logout", authHandlers.Logout).Methods("POST", "OPTIONS")

	data := api.PathPrefix("/data").Subrouter()
	data.HandleFunc("/states", dataHandlers.States).Methods("GET", "OPTIONS")
	data.HandleFunc("/cities", dataHandlers.Cities).Methods("GET", "OPTIONS")
	data.HandleFunc("/vehicles", dataHandlers.Vehicles).Methods("GET", "OPTIONS")

	api.HandleFunc("/pricing/calculate", pricingHandlers.Calculate).Methods("POST", "OPTIONS")
	api.HandleFunc("/locations/search", locationHandlers.Search).Methods("GET", "OPTIONS")

	api.HandleFunc("/tracking/driver", trackingHandlers.GetDriverLocation).Methods("GET", "OPTIONS")
	api.HandleFunc("/tracking/driver", trackingHandlers.UpdateDriverLocation).Methods("POST", "OPTIONS")

	protected := api.PathPrefix("/").Subrouter()
	protected.Use(authMiddleware.RequireAuth)
	protected.HandleFunc("/bookings", bookingHandlers.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/history", bookingHandlers.History).Methods("GET", "OPTIONS")

	return router
}
