package main

import (
	"fmt"
	"log/slog"
	"os"

	"marketplace/cmd"
	httpserver "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres/notificationrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/participantrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/postgres/trackingrepo"
	"marketplace/internal/adapters/out/rabbitmq"
	"marketplace/internal/adapters/out/rediscache"
	"marketplace/internal/jobs"
	"marketplace/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDB(configs)

	amqpClient, err := rabbitmq.NewClient(configs.AmqpURL, configs.AmqpExchange, logger)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer amqpClient.Close()
	publisher := rabbitmq.NewEventPublisher(amqpClient)

	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	defer redisClient.Close()
	cache := rediscache.NewLocationCache(redisClient, rediscache.DefaultTTL)

	metrics.Register()

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, cache, logger)

	jobManager := jobs.NewJobManager(app.StatusMachine(), logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:     goDotEnvVariable("HTTP_PORT"),
		DBHost:       goDotEnvVariable("DB_HOST"),
		DBPort:       goDotEnvVariable("DB_PORT"),
		DBUser:       goDotEnvVariable("DB_USER"),
		DBPassword:   goDotEnvVariable("DB_PASSWORD"),
		DBName:       goDotEnvVariable("DB_NAME"),
		DBSslMode:    goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:    goDotEnvVariable("REDIS_ADDR"),
		AmqpURL:      goDotEnvVariable("AMQP_URL"),
		AmqpExchange: goDotEnvVariable("AMQP_EXCHANGE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderProductDTO{},
		&productrepo.ProductDTO{},
		&trackingrepo.TrackingSampleDTO{},
		&notificationrepo.NotificationDTO{},
		&participantrepo.ParticipantDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpserver.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateAcceptOrderCommandHandler(),
		app.CreateRecordPingCommandHandler(),
		app.CreateConfirmDeliveryCommandHandler(),
		app.CreateSetStatusCommandHandler(),
		app.CreateMarkNotificationsReadCommandHandler(),
		app.CreateGetLatestLocationQueryHandler(),
		app.CreateGetLocationHistoryQueryHandler(),
		app.CreateGetNotificationsQueryHandler(),
		app.CreateGetUnreadCountQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
