package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"agromarket/cmd"
	httpin "agromarket/internal/adapters/in/http"
	"agromarket/internal/adapters/out/postgres/listingrepo"
	"agromarket/internal/adapters/out/postgres/orderrepo"
	"agromarket/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to wire application: %v", err)
	}

	queue := root.NotificationQueue()
	queue.Start()
	defer queue.Stop()

	jobManager := jobs.NewJobManager(root.CreateRemindPendingOrdersCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, logger, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: os.Getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		SMTPHost:               os.Getenv("SMTP_HOST"),
		SMTPPort:               os.Getenv("SMTP_PORT"),
		SMTPUser:               os.Getenv("SMTP_USER"),
		SMTPPassword:           os.Getenv("SMTP_PASSWORD"),
		MailFrom:               os.Getenv("MAIL_FROM"),
		MailFromName:           os.Getenv("MAIL_FROM_NAME"),
		MailerURL:              os.Getenv("MAILER_URL"),
		MailerAPIKey:           os.Getenv("MAILER_API_KEY"),
		SiteBaseURL:            os.Getenv("SITE_BASE_URL"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &listingrepo.ListingDTO{}); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return db
}

func startWebServer(root *cmd.CompositionRoot, logger *slog.Logger, port string) {
	server := httpin.NewServer(
		root.CreateCreateListingCommandHandler(),
		root.CreateRestockListingCommandHandler(),
		root.CreateCreateOrderCommandHandler(),
		root.CreateUpdateOrderStatusCommandHandler(),
		root.CreateGetBuyerOrdersQueryHandler(),
		root.CreateGetSellerDashboardQueryHandler(),
		root.NotificationQueue(),
		root.OrderEventPublisher(),
		logger,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
