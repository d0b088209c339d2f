// The mailer process is the companion mail-sending service. It renders and
// sends notification mail on behalf of the marketplace, behind a
// shared-secret API. A failed SMTP verification at startup is logged, not
// fatal: the service stays up and dials on the first real send.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"agromarket/cmd"
	"agromarket/internal/adapters/in/http/mailer"
	"agromarket/internal/notifications"
)

const verifyTimeout = 30 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	sender, err := cmd.BuildMailSender(configs, logger)
	if err != nil {
		log.Fatalf("Failed to configure SMTP sender: %v", err)
	}

	verifyCtx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	if err := sender.Verify(verifyCtx); err != nil {
		logger.Warn("SMTP transport not verified, continuing without readiness", "error", err)
	}
	cancel()

	composer, err := notifications.NewComposer(configs.SiteBaseURL)
	if err != nil {
		log.Fatalf("Failed to build mail composer: %v", err)
	}

	dispatcher, err := notifications.NewDispatcher(composer, sender, logger)
	if err != nil {
		log.Fatalf("Failed to build dispatcher: %v", err)
	}

	server, err := mailer.NewServer(dispatcher, sender, configs.MailerAPIKey, configs.SMTPUser, logger)
	if err != nil {
		log.Fatalf("Failed to build mailer server: %v", err)
	}

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	return cmd.Config{
		HTTPPort:     os.Getenv("MAILER_HTTP_PORT"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: os.Getenv("MAIL_FROM_NAME"),
		MailerAPIKey: os.Getenv("MAILER_API_KEY"),
		SiteBaseURL:  os.Getenv("SITE_BASE_URL"),
	}
}
