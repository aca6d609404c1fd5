package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"shift-roster/internal/config"
	"shift-roster/internal/notify"
	"shift-roster/internal/repository"
	"shift-roster/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetServiceConfig()
	logrus.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite limitation
		TranslateError:                           true,
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	// Foreign key enforcement is off by default in SQLite
	if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user repository")
	}

	// The remaining repositories are constructed for their migrations;
	// request handling goes through the service layer, which transports
	// outside this core wire up themselves.
	if _, err := repository.NewGormShiftTemplateRepository(db); err != nil {
		logrus.WithError(err).Fatal("Failed to create shift template repository")
	}
	if _, err := repository.NewGormRosterRepository(db); err != nil {
		logrus.WithError(err).Fatal("Failed to create roster repository")
	}
	if _, err := repository.NewGormAttendanceRepository(db); err != nil {
		logrus.WithError(err).Fatal("Failed to create attendance repository")
	}
	if _, err := repository.NewGormShiftAdvertRepository(db); err != nil {
		logrus.WithError(err).Fatal("Failed to create shift advert repository")
	}
	if _, err := repository.NewGormShiftAdvertResponseRepository(db); err != nil {
		logrus.WithError(err).Fatal("Failed to create shift advert response repository")
	}
	if _, err := repository.NewGormCompanyUserRepository(db); err != nil {
		logrus.WithError(err).Fatal("Failed to create company user repository")
	}
	if _, err := repository.NewGormAdminTransferRepository(db); err != nil {
		logrus.WithError(err).Fatal("Failed to create admin transfer repository")
	}

	notificationRepo, err := repository.NewGormNotificationRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create notification repository")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	dispatcherStop := make(chan struct{})

	if cfg.TelegramToken != "" {
		client, err := telegram.NewClient(cfg.TelegramToken)
		if err != nil {
			logrus.Fatal("Failed to create Telegram client:", err)
		}

		logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

		dispatcher := notify.NewDispatcher(
			client,
			notificationRepo,
			userRepo,
			time.Duration(cfg.NotifyPollSeconds)*time.Second,
		)
		go dispatcher.Run(dispatcherStop)
	} else {
		logrus.Info("No Telegram token configured, notification delivery disabled")
	}

	logrus.Info("Service started. Press Ctrl+C to stop.")
	<-stop

	close(dispatcherStop)

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Service stopped gracefully")
}
