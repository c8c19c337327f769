package main

import (
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alnoor/community-platform/internal/config"
	"github.com/alnoor/community-platform/internal/handlers"
	"github.com/alnoor/community-platform/internal/prayer"
	"github.com/alnoor/community-platform/internal/queue"
	"github.com/alnoor/community-platform/internal/repository"
	"github.com/alnoor/community-platform/internal/services"
	xhttp "github.com/alnoor/community-platform/pkg/http"
	"github.com/alnoor/community-platform/pkg/logger"
	"github.com/alnoor/community-platform/pkg/pg"
	"github.com/alnoor/community-platform/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport (tcp for now)
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	q, err := queue.NewQueue(redisAdap, queue.QueueConfig{
		Name:              config.Get().QueueName,
		ConsumerGroup:     config.Get().QueueConsumerGroup,
		ConsumerName:      config.Get().QueueConsumerName,
		MaxRetries:        config.Get().QueueMaxRetries,
		VisibilityTimeout: config.Get().QueueVisibilityTimeout,
		PollInterval:      config.Get().QueuePollInterval,
		BatchSize:         config.Get().QueueBatchSize,
		MaxLen:            config.Get().QueueMaxLen,
		EnableDLQ:         config.Get().QueueEnableDLQ,
	})
	if err != nil {
		logger.Error("failed creating queue", "error", err)
	}

	// repositories
	donationRepo := repository.NewDonationRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	userRepo := repository.NewUserRepository(db)
	societyRepo := repository.NewSocietyRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	financeRepo := repository.NewFinanceRepository(db)

	// services
	donationService := services.NewDonationService(donationRepo, campaignRepo, q)
	campaignService := services.NewCampaignService(campaignRepo)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo)
	messageService := services.NewMessageService(messageRepo)
	authService := services.NewAuthService(userRepo)
	societyService := services.NewSocietyService(societyRepo)
	governanceService := services.NewGovernanceService(discussionRepo, proposalRepo, financeRepo)
	healthService := services.NewHealthService(db, redisAdap)

	// prayer schedule ticker
	prayerProvider := prayer.NewProvider(prayer.ProviderConfig{
		URL:      config.Get().PrayerTimetableUrl,
		Timeout:  config.Get().PrayerTimetableTimeout,
		CacheTTL: config.Get().PrayerTimetableCacheTTL,
	}, redisAdap)
	tickerInterval := config.Get().PrayerTickerInterval
	if tickerInterval == 0 {
		tickerInterval = time.Minute
	}
	prayerTicker := prayer.NewTicker(prayerProvider, tickerInterval)
	prayerTicker.Start()

	// v1 handlers
	donationHandler := handlers.NewDonationHandler(donationService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService)
	messageHandler := handlers.NewMessageHandler(messageService)
	authHandler := handlers.NewAuthHandler(authService)
	societyHandler := handlers.NewSocietyHandler(societyService)
	governanceHandler := handlers.NewGovernanceHandler(governanceService)
	prayerHandler := handlers.NewPrayerHandler(prayerTicker)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterDonationRoutes(g, donationHandler)
	handlers.RegisterCampaignRoutes(g, campaignHandler)
	handlers.RegisterEnrollmentRoutes(g, enrollmentHandler)
	handlers.RegisterMessageRoutes(g, messageHandler)
	handlers.RegisterAuthRoutes(g, authHandler)
	handlers.RegisterSocietyRoutes(g, societyHandler)
	handlers.RegisterGovernanceRoutes(g, governanceHandler)
	handlers.RegisterPrayerRoutes(g, prayerHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	// Create new server
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Kill)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	select {
	case <-c:
		prayerTicker.Stop()
		s.Shutdown()
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
