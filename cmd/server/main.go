package main

import (
	"context"
	"log"

	"campus-parking/config"
	"campus-parking/internal/cache"
	"campus-parking/internal/database"
	"campus-parking/internal/handler"
	"campus-parking/internal/middleware"
	"campus-parking/internal/realtime"
	"campus-parking/internal/repository"
	"campus-parking/internal/service"
	"campus-parking/internal/sweeper"
	"campus-parking/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env 不存在就用環境變數與預設值
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// repositories
	reservationRepo := repository.NewReservationRepository(pool)
	spotRepo := repository.NewSpotRepository(pool)
	sectionRepo := repository.NewSectionRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// realtime：hub + redis broker，多行程部署靠 broker 保持一致
	reservationService := service.NewReservationService(reservationRepo)
	hub := realtime.NewHub(reservationService.CanAccess)
	broker := realtime.NewBroker(hub, rdb)
	broker.Start(ctx)

	availability := cache.NewSectionAvailabilityCache(rdb)

	// services
	billingService := service.NewBillingService(pool, subscriptionRepo, userRepo)
	allocationService := service.NewAllocationService(
		pool, reservationRepo, spotRepo, sectionRepo, userRepo,
		billingService, broker, availability,
	)

	// 逾期掃描：單行程一個排程器，重疊的 tick 直接略過
	sw := sweeper.New(
		cfg.Sweep, pool, reservationRepo, spotRepo, sectionRepo,
		billingService, broker, availability,
	)
	sw.Start(ctx)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	parkingHandler := handler.NewParkingHandler(allocationService)

	public := router.Group("/api/v1")
	parkingHandler.RegisterPublicRoutes(public)

	api := router.Group("/api/v1", middleware.JWTAuth(cfg.Auth.JWTSecret))
	handler.NewReservationHandler(allocationService, reservationService).RegisterRoutes(api)
	parkingHandler.RegisterRoutes(api)
	handler.NewBillingHandler(billingService).RegisterRoutes(api)
	handler.NewEventsHandler(hub).RegisterRoutes(api)

	logger.WithComponent("server").Info("starting campus-parking server")

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
