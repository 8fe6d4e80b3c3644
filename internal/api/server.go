package api

import (
	"log"

	"github.com/ayonpaul8906/trustbridge-new/config"
	"github.com/ayonpaul8906/trustbridge-new/infra/cache"
	"github.com/ayonpaul8906/trustbridge-new/infra/queue"
	"github.com/ayonpaul8906/trustbridge-new/internal/api/rest/handlers"
	"github.com/ayonpaul8906/trustbridge-new/internal/clients/trustvision"
	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper"
	"github.com/ayonpaul8906/trustbridge-new/internal/repository"
	"github.com/ayonpaul8906/trustbridge-new/internal/services"
	"github.com/ayonpaul8906/trustbridge-new/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New(fiber.Config{
		BodyLimit: 25 << 20,
	})

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260815

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.RegistrationAttempt{},
		&domain.TrustScore{},
		&domain.ScoreHistoryEntry{},
		&domain.FinancialDocument{},
		&domain.Loan{},
		&domain.LenderOffer{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	passcodes := cache.NewRedisPasscodeStore(
		cfg.RedisAddr,
		cfg.RedisPassword,
		cfg.RedisDB,
		services.PasscodeTTL,
	)

	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	visionClient := trustvision.New(cfg.TrustVisionURL, cfg.TrustVisionAPIKey)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	scoreRepo := repository.NewTrustScoreRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	lenderRepo := repository.NewLenderRepository(db)

	// ---------- Services ----------
	registrationSvc := services.NewRegistrationService(
		userRepo,
		profileRepo,
		attemptRepo,
		passcodes,
		visionClient,
		up,
		kafkaProducer,
		cfg.RegistrationOpen,
	)
	userSvc := services.NewUserService(userRepo, profileRepo, authHelper)
	scoreSvc := services.NewTrustScoreService(scoreRepo, visionClient, up)
	loanSvc := services.NewLoanService(loanRepo)
	lenderSvc := services.NewLenderService(userRepo, profileRepo, lenderRepo, scoreRepo)

	// ---------- Handlers ----------
	handlers.NewRegistrationHandler(registrationSvc).SetupRoutes(app)
	handlers.NewUserHandler(userSvc, authHelper).SetupRoutes(app)
	handlers.NewScoreHandler(scoreSvc, authHelper).SetupRoutes(app)
	handlers.NewLoanHandler(loanSvc, userSvc, authHelper).SetupRoutes(app)
	handlers.NewLenderHandler(lenderSvc, userSvc, authHelper).SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
