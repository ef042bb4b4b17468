package api

import (
	"log"

	"github.com/alphazero-wd/devzone/config"
	"github.com/alphazero-wd/devzone/infra/queue"
	"github.com/alphazero-wd/devzone/internal/api/rest/handlers"
	"github.com/alphazero-wd/devzone/internal/api/rest/middleware"
	"github.com/alphazero-wd/devzone/internal/domain"
	"github.com/alphazero-wd/devzone/internal/helper"
	"github.com/alphazero-wd/devzone/internal/interfaces"
	"github.com/alphazero-wd/devzone/internal/mailer"
	"github.com/alphazero-wd/devzone/internal/repository"
	"github.com/alphazero-wd/devzone/internal/services"
	"github.com/alphazero-wd/devzone/internal/tokenstore"
	"github.com/alphazero-wd/devzone/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.PublicOrigin,
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

	if err := db.AutoMigrate(
		&domain.File{},
		&domain.User{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// ---------- Infra ----------
	var tokens interfaces.TokenStore
	if cfg.TokenStore == "memory" {
		tokens = tokenstore.NewMemoryStore()
		log.Println("token store: memory (tokens are lost on restart)")
	} else {
		tokens = tokenstore.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
		log.Println("token store: redis")
	}

	producer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	notifier := mailer.NewKafkaNotifier(producer)

	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	uploader := cloudinary.NewCloudinaryUploader(cld)

	auth := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	fileRepo := repository.NewFileRepository(db)

	// ---------- Services ----------
	authSvc := services.NewAuthService(userRepo, tokens, notifier, auth)
	settingsSvc := services.NewSettingsService(userRepo, fileRepo, uploader, notifier, auth)

	// ---------- Handlers ----------
	authMw := middleware.AuthMiddleware(auth, userRepo)
	handlers.NewAuthHandler(authSvc, auth).SetupRoutes(app, authMw)
	handlers.NewSettingsHandler(settingsSvc).SetupRoutes(app, authMw)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
