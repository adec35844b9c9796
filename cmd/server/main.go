package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/redis/go-redis/v9"

	"github.com/eduline/lms-server/auth"
	"github.com/eduline/lms-server/config"
	"github.com/eduline/lms-server/content"
	"github.com/eduline/lms-server/course"
	"github.com/eduline/lms-server/mailer"
	"github.com/eduline/lms-server/store"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Debug),
		glog.WithName("lms"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(goerrors.ToSlogAttributes),
	)

	cfg := config.Load()
	if cfg.UsingFallbackSecret() {
		lgr.GetLogger("config").Warn("JWT_SECRET not set, using built-in fallback signing key")
	}

	ctx := context.Background()

	db, err := store.Open(cfg.GetDatabaseDSN())
	if err != nil {
		lgr.GetLogger("store").Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.CreateSchema(ctx, db); err != nil {
		lgr.GetLogger("store").Error("failed to create schema", "error", err)
		os.Exit(1)
	}

	repos := store.NewRepositoryManager(db)
	repos.MustValidate()

	var sender mailer.Sender
	if cfg.GetMailAPIKey() != "" {
		sender = mailer.NewResendSender(cfg.GetMailAPIKey(), cfg.GetMailFrom())
	} else {
		sender = mailer.LogSender{Logger: lgr.GetLogger("mailer")}
	}

	tokens := auth.NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenTTL(),
		"lms-server",
		lgr.GetLogger("auth:tokens"),
	)

	registerHandler := auth.NewRegisterUserHandler(
		repos.Users(),
		repos.Credentials(),
		repos.Contexts(),
		sender,
		auth.BcryptHasher{},
		lgr.GetLogger("auth:register"),
	)

	loginHandler := auth.NewLoginUserHandler(
		repos.Credentials(),
		auth.BcryptHasher{},
		tokens,
		lgr.GetLogger("auth:login"),
	)

	authController := auth.NewController(
		registerHandler,
		loginHandler,
		tokens,
		auth.WithLogger(lgr.GetLogger("auth:http")),
		auth.WithCookie(cfg.GetCookieName(), cfg.GetCookieMaxAge(), cfg.IsProduction()),
		auth.WithDeterministicIDs(cfg.GetDeterministicIDs()),
	)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.GetRedisPassword(),
	})
	defer rdb.Close()

	contentController := content.NewController(content.NewStore(rdb))

	catalogController := course.NewController(
		repos.Catalog(),
		course.WithLogger(lgr.GetLogger("catalog")),
		course.WithUploadsDir(cfg.GetUploadsDir()),
	)

	app := fiber.New(fiber.Config{
		AppName: "lms-server",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.GetClientOrigin(),
		AllowCredentials: true,
	}))

	authController.RegisterRoutes(app)
	contentController.RegisterRoutes(app)
	catalogController.RegisterRoutes(app)

	app.Static("/uploads", cfg.GetUploadsDir())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"msg": "hello world"})
	})

	go func() {
		if err := app.Listen(":" + cfg.GetPort()); err != nil {
			lgr.GetLogger("http").Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	lgr.GetLogger("http").Info("server listening", "port", cfg.GetPort())

	WaitExitSignal()

	if err := app.Shutdown(); err != nil {
		lgr.GetLogger("http").Error("shutdown failed", "error", err)
	}
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
