package main

import (
	"log"
	"time"

	"medtrain/config"
	"medtrain/database"
	"medtrain/middleware"
	"medtrain/services"

	authController "medtrain/controllers/auth"
	categoryController "medtrain/controllers/category"
	taskController "medtrain/controllers/task"
	userController "medtrain/controllers/user"

	"medtrain/routers/authRoutes"
	"medtrain/routers/categoryRoutes"
	"medtrain/routers/taskRoutes"
	"medtrain/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	zapLogger, err := buildLogger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.Connect(config.AppConfig.DatabaseURL, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(zapLogger, config.AppConfig.IsDevelopment()),
	})

	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.ClientURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        config.AppConfig.RateLimitMax,
		Expiration: 15 * time.Minute,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	guard := middleware.NewGuard(db)

	authService := services.NewAuthService(db)
	userService := services.NewUserService(db)
	statsService := services.NewStatsService(db)
	taskService := services.NewTaskService(db, statsService)
	categoryService := services.NewCategoryService(db)

	authRoutes.SetupAuthRoutes(app, authController.New(authService))
	taskRoutes.SetupTaskRoutes(app, taskController.New(taskService), guard)
	categoryRoutes.SetupCategoryRoutes(app, categoryController.New(categoryService), guard)
	userRoutes.SetupUserRoutes(app, userController.New(userService, statsService), guard)

	app.Use(middleware.NotFoundHandler)

	zapLogger.Info("server is running", zap.String("port", config.AppConfig.Port))
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger() (*zap.Logger, error) {
	if config.AppConfig.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
