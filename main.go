package main

import (
	"barhop/config"
	"barhop/database"
	"barhop/ratelimit"
	aiRoutes "barhop/routers/aiRoutes"
	authRoutes "barhop/routers/authRoutes"
	barRoutes "barhop/routers/barRoutes"
	checkinRoutes "barhop/routers/checkinRoutes"
	friendRoutes "barhop/routers/friendRoutes"
	userRoutes "barhop/routers/userRoutes"
	"barhop/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	ratelimit.Init()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	aiRoutes.SetupAIRoutes(app)
	checkinRoutes.SetupCheckinRoutes(app)
	barRoutes.SetupBarRoutes(app)
	friendRoutes.SetupFriendRoutes(app)
	userRoutes.SetupUserRoutes(app)

	utils.StartAggregateScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
