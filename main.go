package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"scriptgen-backend/database"
	"scriptgen-backend/handlers"
	"scriptgen-backend/llm"
	"scriptgen-backend/middleware"
	"scriptgen-backend/quota"
	"scriptgen-backend/ratelimit"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	database.ConnectDatabase()

	gemini, err := llm.NewGeminiClient(context.Background(), os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatal("Failed to create Gemini client: ", err)
	}
	defer gemini.Close()
	handlers.Gen = gemini

	// Counter store: process memory by default, redis when REDIS_ADDR is
	// set (required once you run more than one instance).
	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
		store = ratelimit.NewRedisStore(rdb)
		log.Println("Rate limit counters backed by redis at", addr)
	}

	authLimit := ratelimit.New("auth", 15*time.Minute, 5, store)
	apiLimit := ratelimit.New("api", time.Minute, 30, store)
	genLimit := ratelimit.New("generate", time.Minute, 10, store)

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// Public routes (keyed by IP, tight window against credential stuffing)
	r.POST("/login", middleware.RateLimit(authLimit), handlers.Login)
	r.POST("/register", middleware.RateLimit(authLimit), handlers.Register)

	// Protected routes
	api := r.Group("/api")
	api.Use(middleware.JwtAuthMiddleware())
	api.Use(middleware.RateLimit(apiLimit))
	api.Use(middleware.RequireActiveSubscription())
	{
		api.GET("/user/profile", handlers.GetProfile)
		api.PUT("/user/settings", handlers.UpdateSettings)
		api.GET("/voices", handlers.GetVoices)

		api.POST("/scripts", handlers.SaveScript)
		api.GET("/scripts", handlers.GetScripts)
		api.GET("/scripts/:id", handlers.GetScript)
		api.PUT("/scripts/:id", handlers.UpdateScript)
		api.DELETE("/scripts/:id", handlers.DeleteScript)

		// Generation routes stack the tighter generate limiter on top of
		// the general API one.
		gen := api.Group("/generate")
		gen.Use(middleware.RateLimit(genLimit))
		{
			gen.POST("/script", handlers.Generate(quota.FeatureScript))
			gen.POST("/hooks", handlers.Generate(quota.FeatureHooks))
			gen.POST("/titles", handlers.Generate(quota.FeatureTitles))
			gen.POST("/outline", handlers.Generate(quota.FeatureOutline))
			gen.POST("/description", handlers.Generate(quota.FeatureDescription))
			gen.POST("/tags", handlers.Generate(quota.FeatureTags))
			gen.POST("/thumbnail", handlers.Generate(quota.FeatureThumbnail))
			gen.POST("/ctas", handlers.Generate(quota.FeatureCTAs))
		}

		admin := api.Group("/admin")
		{
			admin.GET("/users", handlers.GetAllUsers)
			admin.DELETE("/users/:id", handlers.DeleteUser)
			admin.PATCH("/users/:id/tier", handlers.UpdateUserTier)
			admin.GET("/usage/export", handlers.ExportUsageExcel)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
