package main

import (
	"net/http"

	"go.uber.org/zap"

	"microblog/backend/internal/auth"
	"microblog/backend/internal/cache"
	"microblog/backend/internal/config"
	"microblog/backend/internal/database"
	"microblog/backend/internal/handler"
	"microblog/backend/pkg/logging"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "microblog/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Microblog API
// @version         1.0
// @description     This is the API for the Microblog service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := logging.InitLogger(config.AppConfig.LogLevel, config.AppConfig.LogFormat); err != nil {
		panic(err)
	}
	logger := logging.GetLogger()

	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Connect to Redis (optional, used for token revocation)
	if err := cache.Connect(config.AppConfig.RedisURL); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		apiV1.POST("/signup", auth.GuestMiddleware(), handler.Signup)
		apiV1.POST("/login", handler.Login)
		apiV1.POST("/logout", auth.AuthMiddleware(), handler.Logout)
		apiV1.PATCH("/change-password", auth.AuthMiddleware(), handler.ChangePassword)

		// Profile routes
		profileRoutes := apiV1.Group("/profile")
		{
			profileRoutes.GET("", auth.AuthMiddleware(), handler.GetProfile)
			profileRoutes.PUT("", auth.AuthMiddleware(), handler.UpdateProfile)
			profileRoutes.PATCH("", auth.AuthMiddleware(), handler.PatchProfile)
			profileRoutes.DELETE("/delete", auth.AuthMiddleware(), handler.DeleteProfile)

			profileRoutes.GET("/post", auth.AuthMiddleware(), handler.ListMyPosts) // Must be before /:username
			profileRoutes.POST("/post", auth.AuthMiddleware(), handler.CreatePost)

			profileRoutes.GET("/:username", auth.OptionalAuthMiddleware(), handler.GetProfileByUsername)
			profileRoutes.GET("/:username/post", handler.ListUserPosts)
			profileRoutes.GET("/:username/followers", handler.ListFollowers)
			profileRoutes.GET("/:username/following", handler.ListFollowing)
			profileRoutes.POST("/:username/follow", auth.AuthMiddleware(), handler.FollowUser)
			profileRoutes.DELETE("/:username/follow", auth.AuthMiddleware(), handler.UnfollowUser)
		}

		// Post routes
		postRoutes := apiV1.Group("/posts")
		{
			postRoutes.GET("", auth.OptionalAuthMiddleware(), handler.ListPosts)
			postRoutes.POST("", auth.AuthMiddleware(), handler.CreatePost)
			postRoutes.GET("/feed", auth.AuthMiddleware(), handler.Feed) // Must be before /:id
			postRoutes.GET("/:id", auth.OptionalAuthMiddleware(), handler.GetPost)
			postRoutes.PUT("/:id", auth.AuthMiddleware(), handler.UpdatePost)
			postRoutes.PATCH("/:id", auth.AuthMiddleware(), handler.PatchPost)
			postRoutes.DELETE("/:id", auth.AuthMiddleware(), handler.DeletePost)

			// Comment routes
			postRoutes.GET("/:id/comments", handler.ListComments)
			postRoutes.POST("/:id/comments", auth.AuthMiddleware(), handler.CreateComment)
			postRoutes.GET("/:id/comments/:cid", handler.GetComment)
			postRoutes.PUT("/:id/comments/:cid", auth.AuthMiddleware(), handler.UpdateComment)
			postRoutes.PATCH("/:id/comments/:cid", auth.AuthMiddleware(), handler.PatchComment)
			postRoutes.DELETE("/:id/comments/:cid", auth.AuthMiddleware(), handler.DeleteComment)

			// Like routes
			postRoutes.POST("/:id/like", auth.AuthMiddleware(), handler.LikePost)
			postRoutes.DELETE("/:id/like", auth.AuthMiddleware(), handler.UnlikePost)
		}
	}

	logger.Info("Server is running", zap.String("addr", config.AppConfig.ServerAddr))
	logger.Info("Swagger UI is available at /swagger/index.html")
	if err := router.Run(config.AppConfig.ServerAddr); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}
