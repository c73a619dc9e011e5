package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskbay/api/internal/container"
	"github.com/taskbay/api/internal/handlers"
	"github.com/taskbay/api/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	// Set Gin mode for production
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(gin.Recovery())

	authed := middleware.Require(container.AuthGuard)
	kycApproved := middleware.Require(container.KycGuard)

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "taskbay-api",
			})
		})

		// public routes
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/send-otp", handlers.SendOtp(container.AuthService))
			authRoutes.POST("/resend-otp", handlers.ResendOtp(container.AuthService))
			authRoutes.POST("/verify-otp", handlers.VerifyOtp(container.AuthService))
			authRoutes.POST("/refresh-token", handlers.RefreshToken(container.AuthService))
		}

		categoryRoutes := v1.Group("/category")
		{
			categoryRoutes.GET("/all", handlers.ListCategories(container.CategoryService))
			categoryRoutes.GET("/:name/subcategories", handlers.ListSubcategories(container.CategoryService))
		}

		// Razorpay calls back unauthenticated; the handler checks the
		// webhook signature instead.
		v1.POST("/webhooks/razorpay", handlers.RazorpayWebhook(container.SubscriptionService))
	}

	userRoutes := v1.Group("/user", authed)
	{
		userRoutes.GET("/profile", handlers.GetProfile(container.UserService))
		userRoutes.PUT("/profile", handlers.UpdateProfile(container.UserService))
		userRoutes.POST("/profile/photo", handlers.UploadProfilePhoto(container.UserService))
		userRoutes.PUT("/fcm-token", handlers.UpdateFcmToken(container.UserService))
		userRoutes.DELETE("/account", handlers.DeleteAccount(container.UserService))
		userRoutes.POST("/kyc", handlers.SubmitKyc(container.UserService))
		userRoutes.GET("/kyc", handlers.GetKycStatus(container.UserService))
		userRoutes.PUT("/kyc/:user_id/status", handlers.UpdateKycStatus(container.UserService))
	}

	workerRoutes := v1.Group("/worker")
	{
		// Discovery is public; only the baseline filter limits what is listed.
		workerRoutes.GET("/search", handlers.SearchWorkers(container.WorkerService))
		workerRoutes.GET("/nearby", handlers.NearbyWorkers(container.WorkerService))
		workerRoutes.GET("/admin/stats", authed, handlers.WorkerStats(container.WorkerService))

		// Creating a worker profile requires an approved KYC.
		workerRoutes.POST("/profile", kycApproved, handlers.CreateWorkerProfile(container.WorkerService))
		workerRoutes.GET("/profile", authed, handlers.GetWorkerProfile(container.WorkerService))
		workerRoutes.PUT("/profile", authed, handlers.UpdateWorkerProfile(container.WorkerService))
		workerRoutes.DELETE("/profile", authed, handlers.DeleteWorkerProfile(container.WorkerService))
		workerRoutes.POST("/location", authed, handlers.UpdateWorkerLocation(container.WorkerService))

		workerRoutes.GET("/:id", handlers.GetWorkerByID(container.WorkerService))
		workerRoutes.POST("/:id/reviews", authed, handlers.CreateReview(container.ReviewService))
		workerRoutes.GET("/:id/reviews", handlers.ListWorkerReviews(container.ReviewService))
	}

	v1.DELETE("/reviews/:id", authed, handlers.DeleteReview(container.ReviewService))

	jobRoutes := v1.Group("/jobs")
	{
		jobRoutes.GET("", handlers.ListJobs(container.JobService))
		jobRoutes.GET("/:id", handlers.GetJobByID(container.JobService))

		jobRoutes.POST("", authed, handlers.CreateJob(container.JobService))
		jobRoutes.GET("/mine", authed, handlers.MyPostedJobs(container.JobService))
		jobRoutes.POST("/:id/apply", authed, handlers.ApplyToJob(container.JobService))
		jobRoutes.PUT("/:id/status", authed, handlers.UpdateJobStatus(container.JobService))
		jobRoutes.DELETE("/:id", authed, handlers.DeleteJob(container.JobService))
	}

	subscriptionRoutes := v1.Group("/subscription", kycApproved)
	{
		subscriptionRoutes.POST("/create/:plan", handlers.CreateSubscription(container.SubscriptionService))
	}

	return r
}
