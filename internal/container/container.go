package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/taskbay/api/internal/auth"
	"github.com/taskbay/api/internal/config"
	"github.com/taskbay/api/internal/middleware"
	"github.com/taskbay/api/internal/models"
	"github.com/taskbay/api/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	Cloudinary    *cloudinary.Cloudinary
	MongoDBClient *mongo.Client

	AuthService         *services.AuthService
	UserService         *services.UserService
	WorkerService       *services.WorkerService
	JobService          *services.JobService
	SubscriptionService *services.SubscriptionService
	CategoryService     *services.CategoryService
	ReviewService       *services.ReviewService

	AuthGuard *middleware.AuthGuard
	KycGuard  *middleware.KycGuard
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	mongoDBClient *mongo.Client,
) *Container {
	// Initialize repositories
	repo := models.MongodbNewRepo(mongoDBClient)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	otp := services.NewMsg91Client(cfg.Msg91AuthKey, cfg.Msg91TemplateID)
	gateway := services.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret)

	authGuard := &middleware.AuthGuard{Issuer: issuer}
	kycGuard := &middleware.KycGuard{Auth: authGuard, Users: repo}

	return &Container{
		Logger:        logger,
		Cloudinary:    cld,
		MongoDBClient: mongoDBClient,

		AuthService:         services.NewAuthService(repo, otp, issuer, logger),
		UserService:         services.NewUserService(repo, cld, logger),
		WorkerService:       services.NewWorkerService(repo),
		JobService:          services.NewJobService(repo),
		SubscriptionService: services.NewSubscriptionService(repo, repo, repo, gateway, logger),
		CategoryService:     services.NewCategoryService(repo),
		ReviewService:       services.NewReviewService(repo, repo, logger),

		AuthGuard: authGuard,
		KycGuard:  kycGuard,
	}
}
