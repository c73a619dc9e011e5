package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskbay/api/internal/auth"
	"github.com/taskbay/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const identityKey = "identity"

// Identity is the resolved caller of a guarded request.
type Identity struct {
	UserID primitive.ObjectID
	Mobile string
	// User is loaded by KycGuard; AuthGuard leaves it nil.
	User *models.User
}

// Guard resolves a request into an authenticated identity or fails it.
// Guards compose by wrapping: KycGuard runs AuthGuard first and adds its own
// precondition. Resolve is side-effect-free.
type Guard interface {
	Resolve(c *gin.Context) (*Identity, error)
}

// AuthGuard verifies the bearer access token and yields its subject.
type AuthGuard struct {
	Issuer *auth.Issuer
}

func (g *AuthGuard) Resolve(c *gin.Context) (*Identity, error) {
	token, err := bearerToken(c)
	if err != nil {
		return nil, err
	}

	claims, err := g.Issuer.Verify(token)
	if err != nil {
		if err == auth.ErrTokenExpired {
			return nil, models.Unauthorized("Token expired")
		}
		return nil, models.Unauthorized("Invalid token")
	}
	if claims.Kind != auth.KindAccess {
		return nil, models.Unauthorized("Access token required")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, models.Unauthorized("Invalid token subject")
	}

	return &Identity{UserID: userID, Mobile: claims.Mobile}, nil
}

// KycGuard requires an AuthGuard-valid identity whose user record is
// KYC-approved. An unapproved identity is Forbidden, not Unauthorized.
type KycGuard struct {
	Auth  Guard
	Users models.UserRepo
}

func (g *KycGuard) Resolve(c *gin.Context) (*Identity, error) {
	identity, err := g.Auth.Resolve(c)
	if err != nil {
		return nil, err
	}

	user, err := g.Users.FindByID(c.Request.Context(), identity.UserID)
	if err != nil {
		return nil, models.InternalError("Failed to load user")
	}
	if user == nil {
		return nil, models.NotFound("User not found")
	}
	if user.KycStatus != models.KycApproved {
		return nil, models.Forbidden("KYC verification required")
	}

	identity.User = user
	return identity, nil
}

// Require adapts a Guard into gin middleware. The resolved identity is stored
// in the context so handlers never re-parse the token.
func Require(g Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := g.Resolve(c)
		if err != nil {
			apiErr := models.AsApiError(err)
			c.AbortWithStatusJSON(apiErr.Status, models.ErrorResponse(apiErr.Message))
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

func GetIdentity(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", &models.ApiError{
			Status:  http.StatusUnauthorized,
			Kind:    models.KindUnauthorized,
			Message: "Authorization header missing or invalid",
		}
	}
	return strings.TrimPrefix(header, "Bearer "), nil
}
