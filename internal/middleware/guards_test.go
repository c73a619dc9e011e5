package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskbay/api/internal/auth"
	"github.com/taskbay/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func (f *fakeUserRepo) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	for _, u := range f.users {
		if u.Mobile == mobile {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) SetKycStatus(ctx context.Context, id primitive.ObjectID, status models.KycStatus) error {
	f.users[id].KycStatus = status
	return nil
}

func (f *fakeUserRepo) SetFcmToken(ctx context.Context, id primitive.ObjectID, token *models.FcmToken) error {
	return nil
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (f *fakeUserRepo) SetSubscriptionMirror(ctx context.Context, id primitive.ObjectID, subID primitive.ObjectID, plan string, expiresAt time.Time) error {
	return nil
}

func guardedRouter(g Guard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Require(g), func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": identity.UserID.Hex()})
	})
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthGuardMissingHeader(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour, 24*time.Hour)
	r := guardedRouter(&AuthGuard{Issuer: issuer})

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGuardAcceptsAccessToken(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour, 24*time.Hour)
	r := guardedRouter(&AuthGuard{Issuer: issuer})

	userID := primitive.NewObjectID()
	token, err := issuer.IssueAccessToken(userID.Hex(), "+919876543210")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.Hex())
}

func TestAuthGuardRejectsRefreshToken(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour, 24*time.Hour)
	r := guardedRouter(&AuthGuard{Issuer: issuer})

	token, err := issuer.IssueRefreshToken(primitive.NewObjectID().Hex(), "+919876543210")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGuardRejectsExpiredToken(t *testing.T) {
	expired := auth.NewIssuer("test-secret", -time.Minute, 24*time.Hour)
	r := guardedRouter(&AuthGuard{Issuer: expired})

	token, err := expired.IssueAccessToken(primitive.NewObjectID().Hex(), "+919876543210")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestKycGuardApprovedUserPasses(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour, 24*time.Hour)
	userID := primitive.NewObjectID()
	repo := &fakeUserRepo{users: map[primitive.ObjectID]*models.User{
		userID: {ID: userID, Mobile: "+919876543210", KycStatus: models.KycApproved, IsActive: true},
	}}
	r := guardedRouter(&KycGuard{Auth: &AuthGuard{Issuer: issuer}, Users: repo})

	token, err := issuer.IssueAccessToken(userID.Hex(), "+919876543210")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestKycGuardForbidsUnapprovedUser(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour, 24*time.Hour)

	for _, status := range []models.KycStatus{models.KycPending, models.KycSubmitted, models.KycRejected} {
		userID := primitive.NewObjectID()
		repo := &fakeUserRepo{users: map[primitive.ObjectID]*models.User{
			userID: {ID: userID, Mobile: "+919876543210", KycStatus: status, IsActive: true},
		}}
		r := guardedRouter(&KycGuard{Auth: &AuthGuard{Issuer: issuer}, Users: repo})

		token, err := issuer.IssueAccessToken(userID.Hex(), "+919876543210")
		require.NoError(t, err)

		w := doRequest(r, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code, "status %s should be forbidden", status)
	}
}

func TestKycGuardUnknownUser(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour, 24*time.Hour)
	repo := &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
	r := guardedRouter(&KycGuard{Auth: &AuthGuard{Issuer: issuer}, Users: repo})

	token, err := issuer.IssueAccessToken(primitive.NewObjectID().Hex(), "+919876543210")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
