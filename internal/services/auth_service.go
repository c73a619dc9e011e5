package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taskbay/api/internal/auth"
	"github.com/taskbay/api/internal/helpers"
	"github.com/taskbay/api/internal/models"
)

// AuthService runs the OTP login flow: syntax checks, provider delegation,
// find-or-create of the user record, and token issuance.
//
// Refresh tokens are not rotated or revoked before their natural expiry; a
// stolen refresh token stays usable until it expires. Known gap, kept
// deliberately to preserve the current client contract.
type AuthService struct {
	users  models.UserRepo
	otp    OtpProvider
	issuer *auth.Issuer
	logger *slog.Logger
}

func NewAuthService(users models.UserRepo, otp OtpProvider, issuer *auth.Issuer, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		otp:    otp,
		issuer: issuer,
		logger: logger,
	}
}

func (as *AuthService) SendOtp(ctx context.Context, mobile, email string) error {
	if !helpers.IsValidMobile(mobile) {
		return models.BadRequest("Invalid mobile number")
	}
	if email != "" && !helpers.IsValidEmail(email) {
		return models.BadRequest("Invalid email address")
	}

	if err := as.otp.SendOtp(ctx, mobile); err != nil {
		return models.ServiceUnavailable("Failed to send OTP")
	}
	return nil
}

func (as *AuthService) ResendOtp(ctx context.Context, mobile string) error {
	if !helpers.IsValidMobile(mobile) {
		return models.BadRequest("Invalid mobile number")
	}

	if err := as.otp.ResendOtp(ctx, mobile); err != nil {
		return models.ServiceUnavailable("Failed to resend OTP")
	}
	return nil
}

type VerifyOtpResult struct {
	Message      string              `json:"message"`
	IsNewUser    bool                `json:"isNewUser"`
	User         models.UserResponse `json:"user"`
	AccessToken  string              `json:"accessToken"`
	RefreshToken string              `json:"refreshToken"`
}

func (as *AuthService) VerifyOtp(ctx context.Context, mobile, otp string) (*VerifyOtpResult, error) {
	if !helpers.IsValidMobile(mobile) {
		return nil, models.BadRequest("Invalid mobile number")
	}

	if err := as.otp.VerifyOtp(ctx, mobile, otp); err != nil {
		if errors.Is(err, ErrOtpRejected) {
			return nil, models.Unauthorized("Invalid OTP")
		}
		return nil, models.ServiceUnavailable("OTP verification unavailable")
	}

	user, err := as.users.FindByMobile(ctx, mobile)
	if err != nil {
		return nil, models.InternalError("Failed to look up user")
	}

	isNewUser := false
	if user == nil {
		now := time.Now()
		user, err = as.users.Create(ctx, &models.User{
			Mobile:      mobile,
			KycStatus:   models.KycPending,
			IsActive:    true,
			LastLoginAt: now,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			// A concurrent first login can win the insert; the unique index
			// on mobile guarantees one record either way.
			user, err = as.users.FindByMobile(ctx, mobile)
			if err != nil || user == nil {
				return nil, models.InternalError("Failed to create user")
			}
		} else {
			isNewUser = true
		}
	} else {
		if err := as.users.TouchLastLogin(ctx, user.ID); err != nil {
			as.logger.Warn("failed to update last login", "user_id", user.ID.Hex(), "error", err)
		}
	}

	accessToken, err := as.issuer.IssueAccessToken(user.ID.Hex(), user.Mobile)
	if err != nil {
		return nil, models.InternalError("Failed to issue access token")
	}
	refreshToken, err := as.issuer.IssueRefreshToken(user.ID.Hex(), user.Mobile)
	if err != nil {
		return nil, models.InternalError("Failed to issue refresh token")
	}

	message := "Login successful"
	if isNewUser {
		message = "Registration successful"
	}

	return &VerifyOtpResult{
		Message:      message,
		IsNewUser:    isNewUser,
		User:         user.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new access token. An
// access token presented here is rejected.
func (as *AuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := as.issuer.Verify(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return "", models.Unauthorized("Refresh token expired")
		}
		return "", models.Unauthorized("Invalid refresh token")
	}
	if claims.Kind != auth.KindRefresh {
		return "", models.Unauthorized("Refresh token required")
	}

	accessToken, err := as.issuer.IssueAccessToken(claims.UserID, claims.Mobile)
	if err != nil {
		return "", models.InternalError("Failed to issue access token")
	}
	return accessToken, nil
}
