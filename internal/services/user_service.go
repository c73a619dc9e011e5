package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/taskbay/api/internal/helpers"
	"github.com/taskbay/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	users  models.UserRepo
	cld    *cloudinary.Cloudinary
	logger *slog.Logger
}

func NewUserService(users models.UserRepo, cld *cloudinary.Cloudinary, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		cld:    cld,
		logger: logger,
	}
}

func (us *UserService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := us.users.FindByID(ctx, id)
	if err != nil {
		return nil, models.InternalError("Failed to load profile")
	}
	if user == nil {
		return nil, models.NotFound("User not found")
	}
	return user, nil
}

func (us *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, dto *models.UpdateProfileDto) (*models.User, error) {
	fields := bson.M{}
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.Email != nil {
		if *dto.Email != "" && !helpers.IsValidEmail(*dto.Email) {
			return nil, models.BadRequest("Invalid email address")
		}
		fields["email"] = *dto.Email
	}
	if dto.City != nil {
		fields["city"] = *dto.City
	}
	if dto.Pincode != nil {
		fields["pincode"] = *dto.Pincode
	}
	if dto.ProfilePhoto != nil {
		fields["profile_photo"] = *dto.ProfilePhoto
	}

	user, err := us.users.UpdateProfile(ctx, id, fields)
	if err != nil {
		return nil, models.InternalError("Failed to update profile")
	}
	if user == nil {
		return nil, models.NotFound("User not found")
	}
	return user, nil
}

// UploadProfilePhoto stores the image with Cloudinary and saves the returned
// URL on the user record.
func (us *UserService) UploadProfilePhoto(ctx context.Context, id primitive.ObjectID, file io.Reader) (string, error) {
	url, err := helpers.UploadImage(ctx, us.cld, file, helpers.AvatarFolder)
	if err != nil {
		return "", models.ServiceUnavailable("Failed to upload photo")
	}

	user, err := us.users.UpdateProfile(ctx, id, bson.M{"profile_photo": url})
	if err != nil {
		return "", models.InternalError("Failed to save profile photo")
	}
	if user == nil {
		return "", models.NotFound("User not found")
	}
	return url, nil
}

func (us *UserService) UpdateFcmToken(ctx context.Context, id primitive.ObjectID, token *models.FcmToken) error {
	if err := us.users.SetFcmToken(ctx, id, token); err != nil {
		return models.InternalError("Failed to update FCM token")
	}
	return nil
}

func (us *UserService) DeactivateAccount(ctx context.Context, id primitive.ObjectID) error {
	if err := us.users.Deactivate(ctx, id); err != nil {
		return models.InternalError("Failed to deactivate account")
	}
	return nil
}

// SubmitKyc stores the verification document with Cloudinary and moves the
// user to submitted. Approval happens through the admin review flow.
func (us *UserService) SubmitKyc(ctx context.Context, id primitive.ObjectID, document io.Reader) (string, error) {
	url, err := helpers.UploadImage(ctx, us.cld, document, helpers.KycFolder)
	if err != nil {
		return "", models.ServiceUnavailable("Failed to upload KYC document")
	}

	user, err := us.users.UpdateProfile(ctx, id, bson.M{
		"kyc_status":   models.KycSubmitted,
		"kyc_document": url,
	})
	if err != nil {
		return "", models.InternalError("Failed to submit KYC")
	}
	if user == nil {
		return "", models.NotFound("User not found")
	}
	return url, nil
}

func (us *UserService) GetKycStatus(ctx context.Context, id primitive.ObjectID) (models.KycStatus, error) {
	user, err := us.GetProfile(ctx, id)
	if err != nil {
		return "", err
	}
	return user.KycStatus, nil
}

// UpdateKycStatus is the admin review action.
func (us *UserService) UpdateKycStatus(ctx context.Context, targetID string, status string) error {
	id, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return models.BadRequest("Invalid user ID")
	}

	switch models.KycStatus(status) {
	case models.KycApproved, models.KycRejected, models.KycSubmitted, models.KycPending:
	default:
		return models.BadRequest("Invalid KYC status")
	}

	if err := us.users.SetKycStatus(ctx, id, models.KycStatus(status)); err != nil {
		return models.NotFound("User not found")
	}
	return nil
}
