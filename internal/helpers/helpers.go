package helpers

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const (
	AvatarFolder = "avatars"
	KycFolder    = "kyc-documents"
)

// Mobile numbers are country-code qualified digit strings, e.g. +919876543210.
var mobileRegex = regexp.MustCompile(`^\+?[1-9][0-9]{9,14}$`)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidMobile(mobile string) bool {
	return mobileRegex.MatchString(mobile)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// UploadImage stores one image with Cloudinary and returns its public URL.
// Nothing is written to local disk.
func UploadImage(ctx context.Context, cld *cloudinary.Cloudinary, file io.Reader, folder string) (string, error) {
	if cld == nil {
		return "", fmt.Errorf("cloudinary client is not initialized")
	}

	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.New().String(),
		Tags:     []string{"taskbay-app"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %v", err)
	}

	return uploadResult.SecureURL, nil
}
