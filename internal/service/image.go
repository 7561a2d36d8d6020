package service

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pantrychef/backend/config"
)

// MaxImageSize caps uploaded recipe images at 5 MiB.
const MaxImageSize = 5 << 20

// allowedImageTypes maps accepted content types to file extensions.
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ImageService stores recipe images in S3.
type ImageService struct {
	s3Config *config.S3Config
	log      *logrus.Logger
}

// NewImageService creates a new ImageService instance.
func NewImageService(s3Config *config.S3Config, log *logrus.Logger) *ImageService {
	return &ImageService{s3Config: s3Config, log: log}
}

// UploadRecipeImage validates and uploads a recipe image, returning its
// public URL. Ownership of the recipe is checked by the caller before the
// upload happens.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, contentType string, size int64, body io.Reader) (string, error) {
	verr := NewValidationError()
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		verr.Add("image", "content type must be image/jpeg, image/png or image/webp")
	}
	if size <= 0 || size > MaxImageSize {
		verr.Add("image", fmt.Sprintf("image must be between 1 byte and %d bytes", MaxImageSize))
	}
	if verr.HasErrors() {
		return "", verr
	}

	key := fmt.Sprintf("recipes/%s/%s.%s", recipeID, uuid.New(), ext)
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"operation": "upload recipe image",
			"recipe_id": recipeID,
		}).WithError(err).Error("s3 upload failed")
		return "", &PersistenceError{Op: "upload recipe image", Err: err}
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}
