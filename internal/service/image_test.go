package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImageService() *ImageService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewImageService(nil, log)
}

func TestUploadRecipeImageRejectsBadContentType(t *testing.T) {
	svc := newTestImageService()

	_, err := svc.UploadRecipeImage(context.Background(), uuid.New(), "application/pdf", 1024, strings.NewReader("x"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "image")
}

func TestUploadRecipeImageRejectsBadSize(t *testing.T) {
	svc := newTestImageService()
	ctx := context.Background()

	_, err := svc.UploadRecipeImage(ctx, uuid.New(), "image/png", 0, strings.NewReader(""))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.UploadRecipeImage(ctx, uuid.New(), "image/png", MaxImageSize+1, strings.NewReader("x"))
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "image")
}
