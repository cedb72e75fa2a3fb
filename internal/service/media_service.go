package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/showcase_api/internal/config"
	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/storage"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// ObjectUploader is the subset of the S3 client used for media uploads.
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// MediaService uploads product pictures, shop logos and videos.
type MediaService struct {
	uploader ObjectUploader
	cfg      config.S3Config
}

// NewMediaService constructs a MediaService.
func NewMediaService(uploader ObjectUploader, cfg config.S3Config) *MediaService {
	return &MediaService{uploader: uploader, cfg: cfg}
}

// Upload stores the content of r as a media asset of the declared kind.
// The content type is sniffed from the bytes and must agree with kind.
func (s *MediaService) Upload(ctx context.Context, kind models.MediaKind, r io.Reader) (*models.MediaAsset, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: kind must be image or video", utils.ErrValidation)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: could not read file", utils.ErrValidation)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", utils.ErrValidation)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", utils.ErrValidation, s.cfg.MaxUploadBytes)
	}

	mt := mimetype.Detect(data)
	contentType := mt.String()
	if !strings.HasPrefix(contentType, string(kind)+"/") {
		return nil, fmt.Errorf("%w: file content %s is not a valid %s file", utils.ErrValidation, contentType, kind)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("media/%s/%s%s", kind, id, mt.Extension())

	_, err = s.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Media upload failed")
		return nil, fmt.Errorf("%w: %v", utils.ErrUploadFailed, err)
	}

	return &models.MediaAsset{
		ID:          id.String(),
		URL:         storage.PublicURL(&s.cfg, key),
		Kind:        kind,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}
