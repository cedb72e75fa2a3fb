package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/showcase_api/internal/config"
	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/utils"
)

type fakeUploader struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeUploader) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

// pngHeader is the signature and IHDR chunk start of a PNG file.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func testS3Config() config.S3Config {
	return config.S3Config{
		Bucket:         "media",
		Region:         "us-east-1",
		PublicBaseURL:  "https://cdn.example.com",
		MaxUploadBytes: 64,
	}
}

func TestMediaService_Upload(t *testing.T) {
	up := &fakeUploader{}
	svc := NewMediaService(up, testS3Config())

	asset, err := svc.Upload(context.Background(), models.MediaImage, bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.Equal(t, "image/png", asset.ContentType)
	assert.Equal(t, int64(len(pngHeader)), asset.Size)
	assert.Equal(t, models.MediaImage, asset.Kind)
	assert.True(t, strings.HasPrefix(asset.URL, "https://cdn.example.com/media/image/"+asset.ID))
	assert.True(t, strings.HasSuffix(asset.URL, ".png"))

	require.NotNil(t, up.input)
	assert.Equal(t, "media", aws.ToString(up.input.Bucket))
	assert.Equal(t, "image/png", aws.ToString(up.input.ContentType))
	assert.Equal(t, pngHeader, up.body)
}

func TestMediaService_Rejects(t *testing.T) {
	svc := NewMediaService(&fakeUploader{}, testS3Config())
	ctx := context.Background()

	tests := []struct {
		name string
		kind models.MediaKind
		body []byte
	}{
		{"unknown kind", "audio", pngHeader},
		{"empty", models.MediaImage, nil},
		{"kind mismatch", models.MediaVideo, pngHeader},
		{"not media", models.MediaImage, []byte("plain text body")},
		{"too large", models.MediaImage, append(append([]byte{}, pngHeader...), make([]byte, 64)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, tt.kind, bytes.NewReader(tt.body))
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
}

func TestMediaService_UploadFailure(t *testing.T) {
	svc := NewMediaService(&fakeUploader{err: errors.New("connection reset")}, testS3Config())

	_, err := svc.Upload(context.Background(), models.MediaImage, bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, utils.ErrUploadFailed)
}
