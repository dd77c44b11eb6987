package proof

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"pcl-checkout-api/internal/config"
	"pcl-checkout-api/internal/dal"
)

// Store 支付凭证对象存储。对象键按商户隔离：proof/{merchantId}/{uuid}.{ext}，
// 数据库策略之外的第二道租户边界
type Store struct {
	client     *s3.Client
	bucket     string
	publicBase string
	signExpiry time.Duration
}

func NewStore() *Store {
	c := config.C.Proof
	return &Store{
		client:     dal.S3Client,
		bucket:     c.Bucket,
		publicBase: strings.TrimRight(c.PublicBaseURL, "/"),
		signExpiry: time.Duration(c.SignExpirySec) * time.Second,
	}
}

// 凭证只接受图片和PDF
var extByContentType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// AllowedContentType 判断凭证文件类型是否受支持
func AllowedContentType(contentType string) bool {
	_, ok := extByContentType[contentType]
	return ok
}

// Upload 上传凭证，返回外部可解析URL和对象键
func (s *Store) Upload(ctx context.Context, merchantID uint64, file io.Reader, contentType string) (string, string, error) {
	ext, ok := extByContentType[contentType]
	if !ok {
		return "", "", fmt.Errorf("unsupported proof content type: %s", contentType)
	}
	key := fmt.Sprintf("proof/%d/%s%s", merchantID, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("proof upload failed: %w", err)
	}
	return s.publicBase + "/" + key, key, nil
}

// Remove 删除对象，仅用于账本写入失败后的补偿
func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("proof delete failed: %w", err)
	}
	return nil
}

// SignedURL 生成限时可读URL，商户核销界面使用
func (s *Store) SignedURL(ctx context.Context, key string) (string, error) {
	presigner := s3.NewPresignClient(s.client)
	presigned, err := presigner.PresignGetObject(ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		},
		func(po *s3.PresignOptions) {
			po.Expires = s.signExpiry
		},
	)
	if err != nil {
		return "", fmt.Errorf("presign proof url failed: %w", err)
	}
	return presigned.URL, nil
}
