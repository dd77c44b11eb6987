package dal

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"

	"pcl-checkout-api/internal/config"
)

var S3Client *s3.Client

// InitS3 初始化对象存储客户端（S3 兼容，支持 R2/MinIO 等自定义 endpoint）。
// 密钥从环境变量读取，其余参数走配置文件
func InitS3() {
	_ = godotenv.Load()

	accessKey := os.Getenv("S3_ACCESS_KEY_ID")
	secretKey := os.Getenv("S3_SECRET_ACCESS_KEY")
	if accessKey == "" || secretKey == "" {
		log.Fatalf("S3_ACCESS_KEY_ID / S3_SECRET_ACCESS_KEY not set")
	}

	region := config.C.Proof.Region
	if region == "" {
		region = "auto"
	}

	cfg, err := awscfg.LoadDefaultConfig(context.Background(),
		awscfg.WithRegion(region),
		awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		log.Fatalf("load s3 config failed: %v", err)
	}

	S3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if config.C.Proof.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.C.Proof.Endpoint)
		}
	})
}
