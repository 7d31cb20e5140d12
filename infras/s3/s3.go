package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"pms/config"
	"pms/infras/otel"
	"pms/shared/constant"
)

// Object is a document to archive. Key is relative to the configured bucket.
type Object struct {
	Key         string
	ContentType string
	Body        []byte
	Metadata    map[string]string
}

// S3 archives documents such as night audit reports in an S3 compatible bucket.
type S3 interface {
	Put(ctx context.Context, object Object) (url string, err error)
}

type s3Impl struct {
	client       *s3.Client
	bucket       string
	publicDomain string
	otel         otel.Otel
}

// ObjectKey joins key segments, dropping empty ones and leading slashes.
func ObjectKey(segments ...string) string {
	return strings.TrimPrefix(path.Join(segments...), "/")
}

// PublicURL is where an archived key can be fetched. Without a public domain the s3 URI is used.
func PublicURL(publicDomain, bucket, key string) string {
	if publicDomain == "" {
		return fmt.Sprintf("s3://%s/%s", bucket, key)
	}

	return strings.TrimSuffix(publicDomain, "/") + "/" + (&url.URL{Path: key}).EscapedPath()
}

func (svc *s3Impl) Put(ctx context.Context, object Object) (location string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Put")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"s3.bucket": svc.bucket,
		"s3.key":    object.Key,
		"s3.size":   len(object.Body),
	})

	body := bytes.NewReader(object.Body)

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(object.Key),
		Body:          body,
		ContentType:   aws.String(object.ContentType),
		ContentLength: aws.Int64(body.Size()),
		Metadata:      object.Metadata,
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", svc.bucket).Str("key", object.Key).Msg("failed to put object")

		return constant.Empty, fmt.Errorf("failed to put object %s: %w", object.Key, err)
	}

	return PublicURL(svc.publicDomain, svc.bucket, object.Key), nil
}

func New(config *config.Config, otel otel.Otel) S3 {
	cfg := config.External.S3

	provider := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(provider),
		awsConfig.WithRegion(cfg.Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.APIEndpoint)
		}

		o.UsePathStyle = cfg.UsePathStyle
	})

	return &s3Impl{
		client:       client,
		bucket:       cfg.BucketName,
		publicDomain: cfg.PublicDomain,
		otel:         otel,
	}
}
