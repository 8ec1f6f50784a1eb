// server/internal/s3/archiver.go
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"station-request-api-server/config"
	"station-request-api-server/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the part of the S3 client the archiver needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Receipt is the archived record of a submitted request.
type Receipt struct {
	Request     models.Request `json:"request"`
	StationCode string         `json:"stationCode"`
	SubmittedBy string         `json:"submittedBy"`
	Lines       interface{}    `json:"lines"`
	ArchivedAt  time.Time      `json:"archivedAt"`
}

type Archiver struct {
	Client           PutObjectAPI
	Bucket           string
	Region           string
	CloudFrontDomain string
}

// NewArchiver returns nil when no bucket is configured; a nil archiver
// archives nothing.
func NewArchiver(ctx context.Context, cfg config.S3Config) (*Archiver, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Archiver{
		Client:           s3.NewFromConfig(sdkConfig),
		Bucket:           cfg.Bucket,
		Region:           cfg.Region,
		CloudFrontDomain: cfg.CloudFrontDomain,
	}, nil
}

func ObjectKey(requestID string) string {
	return "requests/" + requestID + ".json"
}

// Archive uploads the receipt as JSON and returns its URL.
func (a *Archiver) Archive(ctx context.Context, r Receipt) (string, error) {
	if a == nil {
		return "", nil
	}
	body, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode receipt %s: %w", r.Request.ID, err)
	}

	key := ObjectKey(r.Request.ID)
	_, err = a.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt to S3: %w", err)
	}
	return a.URL(key), nil
}

func (a *Archiver) URL(key string) string {
	if a.CloudFrontDomain != "" {
		return fmt.Sprintf("https://%s/%s", a.CloudFrontDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.Bucket, a.Region, key)
}
