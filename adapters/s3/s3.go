// Package s3 implements the blob-store port on any S3-compatible backend
// (AWS S3 or MinIO).
package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/lborres/agenda/core"
)

type Config struct {
	Endpoint  string // empty for AWS; set for MinIO and friends
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

var _ core.BlobStore = (*Store)(nil)

func New(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg.Endpoint, cfg.Region, cfg.Bucket),
	}, nil
}

func (s *Store) SavePublic(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

// publicBaseURL builds the URL prefix for publicly readable objects:
// path-style against a custom endpoint, virtual-hosted style on AWS.
func publicBaseURL(endpoint, region, bucket string) string {
	if endpoint != "" {
		return strings.TrimSuffix(endpoint, "/") + "/" + bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
}
