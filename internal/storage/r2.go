package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	appconfig "oleo-backend/internal/config"
	"oleo-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client uploads images and report artifacts to an S3-compatible (R2)
// bucket and returns their public URLs.
type Client struct {
	s3        *s3.Client
	bucket    string
	publicURL string
}

func New(ctx context.Context, cfg *appconfig.Config) (*Client, error) {
	st := cfg.Storage
	if st.Endpoint == "" || st.AccessKey == "" || st.SecretKey == "" {
		return nil, errors.New("object storage not configured")
	}

	region := st.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			st.AccessKey, st.SecretKey, "",
		)),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure storage client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(st.Endpoint)
	})

	return &Client{s3: client, bucket: st.Bucket, publicURL: strings.TrimRight(st.PublicURL, "/")}, nil
}

// Upload stores the object under a timestamped key and returns its public
// URL.
func (c *Client) Upload(ctx context.Context, prefix, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%s_%s", prefix, timeutil.Now().Format("20060102_150405"), sanitize(filename))

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	return c.publicURL + "/" + key, nil
}

func sanitize(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '_' || r == '-':
			return r
		}
		return -1
	}, name)
}
