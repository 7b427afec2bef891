package load

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/fluidprops/fluid"
)

// S3Config holds explicit client parameters. Empty fields fall back to the
// default AWS configuration chain.
type S3Config struct {
	Region          string
	Endpoint        string // optional; e.g. MinIO
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	PathStyle       bool
}

// Environment variables read by S3ConfigFromEnv:
//   FLUIDPROPS_S3_REGION=<region> (default us-east-1)
//   FLUIDPROPS_S3_ENDPOINT=<url> (optional, for MinIO)
//   FLUIDPROPS_S3_PATH_STYLE=true|false (default false)
//   AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)

// S3ConfigFromEnv builds an S3Config from the process environment.
func S3ConfigFromEnv() S3Config {
	return S3Config{
		Region:    os.Getenv("FLUIDPROPS_S3_REGION"),
		Endpoint:  os.Getenv("FLUIDPROPS_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("FLUIDPROPS_S3_PATH_STYLE"), "true"),
	}
}

// ObjectGetter is the subset of *s3.Client the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client creates an S3 client from cfg.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// S3 fetches bucket/key and decodes it as Parquet when the key ends in
// .parquet, otherwise as CSV.
func S3(ctx context.Context, client ObjectGetter, bucket, key string, props fluid.PropertySet) ([]fluid.Row, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}

	var rows []fluid.Row
	if strings.EqualFold(path.Ext(key), ".parquet") {
		rows, err = Parquet(ctx, bytes.NewReader(data), props)
	} else {
		rows, err = CSV(bytes.NewReader(data), props)
	}
	if err != nil {
		return nil, fmt.Errorf("load s3://%s/%s: %w", bucket, key, err)
	}
	logrus.Infof("Read %d rows from s3://%s/%s (%d bytes)", len(rows), bucket, key, len(data))
	return rows, nil
}
