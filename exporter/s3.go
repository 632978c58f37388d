package exporter

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Alberto-Martinelli/webscraping-project/table"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Exporter encodes a table as CSV and uploads it to an S3 bucket.
type S3Exporter struct {
	Exporter
	client *s3.Client
	bucket string
	key    string
}

func init() {

	ctx := context.Background()
	err := RegisterExporter(ctx, "s3", NewS3Exporter)

	if err != nil {
		panic(err)
	}
}

// NewS3Exporter returns a new `S3Exporter` configured by 'uri' which is expected to take
// the form of:
//
//	s3://{BUCKET}/{KEY}?region={REGION}
//
// Credentials are resolved using the default AWS configuration chain.
func NewS3Exporter(ctx context.Context, uri string) (Exporter, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, err
	}

	bucket := u.Host
	key := strings.TrimLeft(u.Path, "/")

	if bucket == "" {
		return nil, fmt.Errorf("Missing bucket")
	}

	if key == "" {
		return nil, fmt.Errorf("Missing key")
	}

	opts := make([]func(*config.LoadOptions) error, 0)

	q := u.Query()

	if q.Has("region") {
		opts = append(opts, config.WithRegion(q.Get("region")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)

	if err != nil {
		return nil, fmt.Errorf("Failed to load AWS config, %w", err)
	}

	e := &S3Exporter{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
	}

	return e, nil
}

func (e *S3Exporter) Export(ctx context.Context, t *table.Table) error {

	var buf bytes.Buffer

	err := WriteCSV(ctx, &buf, t)

	if err != nil {
		return err
	}

	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(e.key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/csv"),
	})

	if err != nil {
		return fmt.Errorf("Failed to upload s3://%s/%s, %w", e.bucket, e.key, err)
	}

	return nil
}

func (e *S3Exporter) Close() error {
	return nil
}
