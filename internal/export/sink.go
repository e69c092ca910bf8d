package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Filename is the name every exported document is delivered under.
const Filename = "resume.pdf"

// ContentType of exported documents.
const ContentType = "application/pdf"

// Sink delivers finished document bytes. It is only called with verified data.
type Sink interface {
	// Deliver stores data under name and returns where it ended up.
	Deliver(ctx context.Context, name string, data []byte) (string, error)
}

// FileSink writes documents into a directory. The file appears atomically:
// readers see either no file or the complete document.
type FileSink struct {
	Dir string
}

// Deliver writes data to Dir/name through a temporary file and a rename.
func (s FileSink) Deliver(_ context.Context, name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".resume-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to sync document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to close document: %w", err)
	}

	dest := filepath.Join(dir, name)
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to move document into place: %w", err)
	}
	return dest, nil
}

// S3PutObjectAPI is the part of the S3 client used by S3Sink.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads documents to an S3 compatible bucket.
type S3Sink struct {
	Client S3PutObjectAPI
	Bucket string
	Prefix string
}

// Deliver uploads data as Prefix/name.
func (s S3Sink) Deliver(ctx context.Context, name string, data []byte) (string, error) {
	key := name
	if s.Prefix != "" {
		key = path.Join(s.Prefix, name)
	}
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.Bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentLength:      aws.Int64(int64(len(data))),
		ContentType:        aws.String(ContentType),
		ContentDisposition: aws.String(attachment(name)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3://%s/%s: %w", s.Bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.Bucket, key), nil
}

// S3Options configures NewS3Client. Empty fields fall back to the standard AWS environment.
type S3Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Client builds an S3 client. A custom endpoint switches to path-style
// addressing so S3 compatible stores work.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// ResponseSink streams the document to an HTTP client as an attachment.
type ResponseSink struct {
	W http.ResponseWriter
}

// Deliver writes headers and body in one go.
func (s ResponseSink) Deliver(_ context.Context, name string, data []byte) (string, error) {
	h := s.W.Header()
	h.Set("Content-Type", ContentType)
	h.Set("Content-Disposition", attachment(name))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	s.W.WriteHeader(http.StatusOK)
	if _, err := s.W.Write(data); err != nil {
		return "", fmt.Errorf("failed to write response: %w", err)
	}
	return name, nil
}

// WriterSink copies the document to an arbitrary writer, e.g. stdout.
type WriterSink struct {
	W io.Writer
}

// Deliver writes data to W.
func (s WriterSink) Deliver(_ context.Context, name string, data []byte) (string, error) {
	if _, err := s.W.Write(data); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return name, nil
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}
