package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_Deliver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	loc, err := FileSink{Dir: dir}.Deliver(context.Background(), Filename, []byte("%PDF-1.3 test"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resume.pdf"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 test", string(data))
	assert.Equal(t, []string{"resume.pdf"}, dirEntries(t, dir))
}

func TestFileSink_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Filename), []byte("old"), 0o644))

	_, err := FileSink{Dir: dir}.Deliver(context.Background(), Filename, []byte("new"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, Filename))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.Equal(t, []string{"resume.pdf"}, dirEntries(t, dir))
}

func TestFileSink_BadDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := FileSink{Dir: file}.Deliver(context.Background(), Filename, []byte("data"))
	assert.Error(t, err)
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Deliver(t *testing.T) {
	client := &fakeS3{}
	sink := S3Sink{Client: client, Bucket: "resumes", Prefix: "exports/2026"}

	loc, err := sink.Deliver(context.Background(), Filename, []byte("pdf-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "s3://resumes/exports/2026/resume.pdf", loc)
	require.NotNil(t, client.input)
	assert.Equal(t, "resumes", aws.ToString(client.input.Bucket))
	assert.Equal(t, "exports/2026/resume.pdf", aws.ToString(client.input.Key))
	assert.Equal(t, "application/pdf", aws.ToString(client.input.ContentType))
	assert.Equal(t, int64(9), aws.ToInt64(client.input.ContentLength))
	assert.Equal(t, `attachment; filename="resume.pdf"`, aws.ToString(client.input.ContentDisposition))
	assert.Equal(t, []byte("pdf-bytes"), client.body)
}

func TestS3Sink_NoPrefix(t *testing.T) {
	client := &fakeS3{}
	loc, err := S3Sink{Client: client, Bucket: "b"}.Deliver(context.Background(), Filename, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "s3://b/resume.pdf", loc)
}

func TestS3Sink_Error(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	_, err := S3Sink{Client: client, Bucket: "b"}.Deliver(context.Background(), Filename, []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	assert.Contains(t, err.Error(), "s3://b/resume.pdf")
}

func TestNewS3Client_CustomEndpoint(t *testing.T) {
	client, err := NewS3Client(context.Background(), S3Options{
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	opts := client.Options()
	assert.Equal(t, "us-east-1", opts.Region)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}

func TestResponseSink_Deliver(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := ResponseSink{W: rec}.Deliver(context.Background(), Filename, []byte("pdf"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="resume.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "3", rec.Header().Get("Content-Length"))
	assert.Equal(t, "pdf", rec.Body.String())
}

func TestWriterSink_Deliver(t *testing.T) {
	var buf bytes.Buffer
	loc, err := WriterSink{W: &buf}.Deliver(context.Background(), Filename, []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, Filename, loc)
	assert.Equal(t, "pdf", buf.String())
}
