package publish

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"

	"git.home.luguber.info/inful/previewbuilder/internal/errors"
)

// newFakeS3 starts an in-memory S3 service with one bucket and returns the
// backend plus a publisher wired against it.
func newFakeS3(t *testing.T, bucket string) (*s3mem.Backend, *S3Publisher) {
	t.Helper()

	// Static credentials keep the SDK away from IMDS.
	t.Setenv("AWS_ACCESS_KEY_ID", "mock-access-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "mock-secret-key")
	t.Setenv("AWS_REGION", "us-east-1")

	mock := s3mem.New()
	if err := mock.CreateBucket(bucket); err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(gofakes3.New(mock).Server())
	t.Cleanup(ts.Close)

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion("us-east-1"))
	if err != nil {
		t.Fatalf("failed to load aws config: %v", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(ts.URL)
		o.UsePathStyle = true
	})
	return mock, NewS3PublisherFromClient(client, bucket)
}

func TestS3PublisherUploadsEveryArtifact(t *testing.T) {
	mock, publisher := newFakeS3(t, "previews")

	artifacts := []Artifact{
		{Name: "index.html", Data: []byte("<html/>"), MediaType: "text/html"},
		{Name: "index.js", Data: []byte("console.log(1);"), MediaType: "application/javascript"},
		{Name: "index.css", Data: []byte("body{}"), MediaType: "text/css"},
	}

	keys, err := publisher.Publish(context.Background(), "abc123", artifacts)
	if err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %v", keys)
	}

	for _, a := range artifacts {
		obj, err := mock.GetObject("previews", "abc123/"+a.Name, nil)
		if err != nil {
			t.Fatalf("object %s not uploaded: %v", a.Name, err)
		}
		contents, err := io.ReadAll(obj.Contents)
		if err != nil {
			t.Fatal(err)
		}
		_ = obj.Contents.Close()
		if string(contents) != string(a.Data) {
			t.Errorf("object %s content mismatch: %q", a.Name, contents)
		}
		if ct := obj.Metadata["Content-Type"]; ct != a.MediaType {
			t.Errorf("object %s content type = %q, want %q", a.Name, ct, a.MediaType)
		}
	}
}

func TestS3PublisherOverwritesByKey(t *testing.T) {
	mock, publisher := newFakeS3(t, "previews")
	ctx := context.Background()

	first := []Artifact{{Name: "index.html", Data: []byte("v1"), MediaType: "text/html"}}
	second := []Artifact{{Name: "index.html", Data: []byte("v2"), MediaType: "text/html"}}

	if _, err := publisher.Publish(ctx, "abc123", first); err != nil {
		t.Fatal(err)
	}
	if _, err := publisher.Publish(ctx, "abc123", second); err != nil {
		t.Fatal(err)
	}

	obj, err := mock.GetObject("previews", "abc123/index.html", nil)
	if err != nil {
		t.Fatal(err)
	}
	contents, _ := io.ReadAll(obj.Contents)
	_ = obj.Contents.Close()
	if string(contents) != "v2" {
		t.Errorf("expected overwrite, got %q", contents)
	}
}

func TestS3PublisherMissingBucket(t *testing.T) {
	_, publisher := newFakeS3(t, "previews")
	bad := NewS3PublisherFromClient(publisher.client, "absent-bucket")

	_, err := bad.Publish(context.Background(), "abc123", []Artifact{
		{Name: "index.html", Data: []byte("x"), MediaType: "text/html"},
	})
	if err == nil {
		t.Fatal("expected upload failure for missing bucket")
	}
	if !errors.IsCategory(err, errors.CategoryPublish) {
		t.Errorf("expected publish category, got %v", err)
	}
}
