package snapshot

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestName(t *testing.T) {
	at := time.Date(2026, 10, 17, 9, 30, 5, 0, time.FixedZone("X", 2*3600))

	tests := []struct {
		page string
		want string
	}{
		{"page.yaml", "page-20261017T073005Z.html"},
		{"/srv/site/home.json", "home-20261017T073005Z.html"},
		{"views/index", "index-20261017T073005Z.html"},
		{"", "snapshot-20261017T073005Z.html"},
	}
	for _, tt := range tests {
		if got := Name(tt.page, at); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestFileStorePut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snaps")
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	loc, err := store.Put(context.Background(), "a.html", []byte("<p>hi</p>"))
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if loc != filepath.Join(dir, "a.html") {
		t.Errorf("Put() location = %q", loc)
	}
	data, err := os.ReadFile(loc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<p>hi</p>" {
		t.Errorf("file contents = %q", data)
	}
}

func TestFileStoreRejectsPaths(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"", "../escape.html", "sub/dir.html"} {
		if _, err := store.Put(context.Background(), name, nil); !errors.HasCode(err, "V030") {
			t.Errorf("Put(%q) error = %v, want V030", name, err)
		}
	}
}

func TestFileStoreCanceled(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, "a.html", nil)
	if !errors.HasCode(err, "V030") || !stderrors.Is(err, context.Canceled) {
		t.Errorf("Put(canceled) error = %v, want V030 wrapping context.Canceled", err)
	}
}

func TestS3StorePut(t *testing.T) {
	client := &fakeS3{}
	store := NewS3Store(client, "bucket", "site/snaps")

	loc, err := store.Put(context.Background(), "a.html", []byte("<p>hi</p>"))
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if loc != "s3://bucket/site/snaps/a.html" {
		t.Errorf("Put() location = %q", loc)
	}
	if len(client.inputs) != 1 {
		t.Fatalf("PutObject calls = %d, want 1", len(client.inputs))
	}

	in := client.inputs[0]
	if aws.ToString(in.Bucket) != "bucket" {
		t.Errorf("Bucket = %q", aws.ToString(in.Bucket))
	}
	if aws.ToString(in.Key) != "site/snaps/a.html" {
		t.Errorf("Key = %q", aws.ToString(in.Key))
	}
	if aws.ToString(in.ContentType) != ContentType {
		t.Errorf("ContentType = %q", aws.ToString(in.ContentType))
	}
	if aws.ToInt64(in.ContentLength) != 9 {
		t.Errorf("ContentLength = %d, want 9", aws.ToInt64(in.ContentLength))
	}
	if string(client.bodies[0]) != "<p>hi</p>" {
		t.Errorf("body = %q", client.bodies[0])
	}
}

func TestS3StoreError(t *testing.T) {
	cause := stderrors.New("access denied")
	store := NewS3Store(&fakeS3{err: cause}, "bucket", "")

	_, err := store.Put(context.Background(), "a.html", []byte("x"))
	if !errors.HasCode(err, "V030") {
		t.Errorf("Put() error = %v, want V030", err)
	}
	if !stderrors.Is(err, cause) {
		t.Errorf("Put() error = %v, want it to wrap the client error", err)
	}
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		t.Fatal(err)
	}

	store, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig() error: %v", err)
	}
	fs, ok := store.(*FileStore)
	if !ok {
		t.Fatalf("FromConfig() = %T, want *FileStore", store)
	}
	if fs.Dir() != filepath.Join(dir, config.DefaultSnapshotDir) {
		t.Errorf("Dir() = %q", fs.Dir())
	}

	cfg.Snapshot.S3 = config.S3Config{Bucket: "b", Region: "us-east-1", Endpoint: "http://127.0.0.1:9000"}
	store, err = FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig(s3) error: %v", err)
	}
	if _, ok := store.(*S3Store); !ok {
		t.Errorf("FromConfig(s3) = %T, want *S3Store", store)
	}

	cfg.Snapshot.S3.Region = ""
	if _, err := FromConfig(cfg); !errors.HasCode(err, "V010") {
		t.Errorf("FromConfig(no region) error = %v, want V010", err)
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	if _, err := envCredentials(context.Background()); !errors.HasCode(err, "V030") {
		t.Errorf("envCredentials() error = %v, want V030", err)
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "id")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_SESSION_TOKEN", "token")
	creds, err := envCredentials(context.Background())
	if err != nil {
		t.Fatalf("envCredentials() error: %v", err)
	}
	if creds.AccessKeyID != "id" || creds.SecretAccessKey != "secret" || creds.SessionToken != "token" {
		t.Errorf("envCredentials() = %+v", creds)
	}
}
