// Package snapshot stores rendered HTML snapshots on the local filesystem
// or in an S3 bucket.
//
//	store, err := snapshot.FromConfig(cfg)
//	loc, err := store.Put(ctx, snapshot.Name("page.yaml", time.Now()), html)
package snapshot

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
)

// ContentType is the content type snapshots are stored with.
const ContentType = "text/html; charset=utf-8"

// Store persists a snapshot and returns where it was written.
type Store interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// Name returns a snapshot name for the tree document at page rendered at t,
// e.g. "home-20261017T090000Z.html".
func Name(page string, t time.Time) string {
	base := filepath.Base(page)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "snapshot"
	}
	return base + "-" + t.UTC().Format("20060102T150405Z") + ".html"
}

// FileStore writes snapshots into a local directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore, creating dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("V030").WithDetail(dir).Wrap(err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the snapshot directory.
func (s *FileStore) Dir() string { return s.dir }

// Put writes data to dir/name.
func (s *FileStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.New("V030").Wrap(err)
	}
	if name == "" || filepath.Base(name) != name {
		return "", errors.New("V030").WithDetailf("invalid snapshot name %q", name)
	}

	p := filepath.Join(s.dir, name)
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", errors.New("V030").WithDetail(p).Wrap(err)
	}
	return p, nil
}

// PutObjectAPI is the part of *s3.Client S3Store uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads snapshots to an S3 bucket.
type S3Store struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Store creates an S3Store. Keys are prefix + name.
func NewS3Store(client PutObjectAPI, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Put uploads data and returns its s3:// location.
func (s *S3Store) Put(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" {
		return "", errors.New("V030").WithDetail("empty snapshot name")
	}
	key := path.Join(s.prefix, name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(ContentType),
		ContentLength: aws.Int64(int64(len(data))),
		Metadata: map[string]string{
			"snapshot-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New("V030").WithDetailf("s3://%s/%s", s.bucket, key).Wrap(err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}

// NewS3Client creates an S3 client for the region. A non-empty endpoint
// selects an S3-compatible service and path-style addressing. Credentials
// come from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func NewS3Client(region, endpoint string) *s3.Client {
	opts := s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials(ctx context.Context) (aws.Credentials, error) {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, errors.New("V030").
			WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set for S3 snapshots")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}, nil
}

// FromConfig returns the S3 store when a bucket is configured and the
// local file store otherwise.
func FromConfig(cfg *config.Config) (Store, error) {
	s3cfg := cfg.Snapshot.S3
	if s3cfg.Bucket != "" {
		if s3cfg.Region == "" {
			return nil, errors.New("V010").
				WithDetail("snapshot.s3.region is required when a bucket is set")
		}
		return NewS3Store(NewS3Client(s3cfg.Region, s3cfg.Endpoint), s3cfg.Bucket, s3cfg.Prefix), nil
	}
	fs, err := NewFileStore(cfg.SnapshotPath())
	if err != nil {
		return nil, err
	}
	return fs, nil
}
