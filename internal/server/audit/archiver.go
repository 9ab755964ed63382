package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/logging"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArchiverConfig carries the S3-compatible backend settings for audit
// snapshots. The archiver is enabled only when Bucket is non-empty.
type ArchiverConfig struct {
	Bucket       string
	Region       string
	RootUser     string
	RootPassword string
	BaseEndpoint string
	Interval     time.Duration
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver periodically uploads newly appended audit events as JSON objects.
// It shares the append-only contract: strictly best-effort, it never mutates
// the trail and upload failures only produce log lines.
type Archiver struct {
	cfg     ArchiverConfig
	repo    Repository
	logger  logging.Logger
	client  objectPutter
	lastSeq int64
}

func NewArchiver(cfg ArchiverConfig, repo Repository, logger logging.Logger) *Archiver {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	return &Archiver{cfg: cfg, repo: repo, logger: logger.With("module", "audit_archiver")}
}

func (a *Archiver) getClient(ctx context.Context) (objectPutter, error) {
	if a.client != nil {
		return a.client, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(a.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			a.cfg.RootUser,
			a.cfg.RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	a.client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(a.cfg.BaseEndpoint)
		o.UsePathStyle = true
	})

	return a.client, nil
}

func snapshotKey(now time.Time) string {
	return fmt.Sprintf("audit/%d/%02d/%02d/%v.json", now.Year(), now.Month(), now.Day(), uuid.New())
}

func (a *Archiver) archiveOnce(ctx context.Context) error {

	events, err := a.repo.ListAfter(ctx, a.lastSeq)
	if err != nil {
		return fmt.Errorf("error collecting events: %w", err)
	}
	if len(events) == 0 {
		return nil
	}

	body, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("error marshalling snapshot: %w", err)
	}

	client, err := a.getClient(ctx)
	if err != nil {
		return fmt.Errorf("error creating s3 client: %w", err)
	}

	key := snapshotKey(time.Now().UTC())
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("error uploading snapshot: %w", err)
	}

	a.lastSeq = events[len(events)-1].Seq
	a.logger.Info(ctx, "audit snapshot archived", "key", key, "events", len(events))

	return nil
}

// Run archives on every tick until ctx is cancelled. A final best-effort
// snapshot is taken on shutdown.
func (a *Archiver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	a.logger.Info(ctx, "starting audit archiver",
		"bucket", a.cfg.Bucket, "interval", a.cfg.Interval.String())

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := a.archiveOnce(flushCtx); err != nil {
				a.logger.Error(flushCtx, "final audit snapshot failed", "error", err.Error())
			}
			return
		case <-ticker.C:
			if err := a.archiveOnce(ctx); err != nil {
				a.logger.Error(ctx, "audit snapshot failed", "error", err.Error())
			}
		}
	}
}
