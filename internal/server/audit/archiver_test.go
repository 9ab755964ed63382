package audit

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPutter struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (c *capturingPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if c.err != nil {
		return nil, c.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	c.keys = append(c.keys, *params.Key)
	c.bodies = append(c.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestArchiver_ArchiveOnce(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &Event{EventType: EventLoginSuccess, UserID: "u1"}))
	require.NoError(t, repo.Append(ctx, &Event{EventType: EventEncryptionOp, UserID: "u1"}))

	putter := &capturingPutter{}
	a := NewArchiver(ArchiverConfig{Bucket: "vault", Interval: time.Minute}, repo, testLogger())
	a.client = putter

	require.NoError(t, a.archiveOnce(ctx))
	require.Len(t, putter.keys, 1)
	assert.True(t, strings.HasPrefix(putter.keys[0], "audit/"))
	assert.True(t, strings.HasSuffix(putter.keys[0], ".json"))

	var events []Event
	require.NoError(t, json.Unmarshal(putter.bodies[0], &events))
	assert.Len(t, events, 2)

	// Nothing new: no second object is written.
	require.NoError(t, a.archiveOnce(ctx))
	assert.Len(t, putter.keys, 1)

	// New events resume after the archived sequence.
	require.NoError(t, repo.Append(ctx, &Event{EventType: EventProtocolUsage, UserID: "u1"}))
	require.NoError(t, a.archiveOnce(ctx))
	require.Len(t, putter.keys, 2)

	events = nil
	require.NoError(t, json.Unmarshal(putter.bodies[1], &events))
	assert.Len(t, events, 1)
}

func TestArchiver_UploadFailureKeepsCursor(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &Event{EventType: EventLoginSuccess, UserID: "u1"}))

	putter := &capturingPutter{err: context.DeadlineExceeded}
	a := NewArchiver(ArchiverConfig{Bucket: "vault"}, repo, testLogger())
	a.client = putter

	require.Error(t, a.archiveOnce(ctx))

	// The failed batch is retried on the next run.
	putter.err = nil
	require.NoError(t, a.archiveOnce(ctx))
	require.Len(t, putter.keys, 1)
}
