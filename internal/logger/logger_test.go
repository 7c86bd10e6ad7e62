package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextAddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-7")
	CtxInfo(ctx, "hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "user-7", line["user_id"])
	assert.Equal(t, "v", line["k"])
}

func TestWorkerLogLevels(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)

	WorkerLog("scan_worker", "scan", assert.AnError, "image_id", "img1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "scan_worker", line["worker"])
	assert.Equal(t, "img1", line["image_id"])
	assert.Equal(t, assert.AnError.Error(), line["error"])
}
