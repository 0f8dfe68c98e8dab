package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_FallsBackToDefault(t *testing.T) {
	require.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWith_AttachesAttributes(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))

	ctx := With(WithLogger(context.Background(), logger), "run_id", "vomix20250101_000000")
	FromContext(ctx).Info("hello")

	assert.Contains(t, buf.String(), "run_id=vomix20250101_000000")
	assert.Contains(t, buf.String(), "msg=hello")
}
