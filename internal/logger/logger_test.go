package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_AddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	initWithWriter("development", &buf)
	t.Cleanup(func() { log = nil })

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-9")
	CtxInfo(ctx, "hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "user_id=user-9")
	assert.Contains(t, out, "k=v")
}

func TestCtxWithError_AttachesError(t *testing.T) {
	var buf bytes.Buffer
	initWithWriter("production", &buf)
	t.Cleanup(func() { log = nil })

	CtxWithError(context.Background(), "cleanup failed", errors.New("deadlock"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error":"deadlock"`)
}

func TestProduction_SuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	initWithWriter("production", &buf)
	t.Cleanup(func() { log = nil })

	Debug("noise")

	assert.Empty(t, buf.String())
}

func TestGetters_EmptyContext(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Empty(t, GetUserID(context.Background()))
}
