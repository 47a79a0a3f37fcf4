package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrWrap(t *testing.T) {
	assert.Equal(t, "value", ErrWrap("fallback")("value", nil))
	assert.Equal(t, "fallback", ErrWrap("fallback")("value", errors.New("ko")))
	assert.Equal(t, 42, ErrWrap(42)(0, errors.New("ko")))
}

func TestErrOnly(t *testing.T) {
	failure := errors.New("ko")
	assert.Equal(t, failure, ErrOnly("value", failure))
	assert.Nil(t, ErrOnly("value", nil))
}

func TestFallback(t *testing.T) {
	assert.Equal(t, "value", Fallback("value", "fallback"))
	assert.Equal(t, "fallback", Fallback("", "fallback"))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short"))
	assert.Equal(t, "first second", Excerpt("first\nsecond"))
	assert.Equal(t, "abcde...", Excerpt("abcdefghi", 5))
}

func TestHumanizeBytes(t *testing.T) {
	assert.Equal(t, "512B", HumanizeBytes(512))
	assert.Equal(t, "2.0KB", HumanizeBytes(2048))
	assert.Equal(t, "5.0MB", HumanizeBytes(5*1024*1024))
	assert.Equal(t, "1.5GB", HumanizeBytes(3*1024*1024*1024/2))
}
