package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"boardpulse/internal/domain/entity"
)

func TestKeyFormats(t *testing.T) {
	ref := entity.ContentRef{Type: entity.ContentTypeNotice, ID: 42}
	assert.Equal(t, "viewcount:notice:42", CounterKey(ref))
	assert.Equal(t, "viewed:notice:42:abc123", MarkerKey(ref, "abc123"))
	assert.Equal(t, "lock:drain:notice:42", DrainLockKey(ref))
	assert.Equal(t, "viewcount:notice:*", CounterKeyPattern(entity.ContentTypeNotice))
	assert.Equal(t, "viewed:community:*", MarkerKeyPattern(entity.ContentTypeCommunity))
}

func TestParseCounterKeyRoundTrip(t *testing.T) {
	ref := entity.ContentRef{Type: entity.ContentTypeCommunity, ID: 10}
	parsed, err := ParseCounterKey(CounterKey(ref))
	assert.NoError(t, err)
	assert.Equal(t, ref, parsed)
}

func TestParseCounterKeyRejectsMalformed(t *testing.T) {
	for _, key := range []string{
		"",
		"viewcount",
		"viewcount:notice",
		"viewcount:blog:42",
		"viewcount:notice:forty-two",
		"viewed:notice:42:abc",
		"viewcount:notice:42:extra",
	} {
		_, err := ParseCounterKey(key)
		assert.Error(t, err, "key %q should not parse", key)
	}
}
