package contentagent

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(validationError("bad input")))
	assert.Equal(t, KindCredential, KindOf(credentialError("SOME_TOKEN")))
	assert.Equal(t, KindConfiguration, KindOf(configurationError("bad config")))
	assert.Equal(t, KindTransport, KindOf(transportError(errors.New("boom"), "call failed")))

	// Unclassified errors from external calls default to transport.
	assert.Equal(t, KindTransport, KindOf(errors.New("plain")))

	// Classification survives wrapping.
	wrapped := fmt.Errorf("outer: %w", validationError("inner"))
	assert.Equal(t, KindValidation, KindOf(wrapped))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "missing credential: LINKEDIN_ACCESS_TOKEN is not set", credentialError("LINKEDIN_ACCESS_TOKEN").Error())

	cause := errors.New("connection refused")
	err := transportError(cause, "upload failed")
	assert.Equal(t, "upload failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "value 7 out of range", validationError("value %d out of range", 7).Error())
}
