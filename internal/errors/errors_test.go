package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrTransport,
		ErrDecode,
		ErrRender,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Unknown mode 'stream'",
			suggestion: "Use 'pull' or 'push'",
		},
		{
			name:       "transport error",
			code:       ErrTransport,
			message:    "Backend returned 503",
			suggestion: "Check that the backend is running",
		},
		{
			name:       "decode error",
			code:       ErrDecode,
			message:    "Payload is not a JSON array",
			suggestion: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name: "basic error formatting",
			err:  New(ErrConfig, "Invalid configuration", "Check .cpubars.yaml syntax"),
			expectedParts: []string{
				"✗",
				"Invalid configuration",
				"Check .cpubars.yaml syntax",
			},
		},
		{
			name:          "error without suggestion",
			err:           New(ErrRender, "Render failed", ""),
			expectedParts: []string{"Render failed"},
			notExpected:   []string{"\n\n  \n"},
		},
		{
			name:          "error with cause",
			err:           Transport(errors.New("connection refused"), "GET %s failed", "http://x/api/cpus"),
			expectedParts: []string{"GET http://x/api/cpus failed", "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part)
			}
		})
	}
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("dial tcp 127.0.0.1:3000: connection refused"),
		ErrTransport,
		"Cannot reach the backend",
		"Start the backend or pass --url",
	)

	lines := strings.Split(err.Error(), "\n")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "✗"))
	assert.Contains(t, lines[0], "Cannot reach the backend")
}

func TestTransportAndDecode(t *testing.T) {
	cause := errors.New("boom")

	tErr := Transport(cause, "status %d", 500)
	assert.Equal(t, ErrTransport, tErr.Code)
	assert.Equal(t, "status 500", tErr.Message)
	assert.True(t, errors.Is(tErr, cause))

	dErr := Decode(cause, "bad payload")
	assert.Equal(t, ErrDecode, dErr.Code)
	assert.True(t, IsCode(dErr, ErrDecode))
	assert.False(t, IsCode(dErr, ErrTransport))
}

func TestShortAndSummary(t *testing.T) {
	err := Decode(errors.New("unexpected token"), "payload is not a reading vector")
	assert.Equal(t, "DECODE: payload is not a reading vector: unexpected token", err.Short())
	assert.Equal(t, err.Short(), Summary(err))

	noCause := New(ErrConfig, "bad mode", "")
	assert.Equal(t, "CONFIG: bad mode", noCause.Short())

	assert.Equal(t, "plain", Summary(errors.New("plain")))
	assert.Equal(t, "", Summary(nil))
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrTransport))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))

	// Works through fmt.Errorf wrapping
	outer := fmt.Errorf("attempt 3: %w", Transport(nil, "socket closed"))
	assert.True(t, IsCode(outer, ErrTransport))
}

func TestErrorsAs(t *testing.T) {
	wrapped := New(ErrConfig, "Config error", "Fix config")

	var cbErr *Error
	ok := errors.As(wrapped, &cbErr)

	assert.True(t, ok)
	assert.Equal(t, ErrConfig, cbErr.Code)
}
