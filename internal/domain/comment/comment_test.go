package comment

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment(t *testing.T) {
	c, err := NewComment(uuid.New(), uuid.New(), "  worked great ")
	require.NoError(t, err)
	assert.Equal(t, "worked great", c.Text())
	assert.False(t, c.CreatedAt().IsZero())

	_, err = NewComment(uuid.New(), uuid.New(), "   ")
	assert.Error(t, err)

	_, err = NewComment(uuid.New(), uuid.New(), strings.Repeat("x", maxTextLength+1))
	assert.Error(t, err)
}
