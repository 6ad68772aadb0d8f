package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinksArray_NilIsEmptyArrayNotNull(t *testing.T) {
	value, err := linksArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", value)

	value, err = linksArray([]string{"https://github.com/a/b"}).Value()
	require.NoError(t, err)
	assert.Equal(t, `{"https://github.com/a/b"}`, value)
}
