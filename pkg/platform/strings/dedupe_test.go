package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	assert.Equal(t, []string{"user1", "user2"}, DedupeAndTrim([]string{" user1", "user2", "user1 ", "", "  "}))
	assert.Empty(t, DedupeAndTrim(nil))
}
