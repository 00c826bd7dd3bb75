package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-15))
	assert.Equal(t, 40, Clamp(40))
	assert.Equal(t, 100, Clamp(120))
}
