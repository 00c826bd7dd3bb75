package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashIsKeccak256(t *testing.T) {
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", Hash(""))
	assert.Equal(t, "0x1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8", Hash("hello"))
	assert.NotEqual(t, Hash("a@trap.test"), Hash("A@trap.test"))
}
