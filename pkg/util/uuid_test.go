package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMd5ThenHex(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", Md5ThenHex(nil))
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", Md5ThenHex([]byte("abc")))
}

func TestHashUUID(t *testing.T) {
	a := HashUUID([]any{1, "x"})
	b := HashUUID([]any{1, "x"})
	c := HashUUID([]any{2, "x"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)

	assert.Empty(t, HashUUID(func() {}))
}

func TestNewID(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}
