package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNew(t *testing.T) {
	h, err := New("sha1")
	require.NoError(t, err)
	assert.IsType(t, SHA1{}, h)

	h, err = New("")
	require.NoError(t, err)
	assert.IsType(t, SHA1{}, h)

	h, err = New("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, Bcrypt{}, h)

	_, err = New("md5")
	require.Error(t, err)
}

func TestSHA1_KnownDigest(t *testing.T) {
	digest, err := SHA1{}.Hash("toto1234!")
	require.NoError(t, err)
	assert.Equal(t, "89cad29e3ebc1035b29b1478a8e70854f25fa2b2", digest)

	again, _ := SHA1{}.Hash("toto1234!")
	assert.Equal(t, digest, again)
}

func TestSHA1_Verify(t *testing.T) {
	h := SHA1{}
	digest, _ := h.Hash("secret")

	assert.True(t, h.Verify("secret", digest))
	assert.False(t, h.Verify("Secret", digest))
	assert.False(t, h.Verify("secret", ""))
	assert.False(t, h.Verify("secret", "not-a-digest"))
}

func TestBcrypt_RoundTrip(t *testing.T) {
	h := Bcrypt{Cost: bcrypt.MinCost}

	d1, err := h.Hash("secret")
	require.NoError(t, err)
	d2, err := h.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2, "bcrypt digests are salted")
	assert.True(t, h.Verify("secret", d1))
	assert.True(t, h.Verify("secret", d2))
	assert.False(t, h.Verify("wrong", d1))
	assert.False(t, h.Verify("secret", "garbage"))
}
