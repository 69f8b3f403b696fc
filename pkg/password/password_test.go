package password_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"athlete-app/pkg/password"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.Hash("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	require.NoError(t, password.Compare(hash, "correct horse battery"))
	require.Error(t, password.Compare(hash, "wrong password"))
}

func TestHash_TooShort(t *testing.T) {
	_, err := password.Hash("short")
	require.ErrorIs(t, err, password.ErrTooShort)
}

func TestHash_MinLengthBoundary(t *testing.T) {
	_, err := password.Hash("12345678")
	require.NoError(t, err)

	_, err = password.Hash("1234567")
	require.ErrorIs(t, err, password.ErrTooShort)
}
