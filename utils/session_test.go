package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vendorisk/assessment-server/utils"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := utils.NewSessionToken(secret, 42, time.Hour)
	require.NoError(t, err)

	userID, err := utils.VerifySessionToken(secret, token)
	require.NoError(t, err)
	require.EqualValues(t, 42, userID)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := utils.NewSessionToken([]byte("secret-a"), 1, time.Hour)
	require.NoError(t, err)

	_, err = utils.VerifySessionToken([]byte("secret-b"), token)
	require.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := utils.NewSessionToken(secret, 1, -time.Minute)
	require.NoError(t, err)

	_, err = utils.VerifySessionToken(secret, token)
	require.Error(t, err)
}

func TestSessionTokenRequiresSecret(t *testing.T) {
	_, err := utils.NewSessionToken(nil, 1, time.Hour)
	require.Error(t, err)
	_, err = utils.VerifySessionToken(nil, "whatever")
	require.Error(t, err)
}
