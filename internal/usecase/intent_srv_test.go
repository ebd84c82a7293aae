package usecase

import (
	"context"
	"testing"

	"servicehub/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentService_CaptureAndConsumeOnce(t *testing.T) {
	env := newTestEnv()
	ref := uuid.New().String()

	err := env.service.Intent.Capture(context.Background(), ref, &request.CaptureIntentRequest{
		ServiceID: "7",
		PackageID: "2",
	})
	require.NoError(t, err)

	intent, err := env.service.Intent.ConsumeIfPresent(context.Background(), ref)
	require.NoError(t, err)
	require.NotNil(t, intent)
	assert.Equal(t, "7", intent.ServiceID)
	assert.Equal(t, "2", intent.PackageID)

	// Consumed means gone: the same selection never reappears.
	again, err := env.service.Intent.ConsumeIfPresent(context.Background(), ref)
	require.NoError(t, err)
	assert.Nil(t, again)
}

// A selection captured before the user authenticates must still be
// there after login replaces their session. The reference lives in a
// browser cookie, so the same ref spans both sides of the redirect.
func TestIntentService_SurvivesLoginRedirect(t *testing.T) {
	env := newTestEnv()
	ref := uuid.New().String()

	// Anonymous visitor picks a service and package, then is sent to
	// log in. No session exists at capture time.
	err := env.service.Intent.Capture(context.Background(), ref, &request.CaptureIntentRequest{
		ServiceID: "7",
		PackageID: "2",
	})
	require.NoError(t, err)

	// Registration and login each mint a brand-new session.
	_, registerToken, err := env.service.Auth.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	_, loginToken, err := env.service.Auth.Login(context.Background(), &request.LoginRequest{
		Email:    "priya@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEqual(t, registerToken.SessionID, loginToken.SessionID)

	// Back in checkout under the fresh session, the same ref still
	// yields the pre-login selection.
	intent, err := env.service.Intent.ConsumeIfPresent(context.Background(), ref)
	require.NoError(t, err)
	require.NotNil(t, intent)
	assert.Equal(t, "7", intent.ServiceID)
	assert.Equal(t, "2", intent.PackageID)
}

func TestIntentService_ConsumeWithoutCapture(t *testing.T) {
	env := newTestEnv()

	intent, err := env.service.Intent.ConsumeIfPresent(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, intent)
}

func TestIntentService_ConsumeWithoutReference(t *testing.T) {
	env := newTestEnv()

	// A visitor with no intent cookie at all is not an error.
	intent, err := env.service.Intent.ConsumeIfPresent(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, intent)
}

func TestIntentService_CaptureOverwrites(t *testing.T) {
	env := newTestEnv()
	ref := uuid.New().String()

	require.NoError(t, env.service.Intent.Capture(context.Background(), ref, &request.CaptureIntentRequest{
		ServiceID: "1", PackageID: "1",
	}))
	require.NoError(t, env.service.Intent.Capture(context.Background(), ref, &request.CaptureIntentRequest{
		ServiceID: "3", PackageID: "3",
	}))

	intent, err := env.service.Intent.ConsumeIfPresent(context.Background(), ref)
	require.NoError(t, err)
	require.NotNil(t, intent)
	assert.Equal(t, "3", intent.ServiceID)
	assert.Equal(t, "3", intent.PackageID)
}

func TestIntentService_IntentIsPerReference(t *testing.T) {
	env := newTestEnv()
	refA := uuid.New().String()
	refB := uuid.New().String()

	require.NoError(t, env.service.Intent.Capture(context.Background(), refA, &request.CaptureIntentRequest{
		ServiceID: "2", PackageID: "1",
	}))

	intent, err := env.service.Intent.ConsumeIfPresent(context.Background(), refB)
	require.NoError(t, err)
	assert.Nil(t, intent)
}

func TestIntentService_CaptureRequiresReference(t *testing.T) {
	env := newTestEnv()

	err := env.service.Intent.Capture(context.Background(), "", &request.CaptureIntentRequest{
		ServiceID: "1", PackageID: "1",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIntentService_CaptureRequiresSelection(t *testing.T) {
	env := newTestEnv()

	err := env.service.Intent.Capture(context.Background(), uuid.New().String(), &request.CaptureIntentRequest{
		ServiceID: "1",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
