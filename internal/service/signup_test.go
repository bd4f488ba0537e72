package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"SafeCall/internal/form"
	pkgerrors "SafeCall/pkg/errors"
)

func signUpValues() form.Values {
	return form.Values{
		form.FieldFullName:        "Jane Smith",
		form.FieldEmail:           "jane@example.com",
		form.FieldPhone:           "(555) 012-3456",
		form.FieldPassword:        "pw123456",
		form.FieldConfirmPassword: "pw123456",
	}
}

func TestSignUpSubmit(t *testing.T) {
	s := NewSignUpService(0)

	res, err := s.Submit(context.Background(), signUpValues())
	require.NoError(t, err)
	require.Equal(t, "Jane Smith", res.FullName)
	require.Equal(t, "jane@example.com", res.Email)
	require.False(t, s.Submitting())
}

func TestSignUpShortPassword(t *testing.T) {
	s := NewSignUpService(0)
	values := signUpValues()
	values[form.FieldPassword] = "short"
	values[form.FieldConfirmPassword] = "short"

	draft, err := s.Validate(values)
	require.Error(t, err)

	fe, ok := pkgerrors.AsFieldErrors(err)
	require.True(t, ok)
	require.Equal(t, []string{form.FieldPassword}, fe.Names())
	require.Equal(t, "Password must be at least 8 characters", draft.Error(form.FieldPassword))
	require.Equal(t, "short", draft.Value(form.FieldPassword))
}

func TestSignUpRejectsConcurrentSubmit(t *testing.T) {
	s := NewSignUpService(100 * time.Millisecond)

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = s.Submit(context.Background(), signUpValues())
	}()

	require.Eventually(t, s.Submitting, time.Second, 5*time.Millisecond)
	_, err := s.Submit(context.Background(), signUpValues())
	require.ErrorIs(t, err, pkgerrors.SignUpInProgress)

	wg.Wait()
	require.NoError(t, firstErr)
	require.False(t, s.Submitting())
}

func TestSignUpCancelled(t *testing.T) {
	s := NewSignUpService(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Submit(ctx, signUpValues())
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, s.Submitting())
}
