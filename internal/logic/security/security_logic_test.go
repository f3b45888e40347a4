package security

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"tgwallet/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogic(t *testing.T) (*SecurityLogic, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	svcCtx := testutil.NewServiceContext(testutil.DefaultConfig(), store, &testutil.FakeChain{})
	return NewSecurityLogic(context.Background(), svcCtx), store
}

func TestSetAndVerifyPin(t *testing.T) {
	l, _ := newTestLogic(t)

	require.NoError(t, l.SetPin(1, "1234"))

	ok, err := l.VerifyPin(1, "1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.VerifyPin(1, "9999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPinWithoutPinSet(t *testing.T) {
	l, _ := newTestLogic(t)

	// no record at all
	ok, err := l.VerifyPin(7, "1234")
	require.NoError(t, err)
	assert.False(t, ok)

	// record exists but no hash stored
	require.NoError(t, l.EnsureRecord(7))
	ok, err = l.VerifyPin(7, "1234")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLockoutAfterThreeFailures(t *testing.T) {
	l, _ := newTestLogic(t)
	require.NoError(t, l.SetPin(1, "1234"))

	for i := 0; i < 3; i++ {
		ok, err := l.VerifyPin(1, "0000")
		require.NoError(t, err)
		assert.False(t, ok)
	}

	// 4th attempt is rejected even with the correct PIN
	_, err := l.VerifyPin(1, "1234")
	assert.ErrorIs(t, err, ErrLocked)
}

func TestVerifySucceedsAfterLockoutExpires(t *testing.T) {
	l, store := newTestLogic(t)
	require.NoError(t, l.SetPin(1, "1234"))

	for i := 0; i < 3; i++ {
		_, err := l.VerifyPin(1, "0000")
		require.NoError(t, err)
	}
	_, err := l.VerifyPin(1, "1234")
	require.ErrorIs(t, err, ErrLocked)

	// simulate the window elapsing
	for _, sec := range store.Securities {
		if sec.UserId == 1 {
			sec.LockedUntil = sql.NullTime{Time: time.Now().Add(-time.Minute), Valid: true}
		}
	}

	ok, err := l.VerifyPin(1, "1234")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFailureCounterResetsOnSuccess(t *testing.T) {
	l, _ := newTestLogic(t)
	require.NoError(t, l.SetPin(1, "1234"))

	// two failures, then a success
	for i := 0; i < 2; i++ {
		_, err := l.VerifyPin(1, "0000")
		require.NoError(t, err)
	}
	ok, err := l.VerifyPin(1, "1234")
	require.NoError(t, err)
	require.True(t, ok)

	// lockout now requires three fresh failures, not one
	for i := 0; i < 2; i++ {
		ok, err := l.VerifyPin(1, "0000")
		require.NoError(t, err)
		assert.False(t, ok)
	}
	ok, err = l.VerifyPin(1, "1234")
	require.NoError(t, err)
	assert.True(t, ok, "two failures after a reset must not lock")
}

func TestHasPin(t *testing.T) {
	l, _ := newTestLogic(t)

	has, err := l.HasPin(1)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, l.SetPin(1, "1234"))
	has, err = l.HasPin(1)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSetPinOverwritesExisting(t *testing.T) {
	l, _ := newTestLogic(t)

	require.NoError(t, l.SetPin(1, "1111"))
	require.NoError(t, l.SetPin(1, "2222"))

	ok, err := l.VerifyPin(1, "1111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.VerifyPin(1, "2222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnsureRecordIdempotent(t *testing.T) {
	l, store := newTestLogic(t)

	require.NoError(t, l.EnsureRecord(5))
	require.NoError(t, l.EnsureRecord(5))

	count := 0
	for _, sec := range store.Securities {
		if sec.UserId == 5 {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
