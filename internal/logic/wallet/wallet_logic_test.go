package wallet

import (
	"context"
	"strings"
	"testing"

	"tgwallet/internal/constant"
	"tgwallet/internal/crypt"
	"tgwallet/internal/svc"
	"tgwallet/internal/testutil"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (*svc.ServiceContext, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	return testutil.NewServiceContext(testutil.DefaultConfig(), store, &testutil.FakeChain{}), store
}

func TestCreateWallet(t *testing.T) {
	svcCtx, store := newTestContext(t)
	l := NewWalletLogic(context.Background(), svcCtx)

	resp, err := l.Create(100)
	require.NoError(t, err)
	assert.True(t, common.IsHexAddress(resp.Address))
	assert.NotEmpty(t, resp.PrivateKey)

	// the returned key actually controls the returned address
	priv, err := crypto.HexToECDSA(strings.TrimPrefix(resp.PrivateKey, "0x"))
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(priv.PublicKey).Hex(), resp.Address)

	// stored key is encrypted, never plaintext
	require.Len(t, store.Wallets, 1)
	stored := store.Wallets[0]
	assert.NotContains(t, stored.EncryptedPrivateKey, strings.TrimPrefix(resp.PrivateKey, "0x"))
	plain, err := crypt.Decrypt(svcCtx.EncryptionKey, stored.EncryptedPrivateKey)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimPrefix(resp.PrivateKey, "0x"), plain)

	// default asset catalog seeded
	assets, err := svcCtx.AssetsDao.FindAllByWalletId(context.Background(), stored.Id)
	require.NoError(t, err)
	assert.Len(t, assets, len(constant.DefaultAssets))
}

func TestCreateWalletRejectsSecond(t *testing.T) {
	svcCtx, _ := newTestContext(t)
	l := NewWalletLogic(context.Background(), svcCtx)

	_, err := l.Create(100)
	require.NoError(t, err)

	_, err = l.Create(100)
	assert.ErrorIs(t, err, ErrWalletExists)
}

func TestGetWallet(t *testing.T) {
	svcCtx, _ := newTestContext(t)
	l := NewWalletLogic(context.Background(), svcCtx)

	_, err := l.Get(100)
	assert.ErrorIs(t, err, ErrWalletNotFound)

	created, err := l.Create(100)
	require.NoError(t, err)

	w, err := l.Get(100)
	require.NoError(t, err)
	assert.Equal(t, created.Address, w.Address)
	assert.Equal(t, "ETH", w.Chain)
}

func TestMe(t *testing.T) {
	svcCtx, _ := newTestContext(t)
	l := NewWalletLogic(context.Background(), svcCtx)

	created, err := l.Create(100)
	require.NoError(t, err)

	me, err := l.Me(100)
	require.NoError(t, err)
	assert.Equal(t, created.Address, me.Address)
	assert.Equal(t, "ETH", me.Chain)
	assert.Equal(t, "1", me.Balance)
}

func TestGetOrCreateUserCreatesSecurityRecord(t *testing.T) {
	svcCtx, store := newTestContext(t)
	l := NewWalletLogic(context.Background(), svcCtx)

	user, err := l.GetOrCreateUser(100)
	require.NoError(t, err)
	require.Len(t, store.Securities, 1)
	assert.Equal(t, user.Id, store.Securities[0].UserId)

	// second call resolves the same user without duplicates
	again, err := l.GetOrCreateUser(100)
	require.NoError(t, err)
	assert.Equal(t, user.Id, again.Id)
	assert.Len(t, store.Users, 1)
	assert.Len(t, store.Securities, 1)
}

func TestSignerKeyRoundTrip(t *testing.T) {
	svcCtx, store := newTestContext(t)
	l := NewWalletLogic(context.Background(), svcCtx)

	resp, err := l.Create(100)
	require.NoError(t, err)

	key, err := l.SignerKey(store.Wallets[0])
	require.NoError(t, err)
	assert.Equal(t, strings.TrimPrefix(resp.PrivateKey, "0x"), key)
}
