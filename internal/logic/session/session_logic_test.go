package session

import (
	"context"
	"testing"

	"tgwallet/internal/chain"
	"tgwallet/internal/constant"
	"tgwallet/internal/logic/asset"
	"tgwallet/internal/logic/security"
	"tgwallet/internal/logic/wallet"
	"tgwallet/internal/svc"
	"tgwallet/internal/testutil"
	"tgwallet/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, chainClient *testutil.FakeChain) (*svc.ServiceContext, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	return testutil.NewServiceContext(testutil.DefaultConfig(), store, chainClient), store
}

func setupUser(t *testing.T, svcCtx *svc.ServiceContext, telegramId int64, pin string) {
	t.Helper()
	ctx := context.Background()
	wl := wallet.NewWalletLogic(ctx, svcCtx)
	_, err := wl.Create(telegramId)
	require.NoError(t, err)
	user, err := svcCtx.UsersDao.FindOneByTelegramId(ctx, telegramId)
	require.NoError(t, err)
	require.NoError(t, security.NewSecurityLogic(ctx, svcCtx).SetPin(user.Id, pin))
}

func TestGetReturnsIdleForNewUser(t *testing.T) {
	svcCtx, _ := newTestContext(t, &testutil.FakeChain{})
	l := NewSessionLogic(context.Background(), svcCtx)

	data, err := l.Get(100)
	require.NoError(t, err)
	assert.Equal(t, constant.StepIdle, data.Step)
	assert.Empty(t, data.TxData.To)
	assert.Nil(t, data.AddTokenData)
}

func TestUpdateMergesPartialFields(t *testing.T) {
	svcCtx, _ := newTestContext(t, &testutil.FakeChain{})
	l := NewSessionLogic(context.Background(), svcCtx)

	// first update sets step and recipient
	_, err := l.Update(&types.SessionUpdateReq{
		UserId: 100,
		Step:   constant.StepSendAskAmount,
		TxData: &types.TxScratch{To: "0x1111111111111111111111111111111111111111"},
	})
	require.NoError(t, err)

	// second update carries only the amount; step and recipient must survive
	data, err := l.Update(&types.SessionUpdateReq{
		UserId: 100,
		TxData: &types.TxScratch{Amount: "0.5"},
	})
	require.NoError(t, err)
	assert.Equal(t, constant.StepSendAskAmount, data.Step)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", data.TxData.To)
	assert.Equal(t, "0.5", data.TxData.Amount)

	// merge is durable, not in-memory
	reloaded, err := l.Get(100)
	require.NoError(t, err)
	assert.Equal(t, data, reloaded)
}

func TestClearIsIdempotent(t *testing.T) {
	svcCtx, _ := newTestContext(t, &testutil.FakeChain{})
	l := NewSessionLogic(context.Background(), svcCtx)

	_, err := l.Update(&types.SessionUpdateReq{
		UserId: 100,
		Step:   constant.StepSendAskAddress,
		TxData: &types.TxScratch{To: "0x1111111111111111111111111111111111111111"},
	})
	require.NoError(t, err)

	require.NoError(t, l.Clear(100))
	require.NoError(t, l.Clear(100))

	data, err := l.Get(100)
	require.NoError(t, err)
	assert.Equal(t, constant.StepIdle, data.Step)
	assert.Empty(t, data.TxData.To)
}

func TestSendWizardHappyPath(t *testing.T) {
	svcCtx, _ := newTestContext(t, &testutil.FakeChain{})
	setupUser(t, svcCtx, 100, "1234")
	l := NewSessionLogic(context.Background(), svcCtx)

	resp, err := l.StartSend(100)
	require.NoError(t, err)
	assert.Equal(t, constant.StepSendAskAddress, resp.Step)

	resp, err = l.HandleText(&types.FlowReq{UserId: 100, Text: "0x1111111111111111111111111111111111111111"})
	require.NoError(t, err)
	assert.Equal(t, constant.StepSendAskAmount, resp.Step)

	resp, err = l.HandleText(&types.FlowReq{UserId: 100, Text: "0.5"})
	require.NoError(t, err)
	assert.Equal(t, constant.StepSendAskAmount, resp.Step)
	assert.Contains(t, resp.Message, "0.5")

	resp, err = l.ConfirmSend(&types.FlowConfirmReq{UserId: 100, Pin: "1234"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.TxHash)
	assert.Equal(t, constant.StepIdle, resp.Step)

	// session reset after completion
	data, err := l.Get(100)
	require.NoError(t, err)
	assert.Equal(t, constant.StepIdle, data.Step)
	assert.Empty(t, data.TxData.To)
}

func TestWizardRejectsBadInputWithoutAdvancing(t *testing.T) {
	svcCtx, _ := newTestContext(t, &testutil.FakeChain{})
	setupUser(t, svcCtx, 100, "1234")
	l := NewSessionLogic(context.Background(), svcCtx)

	_, err := l.StartSend(100)
	require.NoError(t, err)

	resp, err := l.HandleText(&types.FlowReq{UserId: 100, Text: "not-an-address"})
	require.NoError(t, err)
	assert.Equal(t, constant.StepSendAskAddress, resp.Step)

	_, err = l.HandleText(&types.FlowReq{UserId: 100, Text: "0x1111111111111111111111111111111111111111"})
	require.NoError(t, err)

	resp, err = l.HandleText(&types.FlowReq{UserId: 100, Text: "-3"})
	require.NoError(t, err)
	assert.Equal(t, constant.StepSendAskAmount, resp.Step)

	data, err := l.Get(100)
	require.NoError(t, err)
	assert.Empty(t, data.TxData.Amount)
}

func TestConfirmSendRequiresCompleteSession(t *testing.T) {
	svcCtx, _ := newTestContext(t, &testutil.FakeChain{})
	setupUser(t, svcCtx, 100, "1234")
	l := NewSessionLogic(context.Background(), svcCtx)

	// idle session
	_, err := l.ConfirmSend(&types.FlowConfirmReq{UserId: 100, Pin: "1234"})
	assert.ErrorIs(t, err, ErrInvalidSessionState)

	// address collected but no amount yet
	_, err = l.StartSend(100)
	require.NoError(t, err)
	_, err = l.HandleText(&types.FlowReq{UserId: 100, Text: "0x1111111111111111111111111111111111111111"})
	require.NoError(t, err)
	_, err = l.ConfirmSend(&types.FlowConfirmReq{UserId: 100, Pin: "1234"})
	assert.ErrorIs(t, err, ErrInvalidSessionState)
}

func TestConfirmSendWrongPinKeepsSession(t *testing.T) {
	svcCtx, _ := newTestContext(t, &testutil.FakeChain{})
	setupUser(t, svcCtx, 100, "1234")
	l := NewSessionLogic(context.Background(), svcCtx)

	_, err := l.StartSend(100)
	require.NoError(t, err)
	_, err = l.HandleText(&types.FlowReq{UserId: 100, Text: "0x1111111111111111111111111111111111111111"})
	require.NoError(t, err)
	_, err = l.HandleText(&types.FlowReq{UserId: 100, Text: "0.5"})
	require.NoError(t, err)

	resp, err := l.ConfirmSend(&types.FlowConfirmReq{UserId: 100, Pin: "9999"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, constant.StepSendAskAmount, resp.Step)

	// collected fields survive for a retry
	data, err := l.Get(100)
	require.NoError(t, err)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", data.TxData.To)
	assert.Equal(t, "0.5", data.TxData.Amount)

	// retry with the right PIN goes through
	resp, err = l.ConfirmSend(&types.FlowConfirmReq{UserId: 100, Pin: "1234"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestConfirmSendInsufficientFundsResets(t *testing.T) {
	svcCtx, _ := newTestContext(t, &testutil.FakeChain{})
	setupUser(t, svcCtx, 100, "1234")
	l := NewSessionLogic(context.Background(), svcCtx)

	_, err := l.StartSend(100)
	require.NoError(t, err)
	_, err = l.HandleText(&types.FlowReq{UserId: 100, Text: "0x1111111111111111111111111111111111111111"})
	require.NoError(t, err)
	_, err = l.HandleText(&types.FlowReq{UserId: 100, Text: "5"})
	require.NoError(t, err)

	resp, err := l.ConfirmSend(&types.FlowConfirmReq{UserId: 100, Pin: "1234"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, constant.StepIdle, resp.Step)
	assert.Contains(t, resp.Message, "Insufficient")
}

func TestAddTokenWizard(t *testing.T) {
	chainClient := &testutil.FakeChain{
		Metadata: &chain.TokenMetadata{Name: "Foo Token", Symbol: "FOO", Decimals: 8},
	}
	svcCtx, _ := newTestContext(t, chainClient)
	setupUser(t, svcCtx, 100, "1234")
	l := NewSessionLogic(context.Background(), svcCtx)

	resp, err := l.StartAddToken(100)
	require.NoError(t, err)
	assert.Equal(t, constant.StepAddTokenAddress, resp.Step)

	resp, err = l.HandleText(&types.FlowReq{UserId: 100, Text: "0x2222222222222222222222222222222222222222"})
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "FOO")

	resp, err = l.ConfirmAddToken(&types.FlowConfirmReq{UserId: 100})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, constant.StepIdle, resp.Step)

	w, err := wallet.NewWalletLogic(context.Background(), svcCtx).Get(100)
	require.NoError(t, err)
	a, err := svcCtx.AssetsDao.FindOneByWalletSymbolChain(context.Background(), w.Id, "FOO", "ETH")
	require.NoError(t, err)
	assert.True(t, a.IsCustom)
	assert.Equal(t, 8, a.Decimals)
}

func TestAddTokenDuplicate(t *testing.T) {
	chainClient := &testutil.FakeChain{
		Metadata: &chain.TokenMetadata{Name: "Foo Token", Symbol: "FOO", Decimals: 8},
	}
	svcCtx, _ := newTestContext(t, chainClient)
	setupUser(t, svcCtx, 100, "1234")

	w, err := wallet.NewWalletLogic(context.Background(), svcCtx).Get(100)
	require.NoError(t, err)
	_, err = asset.NewAssetLogic(context.Background(), svcCtx).AddCustomAsset(w.Id, &types.AssetAddReq{
		Symbol: "FOO", Name: "Foo Token", Chain: "ETH",
	})
	require.NoError(t, err)

	l := NewSessionLogic(context.Background(), svcCtx)
	_, err = l.StartAddToken(100)
	require.NoError(t, err)
	_, err = l.HandleText(&types.FlowReq{UserId: 100, Text: "0x2222222222222222222222222222222222222222"})
	require.NoError(t, err)

	resp, err := l.ConfirmAddToken(&types.FlowConfirmReq{UserId: 100})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "already")
}

func TestCancelIsIdempotent(t *testing.T) {
	svcCtx, _ := newTestContext(t, &testutil.FakeChain{})
	setupUser(t, svcCtx, 100, "1234")
	l := NewSessionLogic(context.Background(), svcCtx)

	// cancelling an idle session is a no-op
	resp, err := l.Cancel(100)
	require.NoError(t, err)
	assert.Equal(t, constant.StepIdle, resp.Step)

	_, err = l.StartSend(100)
	require.NoError(t, err)
	resp, err = l.Cancel(100)
	require.NoError(t, err)
	assert.Equal(t, constant.StepIdle, resp.Step)

	resp, err = l.Cancel(100)
	require.NoError(t, err)
	assert.Equal(t, constant.StepIdle, resp.Step)
}

func TestStartSendRequiresWallet(t *testing.T) {
	svcCtx, _ := newTestContext(t, &testutil.FakeChain{})
	l := NewSessionLogic(context.Background(), svcCtx)

	_, err := l.StartSend(100)
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
}

func TestHandleTextWhileIdle(t *testing.T) {
	svcCtx, _ := newTestContext(t, &testutil.FakeChain{})
	l := NewSessionLogic(context.Background(), svcCtx)

	resp, err := l.HandleText(&types.FlowReq{UserId: 100, Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, constant.StepIdle, resp.Step)
	assert.False(t, resp.Success)
}
