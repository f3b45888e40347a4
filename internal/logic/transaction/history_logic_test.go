package transaction

import (
	"context"
	"database/sql"
	"errors"
	"math/big"
	"strconv"
	"testing"

	"tgwallet/internal/constant"
	"tgwallet/internal/model"
	"tgwallet/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryClassifiesAndOrders(t *testing.T) {
	svcCtx, _ := newSendTestContext(t, &testutil.FakeChain{})
	setupFundedUser(t, svcCtx, 100, "1234")
	user, err := svcCtx.UsersDao.FindOneByTelegramId(context.Background(), 100)
	require.NoError(t, err)

	insert := func(to, status, hash string) {
		tx := &model.Transactions{
			UserId:    user.Id,
			ToAddress: to,
			Amount:    decimal.RequireFromString("0.1"),
			Status:    status,
			Chain:     "ETH",
		}
		if hash != "" {
			tx.TxHash = sql.NullString{String: hash, Valid: true}
		}
		require.NoError(t, svcCtx.TransactionsDao.Insert(context.Background(), tx))
	}

	insert("0x1111111111111111111111111111111111111111", constant.TxStatusSuccess, "0xaaa")
	insert(constant.ReceiveSentinel, constant.TxStatusSuccess, "0xbbb")
	insert("0x2222222222222222222222222222222222222222", constant.TxStatusPending, "")

	l := NewHistoryLogic(context.Background(), svcCtx)
	resp, err := l.History(100)
	require.NoError(t, err)
	require.Len(t, resp.History, 3)

	// newest first
	assert.Equal(t, "Sent", resp.History[0].Type)
	assert.Equal(t, "Pending", resp.History[0].Status)
	assert.Empty(t, resp.History[0].TxHash)

	assert.Equal(t, "Received", resp.History[1].Type)
	assert.Equal(t, "Completed", resp.History[1].Status)
	assert.Equal(t, "0xbbb", resp.History[1].TxHash)

	assert.Equal(t, "Sent", resp.History[2].Type)
	assert.Equal(t, "Completed", resp.History[2].Status)
}

func TestHistoryRespectsLimit(t *testing.T) {
	svcCtx, _ := newSendTestContext(t, &testutil.FakeChain{})
	setupFundedUser(t, svcCtx, 100, "1234")
	user, err := svcCtx.UsersDao.FindOneByTelegramId(context.Background(), 100)
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		require.NoError(t, svcCtx.TransactionsDao.Insert(context.Background(), &model.Transactions{
			UserId:    user.Id,
			ToAddress: "0x1111111111111111111111111111111111111111",
			Amount:    decimal.NewFromInt(int64(i + 1)),
			Status:    constant.TxStatusSuccess,
			Chain:     "ETH",
		}))
	}

	resp, err := NewHistoryLogic(context.Background(), svcCtx).History(100)
	require.NoError(t, err)
	require.Len(t, resp.History, 5)
	// the newest record carries the largest amount
	assert.Equal(t, "8", resp.History[0].Amount)
}

func TestHistoryDemoRowOnlyInTestMode(t *testing.T) {
	svcCtx, _ := newSendTestContext(t, &testutil.FakeChain{})
	setupFundedUser(t, svcCtx, 100, "1234")

	resp, err := NewHistoryLogic(context.Background(), svcCtx).History(100)
	require.NoError(t, err)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "999999", resp.History[0].Id)
	assert.Equal(t, "Received", resp.History[0].Type)

	svcCtx.Config.Transfer.TestMode = false
	resp, err = NewHistoryLogic(context.Background(), svcCtx).History(100)
	require.NoError(t, err)
	assert.Empty(t, resp.History)
}

func TestHistoryUnknownUserIsEmpty(t *testing.T) {
	svcCtx, _ := newSendTestContext(t, &testutil.FakeChain{})
	svcCtx.Config.Transfer.TestMode = false

	resp, err := NewHistoryLogic(context.Background(), svcCtx).History(404)
	require.NoError(t, err)
	assert.Empty(t, resp.History)
}

func TestHistoryIdIsRecordId(t *testing.T) {
	svcCtx, store := newSendTestContext(t, &testutil.FakeChain{})
	setupFundedUser(t, svcCtx, 100, "1234")
	user, err := svcCtx.UsersDao.FindOneByTelegramId(context.Background(), 100)
	require.NoError(t, err)

	require.NoError(t, svcCtx.TransactionsDao.Insert(context.Background(), &model.Transactions{
		UserId:    user.Id,
		ToAddress: "0x1111111111111111111111111111111111111111",
		Amount:    decimal.NewFromInt(1),
		Status:    constant.TxStatusSuccess,
		Chain:     "ETH",
	}))

	resp, err := NewHistoryLogic(context.Background(), svcCtx).History(100)
	require.NoError(t, err)
	require.Len(t, resp.History, 1)
	assert.Equal(t, strconv.FormatInt(store.Transactions[0].Id, 10), resp.History[0].Id)
}

func TestEstimateFee(t *testing.T) {
	// 20 gwei * 21000 gas = 0.00042 ETH
	chainClient := &testutil.FakeChain{GasPrice: big.NewInt(20_000_000_000)}
	svcCtx, _ := newSendTestContext(t, chainClient)

	l := NewTransactionLogic(context.Background(), svcCtx)
	assert.Equal(t, "0.00042", l.EstimateFee(""))
}

func TestEstimateFeeFallback(t *testing.T) {
	chainClient := &testutil.FakeChain{GasPriceErr: errors.New("rpc unreachable")}
	svcCtx, _ := newSendTestContext(t, chainClient)

	l := NewTransactionLogic(context.Background(), svcCtx)
	assert.Equal(t, constant.FallbackFee, l.EstimateFee(""))
}
