package transaction

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"tgwallet/internal/constant"
	"tgwallet/internal/svc"

	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/logx"
)

var (
	ErrInvalidPin        = errors.New("invalid pin")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type TransactionLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewTransactionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *TransactionLogic {
	return &TransactionLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// EstimateFee prices a standard native transfer: suggested gas price × 21000 gas,
// rendered in ether. Falls back to a conservative constant when the node is
// unreachable. Read-only.
func (l *TransactionLogic) EstimateFee(rpcUrl string) string {
	url := l.resolveRpcUrl(rpcUrl)

	gasPrice, err := l.svcCtx.Chain.SuggestGasPrice(l.ctx, url)
	if err != nil || gasPrice == nil {
		l.Infof("Gas price 查询失败, 使用保底估算: %v", err)
		return constant.FallbackFee
	}

	fee := decimal.NewFromBigInt(gasPrice, 0).
		Mul(decimal.NewFromInt(constant.StandardTransferGas)).
		Shift(-18)
	return fee.String()
}

// resolveRpcUrl prefers the caller-supplied endpoint over the configured default chain.
func (l *TransactionLogic) resolveRpcUrl(rpcUrl string) string {
	if rpcUrl != "" {
		return rpcUrl
	}
	if cc, ok := l.svcCtx.Config.Chains[l.svcCtx.Config.DefaultChain]; ok {
		return cc.RpcUrl
	}
	return ""
}

// resolveChainId prefers the caller-supplied id over the configured default chain.
func (l *TransactionLogic) resolveChainId(chainId int64) int64 {
	if chainId != 0 {
		return chainId
	}
	if cc, ok := l.svcCtx.Config.Chains[l.svcCtx.Config.DefaultChain]; ok {
		return cc.ChainId
	}
	return 1
}

// chainTag labels a transaction record for history display.
func chainTag(chainId int64, defaultChain string) string {
	if chainId != 0 {
		return fmt.Sprintf("CHAIN-%d", chainId)
	}
	return defaultChain
}

// mockTxHash synthesizes a plausible 32-byte transaction hash for test mode.
func mockTxHash() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "0x" + hex.EncodeToString(make([]byte, 32))
	}
	return "0x" + hex.EncodeToString(buf)
}
