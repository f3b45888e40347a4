package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tgwallet/internal/constant"
	"tgwallet/internal/logic/asset"
	"tgwallet/internal/logic/security"
	"tgwallet/internal/logic/wallet"
	"tgwallet/internal/model"
	"tgwallet/internal/svc"
	"tgwallet/internal/types"

	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/logx"
)

type SendLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewSendLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SendLogic {
	return &SendLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// Send 执行一次 PIN 门禁转账:
// 1. 校验 PIN (锁定期间直接拒绝)
// 2. 余额检查: 余额必须 >= 金额 + 手续费缓冲
// 3. 先落库 pending 记录, 再提交链上 (测试模式生成模拟哈希)
// 4. 成功后置 success 并尝试内部到账镜像; 失败置 failed, 余额不动
func (l *SendLogic) Send(req *types.SendReq) (*types.SendResp, error) {
	user, err := l.svcCtx.UsersDao.FindOneByTelegramId(l.ctx, req.UserId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, wallet.ErrWalletNotFound
		}
		return nil, err
	}

	// PIN 校验永远在动账之前
	secLogic := security.NewSecurityLogic(l.ctx, l.svcCtx)
	ok, err := secLogic.VerifyPin(user.Id, req.Pin)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidPin
	}

	w, err := l.svcCtx.WalletsDao.FindOneByUserId(l.ctx, user.Id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, wallet.ErrWalletNotFound
		}
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("invalid amount: %q", req.Amount)
	}

	feeBuffer, err := decimal.NewFromString(l.svcCtx.Config.Transfer.FeeBuffer)
	if err != nil {
		feeBuffer, _ = decimal.NewFromString(constant.FallbackFee)
	}

	assetLogic := asset.NewAssetLogic(l.ctx, l.svcCtx)
	balanceStr, err := assetLogic.GetBalance(w.Id, w.Chain, w.Chain)
	if err != nil {
		return nil, err
	}
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt balance %q for wallet %d: %w", balanceStr, w.Id, err)
	}

	required := amount.Add(feeBuffer)
	if balance.LessThan(required) {
		return nil, fmt.Errorf("%w: balance %s, required %s (amount + fee buffer)",
			ErrInsufficientFunds, balance.String(), required.String())
	}

	// 提交前先落库 pending, 保证每次尝试都有审计记录
	record := &model.Transactions{
		UserId:    user.Id,
		ToAddress: req.To,
		Amount:    amount,
		Status:    constant.TxStatusPending,
		Chain:     chainTag(req.ChainId, l.svcCtx.Config.DefaultChain),
	}
	if err := l.svcCtx.TransactionsDao.Insert(l.ctx, record); err != nil {
		return nil, err
	}

	txHash, err := l.submit(w, req, amount)
	if err != nil {
		l.Errorf("链上提交失败, tx=%d: %v", record.Id, err)
		if markErr := l.svcCtx.TransactionsDao.MarkFailed(l.ctx, record.Id); markErr != nil {
			l.Errorf("标记失败状态出错, tx=%d: %v", record.Id, markErr)
		}
		return &types.SendResp{
			Success: false,
			Message: "Transaction failed. Your balance was not charged.",
		}, nil
	}

	if err := l.svcCtx.TransactionsDao.MarkSuccess(l.ctx, record.Id, txHash); err != nil {
		l.Errorf("标记成功状态出错, tx=%d hash=%s: %v", record.Id, txHash, err)
	}
	l.Infof("✅ 转账提交成功: user=%d to=%s amount=%s hash=%s", user.Id, req.To, amount.String(), txHash)

	// 成功后结算账本: 外部转出扣 金额+手续费缓冲;
	// 收款地址属于本服务托管钱包时走内部镜像, 双边各动恰好 amount。
	// 结算失败只记日志, 不影响已成功的转账结果。
	l.settleLedger(w, req.To, amount, feeBuffer, txHash)

	return &types.SendResp{
		Success: true,
		TxHash:  txHash,
		Message: "Transaction submitted successfully.",
	}, nil
}

// submit broadcasts the transfer, or fabricates a hash in test mode.
func (l *SendLogic) submit(w *model.Wallets, req *types.SendReq, amount decimal.Decimal) (string, error) {
	// 显式传入 rpcUrl 时强制走真实提交, 测试模式只拦默认链
	if l.svcCtx.Config.Transfer.TestMode && req.RpcUrl == "" {
		// 模拟链上确认延迟
		time.Sleep(time.Second)
		return mockTxHash(), nil
	}

	privKey, err := wallet.NewWalletLogic(l.ctx, l.svcCtx).SignerKey(w)
	if err != nil {
		return "", err
	}

	tl := NewTransactionLogic(l.ctx, l.svcCtx)
	return l.svcCtx.Chain.SubmitNativeTransfer(
		l.ctx,
		tl.resolveRpcUrl(req.RpcUrl),
		tl.resolveChainId(req.ChainId),
		privKey,
		req.To,
		amount.Shift(18).BigInt(),
	)
}

// settleLedger applies the post-submission balance bookkeeping. An external send
// debits amount plus the fee buffer. An internal transfer (recipient wallet is
// managed by this service) debits and credits exactly amount on each side, and
// writes a Received record for the recipient.
func (l *SendLogic) settleLedger(sender *model.Wallets, to string, amount, feeBuffer decimal.Decimal, txHash string) {
	assetLogic := asset.NewAssetLogic(l.ctx, l.svcCtx)

	recipient, err := l.svcCtx.WalletsDao.FindOneByAddress(l.ctx, to)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			l.Errorf("镜像查询收款钱包失败, to=%s: %v", to, err)
			return
		}
		// 外部转出: 金额和手续费缓冲一起扣
		if err := assetLogic.Debit(sender.Id, sender.Chain, sender.Chain, amount.Add(feeBuffer)); err != nil {
			l.Errorf("扣减发送方余额失败, wallet=%d: %v", sender.Id, err)
		}
		return
	}

	if err := assetLogic.Debit(sender.Id, sender.Chain, sender.Chain, amount); err != nil {
		l.Errorf("镜像扣减发送方余额失败, wallet=%d: %v", sender.Id, err)
		return
	}
	if err := assetLogic.Credit(recipient.Id, recipient.Chain, recipient.Chain, amount); err != nil {
		l.Errorf("镜像增加收款方余额失败, wallet=%d: %v", recipient.Id, err)
		return
	}

	receiveRow := &model.Transactions{
		UserId:    recipient.UserId,
		ToAddress: constant.ReceiveSentinel,
		Amount:    amount,
		Status:    constant.TxStatusSuccess,
		Chain:     recipient.Chain,
	}
	if txHash != "" {
		receiveRow.TxHash.String = txHash
		receiveRow.TxHash.Valid = true
	}
	if err := l.svcCtx.TransactionsDao.Insert(l.ctx, receiveRow); err != nil {
		l.Errorf("镜像写入收款记录失败, user=%d: %v", recipient.UserId, err)
		return
	}
	l.Infof("内部转账镜像完成: %s -> %s amount=%s", sender.Address, recipient.Address, amount.String())
}
