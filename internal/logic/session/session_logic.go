package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tgwallet/internal/constant"
	"tgwallet/internal/logic/asset"
	"tgwallet/internal/logic/security"
	"tgwallet/internal/logic/transaction"
	"tgwallet/internal/logic/wallet"
	"tgwallet/internal/model"
	"tgwallet/internal/svc"
	"tgwallet/internal/types"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/logx"
)

var ErrInvalidSessionState = errors.New("no transfer pending confirmation")

// SessionLogic 管理落库的多轮会话状态机。
// 所有读写都走 read-merge-write: 局部更新不会覆盖未提及的字段。
type SessionLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewSessionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SessionLogic {
	return &SessionLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// load reads the user's session, synthesizing an idle one when none is stored
// or the stored payload is unreadable.
func (l *SessionLogic) load(userId int64) (*types.SessionData, error) {
	row, err := l.svcCtx.SessionsDao.FindOneByUserId(l.ctx, userId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return &types.SessionData{Step: constant.StepIdle}, nil
		}
		return nil, err
	}

	data := &types.SessionData{}
	if err := json.Unmarshal([]byte(row.Data), data); err != nil {
		l.Errorf("会话数据损坏, user=%d, 重置为 IDLE: %v", userId, err)
		data = &types.SessionData{}
	}
	data.Step = row.Step
	if data.Step == "" {
		data.Step = constant.StepIdle
	}
	return data, nil
}

func (l *SessionLogic) persist(userId int64, data *types.SessionData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return l.svcCtx.SessionsDao.Upsert(l.ctx, userId, data.Step, string(payload))
}

// Get returns the current session, creating an idle one on first access.
func (l *SessionLogic) Get(userId int64) (*types.SessionData, error) {
	return l.load(userId)
}

// Update 合并式更新: 只替换请求里出现的部分。
// Step 为空时保留原值; TxData 按字段合并; AddTokenData 整体替换。
func (l *SessionLogic) Update(req *types.SessionUpdateReq) (*types.SessionData, error) {
	data, err := l.load(req.UserId)
	if err != nil {
		return nil, err
	}

	if req.Step != "" {
		data.Step = req.Step
	}
	if req.TxData != nil {
		if req.TxData.To != "" {
			data.TxData.To = req.TxData.To
		}
		if req.TxData.Amount != "" {
			data.TxData.Amount = req.TxData.Amount
		}
	}
	if req.AddTokenData != nil {
		data.AddTokenData = req.AddTokenData
	}

	if err := l.persist(req.UserId, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Clear resets the session to idle with empty scratch data. Idempotent.
func (l *SessionLogic) Clear(userId int64) error {
	return l.persist(userId, &types.SessionData{Step: constant.StepIdle})
}

// StartSend begins the send wizard, discarding any previous in-progress flow.
// 没有钱包不允许进入转账流程。
func (l *SessionLogic) StartSend(userId int64) (*types.FlowResp, error) {
	if _, err := wallet.NewWalletLogic(l.ctx, l.svcCtx).Get(userId); err != nil {
		return nil, err
	}

	data := &types.SessionData{Step: constant.StepSendAskAddress}
	if err := l.persist(userId, data); err != nil {
		return nil, err
	}
	return &types.FlowResp{
		Step:    data.Step,
		Message: "Please enter the recipient address (0x...):",
	}, nil
}

// StartAddToken begins the custom-token wizard.
func (l *SessionLogic) StartAddToken(userId int64) (*types.FlowResp, error) {
	data := &types.SessionData{Step: constant.StepAddTokenAddress}
	if err := l.persist(userId, data); err != nil {
		return nil, err
	}
	return &types.FlowResp{
		Step:    data.Step,
		Message: "Please enter the token contract address (0x...):",
	}, nil
}

// HandleText 按当前步骤解释一条自由文本输入, 推进状态机。
func (l *SessionLogic) HandleText(req *types.FlowReq) (*types.FlowResp, error) {
	data, err := l.load(req.UserId)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	switch data.Step {
	case constant.StepSendAskAddress:
		return l.acceptRecipient(req.UserId, data, text)
	case constant.StepSendAskAmount:
		return l.acceptAmount(req.UserId, data, text)
	case constant.StepAddTokenAddress:
		return l.acceptTokenAddress(req.UserId, data, text)
	default:
		return &types.FlowResp{
			Step:    constant.StepIdle,
			Message: "No active operation. Use /send or /addtoken to start.",
		}, nil
	}
}

func (l *SessionLogic) acceptRecipient(userId int64, data *types.SessionData, text string) (*types.FlowResp, error) {
	if !common.IsHexAddress(text) {
		return &types.FlowResp{
			Step:    data.Step,
			Message: "❌ Invalid address. Please enter a valid address starting with 0x:",
		}, nil
	}

	data.TxData.To = text
	data.Step = constant.StepSendAskAmount
	if err := l.persist(userId, data); err != nil {
		return nil, err
	}

	message := "How much ETH would you like to send?"
	if w, err := wallet.NewWalletLogic(l.ctx, l.svcCtx).Get(userId); err == nil {
		if balance, err := asset.NewAssetLogic(l.ctx, l.svcCtx).GetBalance(w.Id, w.Chain, w.Chain); err == nil {
			message = fmt.Sprintf("How much ETH would you like to send? (available: %s)", balance)
		}
	}
	return &types.FlowResp{
		Step:    data.Step,
		Message: message,
	}, nil
}

func (l *SessionLogic) acceptAmount(userId int64, data *types.SessionData, text string) (*types.FlowResp, error) {
	amount, err := decimal.NewFromString(text)
	if err != nil || !amount.IsPositive() {
		return &types.FlowResp{
			Step:    data.Step,
			Message: "❌ Invalid amount. Please enter a positive number:",
		}, nil
	}

	data.TxData.Amount = amount.String()
	if err := l.persist(userId, data); err != nil {
		return nil, err
	}

	fee := transaction.NewTransactionLogic(l.ctx, l.svcCtx).EstimateFee("")
	return &types.FlowResp{
		Step: data.Step,
		Message: fmt.Sprintf("Sending %s ETH to %s (est. fee %s ETH). Enter your PIN to confirm:",
			amount.String(), data.TxData.To, fee),
	}, nil
}

func (l *SessionLogic) acceptTokenAddress(userId int64, data *types.SessionData, text string) (*types.FlowResp, error) {
	if !common.IsHexAddress(text) {
		return &types.FlowResp{
			Step:    data.Step,
			Message: "❌ Invalid contract address. Please enter a valid address starting with 0x:",
		}, nil
	}

	rpcUrl := ""
	if cc, ok := l.svcCtx.Config.Chains[l.svcCtx.Config.DefaultChain]; ok {
		rpcUrl = cc.RpcUrl
	}
	meta, err := l.svcCtx.Chain.FetchTokenMetadata(l.ctx, rpcUrl, text)
	if err != nil {
		l.Errorf("代币元数据查询失败, contract=%s: %v", text, err)
		return &types.FlowResp{
			Step:    data.Step,
			Message: "❌ Could not read token metadata at that address. Please check the address and try again:",
		}, nil
	}

	data.AddTokenData = &types.AddTokenScratch{
		Chain:    l.svcCtx.Config.DefaultChain,
		Address:  text,
		Symbol:   meta.Symbol,
		Name:     meta.Name,
		Decimals: meta.Decimals,
	}
	if err := l.persist(userId, data); err != nil {
		return nil, err
	}
	return &types.FlowResp{
		Step: data.Step,
		Message: fmt.Sprintf("Found %s (%s), %d decimals. Confirm adding this token?",
			meta.Name, meta.Symbol, meta.Decimals),
	}, nil
}

// ConfirmSend 执行已收集完整的转账流程。只有 SEND_ASK_AMOUNT 且地址金额齐备才允许确认。
// PIN 错误保留会话供重试; 其余结果一律回到 IDLE。
func (l *SessionLogic) ConfirmSend(req *types.FlowConfirmReq) (*types.FlowResp, error) {
	data, err := l.load(req.UserId)
	if err != nil {
		return nil, err
	}
	if data.Step != constant.StepSendAskAmount || data.TxData.To == "" || data.TxData.Amount == "" {
		return nil, ErrInvalidSessionState
	}

	sendLogic := transaction.NewSendLogic(l.ctx, l.svcCtx)
	resp, err := sendLogic.Send(&types.SendReq{
		UserId: req.UserId,
		To:     data.TxData.To,
		Amount: data.TxData.Amount,
		Pin:    req.Pin,
	})
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrInvalidPin):
			return &types.FlowResp{
				Step:    data.Step,
				Message: "❌ Incorrect PIN. Please try again:",
			}, nil
		case errors.Is(err, security.ErrLocked):
			l.resetQuietly(req.UserId)
			return &types.FlowResp{
				Step:    constant.StepIdle,
				Message: "🔒 Too many failed attempts. Your wallet is temporarily locked.",
			}, nil
		case errors.Is(err, transaction.ErrInsufficientFunds):
			l.resetQuietly(req.UserId)
			return &types.FlowResp{
				Step:    constant.StepIdle,
				Message: "❌ Insufficient balance to cover the amount plus network fee.",
			}, nil
		default:
			return nil, err
		}
	}

	l.resetQuietly(req.UserId)
	if !resp.Success {
		return &types.FlowResp{
			Step:    constant.StepIdle,
			Message: resp.Message,
		}, nil
	}
	return &types.FlowResp{
		Step:    constant.StepIdle,
		Message: fmt.Sprintf("✅ Transaction sent! Hash: %s", resp.TxHash),
		Success: true,
		TxHash:  resp.TxHash,
	}, nil
}

// ConfirmAddToken registers the token collected by the add-token wizard.
func (l *SessionLogic) ConfirmAddToken(req *types.FlowConfirmReq) (*types.FlowResp, error) {
	data, err := l.load(req.UserId)
	if err != nil {
		return nil, err
	}
	if data.Step != constant.StepAddTokenAddress || data.AddTokenData == nil || data.AddTokenData.Address == "" {
		return nil, ErrInvalidSessionState
	}

	w, err := wallet.NewWalletLogic(l.ctx, l.svcCtx).Get(req.UserId)
	if err != nil {
		return nil, err
	}

	scratch := data.AddTokenData
	_, err = asset.NewAssetLogic(l.ctx, l.svcCtx).AddCustomAsset(w.Id, &types.AssetAddReq{
		UserId:       req.UserId,
		Symbol:       scratch.Symbol,
		Name:         scratch.Name,
		Chain:        scratch.Chain,
		ContractAddr: scratch.Address,
		Decimals:     scratch.Decimals,
	})
	if err != nil {
		if errors.Is(err, asset.ErrDuplicateAsset) {
			l.resetQuietly(req.UserId)
			return &types.FlowResp{
				Step:    constant.StepIdle,
				Message: fmt.Sprintf("⚠️ %s is already in your asset list.", scratch.Symbol),
			}, nil
		}
		return nil, err
	}

	l.resetQuietly(req.UserId)
	return &types.FlowResp{
		Step:    constant.StepIdle,
		Message: fmt.Sprintf("✅ %s (%s) added to your assets.", scratch.Name, scratch.Symbol),
		Success: true,
	}, nil
}

// Cancel aborts any in-progress flow. Safe to call when nothing is active.
func (l *SessionLogic) Cancel(userId int64) (*types.FlowResp, error) {
	if err := l.Clear(userId); err != nil {
		return nil, err
	}
	return &types.FlowResp{
		Step:    constant.StepIdle,
		Message: "Operation cancelled.",
	}, nil
}

func (l *SessionLogic) resetQuietly(userId int64) {
	if err := l.Clear(userId); err != nil {
		l.Errorf("重置会话失败, user=%d: %v", userId, err)
	}
}
