package transaction

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"tgwallet/internal/constant"
	"tgwallet/internal/model"
	"tgwallet/internal/svc"
	"tgwallet/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type HistoryLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HistoryLogic {
	return &HistoryLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// History 返回用户最近的交易记录, 新的在前。
// 收款记录靠 to_address 哨兵值区分; 测试模式下空历史会注入一条演示入账。
func (l *HistoryLogic) History(telegramId int64) (*types.HistoryResp, error) {
	resp := &types.HistoryResp{History: []types.HistoryItem{}}

	user, err := l.svcCtx.UsersDao.FindOneByTelegramId(l.ctx, telegramId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return resp, nil
		}
		return nil, err
	}

	limit := l.svcCtx.Config.Transfer.HistoryLimit
	if limit <= 0 {
		limit = 5
	}
	records, err := l.svcCtx.TransactionsDao.FindRecentByUserId(l.ctx, user.Id, limit)
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		resp.History = append(resp.History, l.toItem(r))
	}

	if len(resp.History) == 0 && l.svcCtx.Config.Transfer.TestMode {
		resp.History = append(resp.History, demoReceiveItem())
	}
	return resp, nil
}

func (l *HistoryLogic) toItem(r *model.Transactions) types.HistoryItem {
	direction := "Sent"
	if r.ToAddress == constant.ReceiveSentinel {
		direction = "Received"
	}

	txHash := ""
	if r.TxHash.Valid {
		txHash = r.TxHash.String
	}

	return types.HistoryItem{
		Id:        strconv.FormatInt(r.Id, 10),
		Type:      direction,
		Amount:    r.Amount.String(),
		Symbol:    l.displaySymbol(r.Chain),
		Status:    displayStatus(r.Status),
		Timestamp: r.CreatedAt.UTC().Format(time.RFC3339),
		TxHash:    txHash,
	}
}

// displaySymbol collapses the "CHAIN-<id>" audit tag back to the default native
// symbol for display.
func (l *HistoryLogic) displaySymbol(tag string) string {
	if strings.HasPrefix(tag, "CHAIN-") || tag == "" {
		return l.svcCtx.Config.DefaultChain
	}
	return tag
}

func displayStatus(status string) string {
	switch status {
	case constant.TxStatusSuccess:
		return "Completed"
	case constant.TxStatusFailed:
		return "Failed"
	default:
		return "Pending"
	}
}

// demoReceiveItem is the seeded entry shown to brand-new test-mode users so the
// history screen is not empty on first open.
func demoReceiveItem() types.HistoryItem {
	return types.HistoryItem{
		Id:        "999999",
		Type:      "Received",
		Amount:    "1.0",
		Symbol:    "ETH",
		Status:    "Completed",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		TxHash:    "",
	}
}
