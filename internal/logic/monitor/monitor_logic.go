package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tgwallet/internal/constant"
	"tgwallet/internal/logic/asset"
	"tgwallet/internal/model"
	"tgwallet/internal/svc"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/logx"
)

// DepositMonitor 订阅新区块, 发现打进托管地址的原生币转账后自动入账:
// 给对应钱包的原生资产加余额, 并写一条 Received 交易记录。
// 只处理原生转账; 代币入账走手动刷新。
type DepositMonitor struct {
	svcCtx *svc.ServiceContext
	wsUrl  string

	mu     sync.Mutex
	cancel context.CancelFunc
	logx.Logger
}

func NewDepositMonitor(svcCtx *svc.ServiceContext) *DepositMonitor {
	return &DepositMonitor{
		svcCtx: svcCtx,
		wsUrl:  svcCtx.Config.Monitor.WsUrl,
		Logger: logx.WithContext(context.Background()),
	}
}

// Start connects to the websocket endpoint and blocks until the subscription
// fails or Stop is called.
func (m *DepositMonitor) Start() error {
	if m.wsUrl == "" {
		return fmt.Errorf("deposit monitor enabled but Monitor.WsUrl is empty")
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()

	client, err := ethclient.DialContext(ctx, m.wsUrl)
	if err != nil {
		return fmt.Errorf("dial %s: %w", m.wsUrl, err)
	}
	defer client.Close()

	chainId, err := client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("query chain id: %w", err)
	}

	headers := make(chan *types.Header)
	sub, err := client.SubscribeNewHead(ctx, headers)
	if err != nil {
		return fmt.Errorf("subscribe new heads: %w", err)
	}
	defer sub.Unsubscribe()

	m.Infof("充值监控已启动: ws=%s chainId=%d", m.wsUrl, chainId.Int64())

	signer := types.LatestSignerForChainID(chainId)
	for {
		select {
		case err := <-sub.Err():
			return fmt.Errorf("head subscription: %w", err)
		case header := <-headers:
			if err := m.processBlock(ctx, client, signer, header); err != nil {
				m.Errorf("处理区块 %d 失败: %v", header.Number.Uint64(), err)
			}
		case <-ctx.Done():
			m.Info("充值监控已停止")
			return nil
		}
	}
}

// Stop signals the monitor loop to exit. Safe to call more than once.
func (m *DepositMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *DepositMonitor) processBlock(ctx context.Context, client *ethclient.Client, signer types.Signer, header *types.Header) error {
	block, err := client.BlockByNumber(ctx, header.Number)
	if err != nil {
		return fmt.Errorf("fetch block: %w", err)
	}

	// 每个区块重新取一次托管地址集合, 新建的钱包立刻生效
	watched, err := m.custodialAddresses(ctx)
	if err != nil {
		return err
	}
	if len(watched) == 0 {
		return nil
	}

	for _, tx := range block.Transactions() {
		if tx.To() == nil || tx.Value().Sign() == 0 {
			continue // 合约创建或零值交易
		}
		w, ok := watched[strings.ToLower(tx.To().Hex())]
		if !ok {
			continue
		}
		// 自己转给自己的内部镜像已经记过账了
		if from, err := types.Sender(signer, tx); err == nil {
			if _, internal := watched[strings.ToLower(from.Hex())]; internal {
				continue
			}
		}
		m.creditDeposit(ctx, w, tx)
	}
	return nil
}

// custodialAddresses maps lowercased wallet address to its wallet row.
func (m *DepositMonitor) custodialAddresses(ctx context.Context) (map[string]*model.Wallets, error) {
	wallets, err := m.svcCtx.WalletsDao.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*model.Wallets, len(wallets))
	for _, w := range wallets {
		out[strings.ToLower(w.Address)] = w
	}
	return out, nil
}

func (m *DepositMonitor) creditDeposit(ctx context.Context, w *model.Wallets, tx *types.Transaction) {
	amount := decimal.NewFromBigInt(tx.Value(), 0).Shift(-18)

	assetLogic := asset.NewAssetLogic(ctx, m.svcCtx)
	if err := assetLogic.Credit(w.Id, w.Chain, w.Chain, amount); err != nil {
		m.Errorf("充值入账失败, wallet=%d hash=%s: %v", w.Id, tx.Hash().Hex(), err)
		return
	}

	record := &model.Transactions{
		UserId:    w.UserId,
		ToAddress: constant.ReceiveSentinel,
		Amount:    amount,
		Status:    constant.TxStatusSuccess,
		Chain:     w.Chain,
	}
	record.TxHash.String = tx.Hash().Hex()
	record.TxHash.Valid = true
	if err := m.svcCtx.TransactionsDao.Insert(ctx, record); err != nil {
		m.Errorf("充值记录写入失败, wallet=%d hash=%s: %v", w.Id, tx.Hash().Hex(), err)
		return
	}
	m.Infof("💰 充值到账: wallet=%d amount=%s hash=%s", w.Id, amount.String(), tx.Hash().Hex())
}
