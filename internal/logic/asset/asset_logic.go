package asset

import (
	"context"
	"database/sql"
	"errors"

	"tgwallet/internal/constant"
	"tgwallet/internal/model"
	"tgwallet/internal/svc"
	"tgwallet/internal/types"

	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/logx"
)

var ErrDuplicateAsset = errors.New("asset already added")

// AssetLogic is the ledger store: per-wallet balance lines and their lifecycle.
type AssetLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewAssetLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AssetLogic {
	return &AssetLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// GetBalance returns the exact stored decimal, or "0.0" when no balance line exists.
func (l *AssetLogic) GetBalance(walletId int64, symbol, chain string) (string, error) {
	a, err := l.svcCtx.AssetsDao.FindOneByWalletSymbolChain(l.ctx, walletId, symbol, chain)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "0.0", nil
		}
		return "", err
	}
	return a.Balance.String(), nil
}

// Credit atomically increases a balance line.
func (l *AssetLogic) Credit(walletId int64, symbol, chain string, amount decimal.Decimal) error {
	return l.svcCtx.AssetsDao.AddBalance(l.ctx, walletId, symbol, chain, amount)
}

// Debit atomically decreases a balance line.
func (l *AssetLogic) Debit(walletId int64, symbol, chain string, amount decimal.Decimal) error {
	return l.svcCtx.AssetsDao.AddBalance(l.ctx, walletId, symbol, chain, amount.Neg())
}

// InitializeAssets seeds the default catalog for a new wallet. Upsert 语义:
// 重复执行只刷新 name/contract/logo 等结构性字段, 不会重置余额或重复发放赠送额度。
func (l *AssetLogic) InitializeAssets(walletId int64) error {
	grant := l.grantAmount()
	grantSymbols := l.grantSymbols()

	for _, seed := range constant.DefaultAssets {
		balance := decimal.Zero
		if containsSymbol(grantSymbols, seed.Symbol) {
			balance = grant
		}

		data := &model.Assets{
			WalletId:  walletId,
			Symbol:    seed.Symbol,
			Name:      seed.Name,
			Chain:     seed.Chain,
			IsEnabled: seed.DefaultEnabled,
			Balance:   balance,
		}
		if seed.ContractAddr != "" {
			data.ContractAddr = sql.NullString{String: seed.ContractAddr, Valid: true}
		}
		if seed.LogoUrl != "" {
			data.LogoUrl = sql.NullString{String: seed.LogoUrl, Valid: true}
		}

		if err := l.svcCtx.AssetsDao.Upsert(l.ctx, data); err != nil {
			return err
		}
	}
	return nil
}

// RepairNegativeBalances resets grant-seeded assets that went negative (seen after a
// seeding/migration bug) back to the grant amount. Safe to run repeatedly.
func (l *AssetLogic) RepairNegativeBalances(walletId int64) error {
	grant := l.grantAmount()

	assets, err := l.svcCtx.AssetsDao.FindByWalletAndSymbols(l.ctx, walletId, l.grantSymbols())
	if err != nil {
		return err
	}

	for _, a := range assets {
		if a.Balance.IsNegative() {
			l.Infof("[Auto-Repair] 重置负余额 %s (wallet %d): %s -> %s", a.Symbol, walletId, a.Balance, grant)
			if err := l.svcCtx.AssetsDao.SetBalance(l.ctx, a.Id, grant); err != nil {
				return err
			}
		}
	}
	return nil
}

// ToggleAsset flips the enabled flag of an asset line.
func (l *AssetLogic) ToggleAsset(assetId int64, enabled bool) error {
	return l.svcCtx.AssetsDao.SetEnabled(l.ctx, assetId, enabled)
}

// AddCustomAsset registers a user-supplied token. A second add of the same
// (wallet, symbol, chain) fails with ErrDuplicateAsset, leaving the first row untouched.
func (l *AssetLogic) AddCustomAsset(walletId int64, req *types.AssetAddReq) (*model.Assets, error) {
	_, err := l.svcCtx.AssetsDao.FindOneByWalletSymbolChain(l.ctx, walletId, req.Symbol, req.Chain)
	if err == nil {
		return nil, ErrDuplicateAsset
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	decimals := req.Decimals
	if decimals == 0 {
		decimals = 18
	}

	data := &model.Assets{
		WalletId:  walletId,
		Symbol:    req.Symbol,
		Name:      req.Name,
		Chain:     req.Chain,
		Decimals:  decimals,
		IsEnabled: true,
		IsCustom:  true,
		Balance:   decimal.Zero,
	}
	if req.ContractAddr != "" {
		data.ContractAddr = sql.NullString{String: req.ContractAddr, Valid: true}
	}
	if req.LogoUrl != "" {
		data.LogoUrl = sql.NullString{String: req.LogoUrl, Valid: true}
	}

	if err := l.svcCtx.AssetsDao.Insert(l.ctx, data); err != nil {
		// 并发添加同一 token 时, 第二个请求越过预检查, 由唯一索引兜底
		if errors.Is(err, model.ErrDuplicate) {
			return nil, ErrDuplicateAsset
		}
		return nil, err
	}
	return data, nil
}

// ListAssets returns every balance line of the wallet, ordered by symbol.
func (l *AssetLogic) ListAssets(walletId int64) ([]types.AssetItem, error) {
	assets, err := l.svcCtx.AssetsDao.FindAllByWalletId(l.ctx, walletId)
	if err != nil {
		return nil, err
	}

	items := make([]types.AssetItem, 0, len(assets))
	for _, a := range assets {
		items = append(items, types.AssetItem{
			Id:           a.Id,
			Symbol:       a.Symbol,
			Name:         a.Name,
			Chain:        a.Chain,
			ContractAddr: a.ContractAddr.String,
			Decimals:     a.Decimals,
			LogoUrl:      a.LogoUrl.String,
			IsEnabled:    a.IsEnabled,
			IsCustom:     a.IsCustom,
			Balance:      a.Balance.String(),
		})
	}
	return items, nil
}

func (l *AssetLogic) grantSymbols() []string {
	if len(l.svcCtx.Config.Seed.GrantSymbols) > 0 {
		return l.svcCtx.Config.Seed.GrantSymbols
	}
	return constant.DefaultGrantSymbols
}

func (l *AssetLogic) grantAmount() decimal.Decimal {
	grant, err := decimal.NewFromString(l.svcCtx.Config.Seed.GrantAmount)
	if err != nil {
		return decimal.NewFromInt(1)
	}
	return grant
}

func containsSymbol(symbols []string, symbol string) bool {
	for _, s := range symbols {
		if s == symbol {
			return true
		}
	}
	return false
}
