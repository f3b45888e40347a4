// Package testutil provides in-memory stand-ins for the storage and chain
// collaborators so logic packages can be tested without Postgres or an RPC node.
package testutil

import (
	"context"
	"database/sql"
	"math/big"
	"sync"
	"time"

	"tgwallet/internal/chain"
	"tgwallet/internal/config"
	"tgwallet/internal/crypt"
	"tgwallet/internal/model"
	"tgwallet/internal/svc"

	"github.com/shopspring/decimal"
)

// Store is the shared backing state of all fake DAOs.
type Store struct {
	mu           sync.Mutex
	nextId       int64
	Users        []*model.Users
	Wallets      []*model.Wallets
	Assets       []*model.Assets
	Transactions []*model.Transactions
	Securities   []*model.Securities
	Sessions     []*model.Sessions
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) id() int64 {
	s.nextId++
	return s.nextId
}

// DefaultConfig mirrors a typical test-mode deployment.
func DefaultConfig() config.Config {
	var c config.Config
	c.Chains = map[string]config.ChainConf{
		"ETH": {Name: "Ethereum", RpcUrl: "http://localhost:8545", ChainId: 1},
	}
	c.DefaultChain = "ETH"
	c.Security.MaxPinAttempts = 3
	c.Security.LockoutMinutes = 15
	c.Transfer.FeeBuffer = "0.001"
	c.Transfer.TestMode = true
	c.Transfer.HistoryLimit = 5
	c.Seed.GrantSymbols = []string{"ETH", "USDT"}
	c.Seed.GrantAmount = "1.0"
	return c
}

// NewServiceContext wires a ServiceContext entirely from fakes.
func NewServiceContext(c config.Config, store *Store, chainClient chain.Client) *svc.ServiceContext {
	key, _ := crypt.ResolveKey("")
	return &svc.ServiceContext{
		Config:          c,
		UsersDao:        &fakeUsersDao{store},
		WalletsDao:      &fakeWalletsDao{store},
		AssetsDao:       &fakeAssetsDao{store},
		TransactionsDao: &fakeTransactionsDao{store},
		SecuritiesDao:   &fakeSecuritiesDao{store},
		SessionsDao:     &fakeSessionsDao{store},
		Chain:           chainClient,
		EncryptionKey:   key,
	}
}

// FakeChain is a programmable chain.Client.
type FakeChain struct {
	SubmitHash   string
	SubmitErr    error
	GasPrice     *big.Int
	GasPriceErr  error
	Metadata     *chain.TokenMetadata
	MetadataErr  error
	SubmitCalls  int
	LastSubmitTo string
}

func (f *FakeChain) SubmitNativeTransfer(ctx context.Context, rpcUrl string, chainId int64, privateKeyHex, to string, amountWei *big.Int) (string, error) {
	f.SubmitCalls++
	f.LastSubmitTo = to
	if f.SubmitErr != nil {
		return "", f.SubmitErr
	}
	return f.SubmitHash, nil
}

func (f *FakeChain) SuggestGasPrice(ctx context.Context, rpcUrl string) (*big.Int, error) {
	if f.GasPriceErr != nil {
		return nil, f.GasPriceErr
	}
	return f.GasPrice, nil
}

func (f *FakeChain) FetchTokenMetadata(ctx context.Context, rpcUrl, contractAddr string) (*chain.TokenMetadata, error) {
	if f.MetadataErr != nil {
		return nil, f.MetadataErr
	}
	return f.Metadata, nil
}

type fakeUsersDao struct{ s *Store }

func (d *fakeUsersDao) Insert(ctx context.Context, data *model.Users) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	data.Id = d.s.id()
	data.CreatedAt = time.Now()
	d.s.Users = append(d.s.Users, data)
	return nil
}

func (d *fakeUsersDao) FindOneByTelegramId(ctx context.Context, telegramId int64) (*model.Users, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, u := range d.s.Users {
		if u.TelegramId == telegramId {
			return u, nil
		}
	}
	return nil, model.ErrNotFound
}

type fakeWalletsDao struct{ s *Store }

func (d *fakeWalletsDao) Insert(ctx context.Context, data *model.Wallets) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	data.Id = d.s.id()
	data.CreatedAt = time.Now()
	d.s.Wallets = append(d.s.Wallets, data)
	return nil
}

func (d *fakeWalletsDao) FindOneByUserId(ctx context.Context, userId int64) (*model.Wallets, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, w := range d.s.Wallets {
		if w.UserId == userId {
			return w, nil
		}
	}
	return nil, model.ErrNotFound
}

func (d *fakeWalletsDao) FindOneByAddress(ctx context.Context, address string) (*model.Wallets, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, w := range d.s.Wallets {
		if w.Address == address {
			return w, nil
		}
	}
	return nil, model.ErrNotFound
}

func (d *fakeWalletsDao) FindAll(ctx context.Context) ([]*model.Wallets, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	out := make([]*model.Wallets, len(d.s.Wallets))
	copy(out, d.s.Wallets)
	return out, nil
}

type fakeAssetsDao struct{ s *Store }

func (d *fakeAssetsDao) find(walletId int64, symbol, chain string) *model.Assets {
	for _, a := range d.s.Assets {
		if a.WalletId == walletId && a.Symbol == symbol && a.Chain == chain {
			return a
		}
	}
	return nil
}

func (d *fakeAssetsDao) Insert(ctx context.Context, data *model.Assets) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	// 模拟 (wallet_id, symbol, chain) 唯一索引
	if d.find(data.WalletId, data.Symbol, data.Chain) != nil {
		return model.ErrDuplicate
	}
	data.Id = d.s.id()
	data.CreatedAt = time.Now()
	d.s.Assets = append(d.s.Assets, data)
	return nil
}

func (d *fakeAssetsDao) Upsert(ctx context.Context, data *model.Assets) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if existing := d.find(data.WalletId, data.Symbol, data.Chain); existing != nil {
		// 冲突时只刷新结构性字段
		existing.Name = data.Name
		existing.ContractAddr = data.ContractAddr
		existing.LogoUrl = data.LogoUrl
		return nil
	}
	data.Id = d.s.id()
	data.CreatedAt = time.Now()
	d.s.Assets = append(d.s.Assets, data)
	return nil
}

func (d *fakeAssetsDao) FindOne(ctx context.Context, id int64) (*model.Assets, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, a := range d.s.Assets {
		if a.Id == id {
			return a, nil
		}
	}
	return nil, model.ErrNotFound
}

func (d *fakeAssetsDao) FindOneByWalletSymbolChain(ctx context.Context, walletId int64, symbol, chain string) (*model.Assets, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if a := d.find(walletId, symbol, chain); a != nil {
		return a, nil
	}
	return nil, model.ErrNotFound
}

func (d *fakeAssetsDao) FindAllByWalletId(ctx context.Context, walletId int64) ([]*model.Assets, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	var out []*model.Assets
	for _, a := range d.s.Assets {
		if a.WalletId == walletId {
			out = append(out, a)
		}
	}
	return out, nil
}

func (d *fakeAssetsDao) FindByWalletAndSymbols(ctx context.Context, walletId int64, symbols []string) ([]*model.Assets, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	var out []*model.Assets
	for _, a := range d.s.Assets {
		if a.WalletId != walletId {
			continue
		}
		for _, sym := range symbols {
			if a.Symbol == sym {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (d *fakeAssetsDao) AddBalance(ctx context.Context, walletId int64, symbol, chain string, delta decimal.Decimal) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	a := d.find(walletId, symbol, chain)
	if a == nil {
		return model.ErrNotFound
	}
	a.Balance = a.Balance.Add(delta)
	return nil
}

func (d *fakeAssetsDao) SetBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, a := range d.s.Assets {
		if a.Id == id {
			a.Balance = balance
		}
	}
	return nil
}

func (d *fakeAssetsDao) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, a := range d.s.Assets {
		if a.Id == id {
			a.IsEnabled = enabled
		}
	}
	return nil
}

type fakeTransactionsDao struct{ s *Store }

func (d *fakeTransactionsDao) Insert(ctx context.Context, data *model.Transactions) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	data.Id = d.s.id()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}
	d.s.Transactions = append(d.s.Transactions, data)
	return nil
}

func (d *fakeTransactionsDao) FindRecentByUserId(ctx context.Context, userId int64, limit int) ([]*model.Transactions, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	var out []*model.Transactions
	for i := len(d.s.Transactions) - 1; i >= 0 && len(out) < limit; i-- {
		if d.s.Transactions[i].UserId == userId {
			out = append(out, d.s.Transactions[i])
		}
	}
	return out, nil
}

func (d *fakeTransactionsDao) MarkSuccess(ctx context.Context, id int64, txHash string) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, t := range d.s.Transactions {
		if t.Id == id {
			t.Status = "success"
			t.TxHash.String = txHash
			t.TxHash.Valid = true
		}
	}
	return nil
}

func (d *fakeTransactionsDao) MarkFailed(ctx context.Context, id int64) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, t := range d.s.Transactions {
		if t.Id == id {
			t.Status = "failed"
		}
	}
	return nil
}

type fakeSecuritiesDao struct{ s *Store }

func (d *fakeSecuritiesDao) find(userId int64) *model.Securities {
	for _, sec := range d.s.Securities {
		if sec.UserId == userId {
			return sec
		}
	}
	return nil
}

func (d *fakeSecuritiesDao) Insert(ctx context.Context, data *model.Securities) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	data.Id = d.s.id()
	d.s.Securities = append(d.s.Securities, data)
	return nil
}

func (d *fakeSecuritiesDao) FindOneByUserId(ctx context.Context, userId int64) (*model.Securities, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if sec := d.find(userId); sec != nil {
		return sec, nil
	}
	return nil, model.ErrNotFound
}

func (d *fakeSecuritiesDao) SetPinHash(ctx context.Context, userId int64, pinHash string) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if sec := d.find(userId); sec != nil {
		sec.PinHash.String = pinHash
		sec.PinHash.Valid = true
	}
	return nil
}

func (d *fakeSecuritiesDao) ResetFailures(ctx context.Context, userId int64) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if sec := d.find(userId); sec != nil {
		sec.FailedAttempts = 0
		sec.LockedUntil.Valid = false
	}
	return nil
}

func (d *fakeSecuritiesDao) RecordFailure(ctx context.Context, userId int64, attempts int, lockedUntil *time.Time) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if sec := d.find(userId); sec != nil {
		sec.FailedAttempts = attempts
		sec.LockedUntil = sql.NullTime{}
		if lockedUntil != nil {
			sec.LockedUntil = sql.NullTime{Time: *lockedUntil, Valid: true}
		}
	}
	return nil
}

type fakeSessionsDao struct{ s *Store }

func (d *fakeSessionsDao) FindOneByUserId(ctx context.Context, userId int64) (*model.Sessions, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, sess := range d.s.Sessions {
		if sess.UserId == userId {
			return sess, nil
		}
	}
	return nil, model.ErrNotFound
}

func (d *fakeSessionsDao) Upsert(ctx context.Context, userId int64, step, data string) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, sess := range d.s.Sessions {
		if sess.UserId == userId {
			sess.Step = step
			sess.Data = data
			return nil
		}
	}
	d.s.Sessions = append(d.s.Sessions, &model.Sessions{
		Id:     d.s.id(),
		UserId: userId,
		Step:   step,
		Data:   data,
	})
	return nil
}
