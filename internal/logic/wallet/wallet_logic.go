package wallet

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"

	"tgwallet/internal/crypt"
	"tgwallet/internal/logic/asset"
	"tgwallet/internal/model"
	"tgwallet/internal/svc"
	"tgwallet/internal/types"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zeromicro/go-zero/core/logx"
)

var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletExists   = errors.New("wallet already exists")
)

type WalletLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewWalletLogic(ctx context.Context, svcCtx *svc.ServiceContext) *WalletLogic {
	return &WalletLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// GetOrCreateUser resolves the Telegram account to an internal user, creating the
// user plus its security record on first contact.
func (l *WalletLogic) GetOrCreateUser(telegramId int64) (*model.Users, error) {
	user, err := l.svcCtx.UsersDao.FindOneByTelegramId(l.ctx, telegramId)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	user = &model.Users{TelegramId: telegramId}
	if err := l.svcCtx.UsersDao.Insert(l.ctx, user); err != nil {
		return nil, err
	}
	if err := l.svcCtx.SecuritiesDao.Insert(l.ctx, &model.Securities{UserId: user.Id}); err != nil {
		return nil, err
	}
	return user, nil
}

// Create generates the user's custodial wallet. The plaintext private key is
// returned exactly once here; only the encrypted form is stored.
func (l *WalletLogic) Create(telegramId int64) (*types.WalletCreateResp, error) {
	l.Infof("--- 开始处理钱包创建, telegram_id: %d ---", telegramId)

	user, err := l.GetOrCreateUser(telegramId)
	if err != nil {
		return nil, err
	}

	if _, err := l.svcCtx.WalletsDao.FindOneByUserId(l.ctx, user.Id); err == nil {
		return nil, ErrWalletExists
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	// 1. 生成 EVM 密钥对
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key: %v", err)
	}
	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("failed to cast public key to ECDSA")
	}
	address := crypto.PubkeyToAddress(*publicKey).Hex()
	privateKeyHex := hex.EncodeToString(crypto.FromECDSA(privateKey))

	// 2. 私钥加密后落库
	encryptedKey, err := crypt.Encrypt(l.svcCtx.EncryptionKey, privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt private key: %v", err)
	}

	newWallet := &model.Wallets{
		UserId:              user.Id,
		Address:             address,
		EncryptedPrivateKey: encryptedKey,
		Chain:               l.svcCtx.Config.DefaultChain,
	}
	if err := l.svcCtx.WalletsDao.Insert(l.ctx, newWallet); err != nil {
		return nil, fmt.Errorf("failed to save wallet to database: %v", err)
	}

	// 3. 初始化默认资产目录并修复历史负余额
	assetLogic := asset.NewAssetLogic(l.ctx, l.svcCtx)
	if err := assetLogic.InitializeAssets(newWallet.Id); err != nil {
		return nil, fmt.Errorf("failed to seed default assets: %v", err)
	}
	if err := assetLogic.RepairNegativeBalances(newWallet.Id); err != nil {
		l.Errorf("负余额修复失败 (wallet %d): %v", newWallet.Id, err)
	}

	l.Infof("✅ 钱包创建成功: %s", address)
	return &types.WalletCreateResp{
		Address:    address,
		PrivateKey: privateKeyHex,
	}, nil
}

// Get resolves the user's wallet, or ErrWalletNotFound.
func (l *WalletLogic) Get(telegramId int64) (*model.Wallets, error) {
	user, err := l.svcCtx.UsersDao.FindOneByTelegramId(l.ctx, telegramId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	w, err := l.svcCtx.WalletsDao.FindOneByUserId(l.ctx, user.Id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return w, nil
}

// Me returns address, chain and the native asset balance for display.
func (l *WalletLogic) Me(telegramId int64) (*types.WalletMeResp, error) {
	w, err := l.Get(telegramId)
	if err != nil {
		return nil, err
	}

	balance, err := asset.NewAssetLogic(l.ctx, l.svcCtx).GetBalance(w.Id, w.Chain, w.Chain)
	if err != nil {
		return nil, err
	}

	return &types.WalletMeResp{
		Address: w.Address,
		Chain:   w.Chain,
		Balance: balance,
	}, nil
}

// SignerKey decrypts the wallet's private key for the live submission path.
// Internal use only.
func (l *WalletLogic) SignerKey(w *model.Wallets) (string, error) {
	return crypt.Decrypt(l.svcCtx.EncryptionKey, w.EncryptedPrivateKey)
}
