package security

import (
	"context"
	"errors"
	"time"

	"tgwallet/internal/model"
	"tgwallet/internal/svc"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/crypto/bcrypt"
)

// ErrLocked means the lockout window is active; the PIN was not even compared.
var ErrLocked = errors.New("wallet locked, try again later")

// SecurityLogic is the PIN gate guarding transfers. Fails closed: no PIN set
// means no verification ever succeeds, and repeated failures lock the account
// server-side regardless of client retry behavior.
type SecurityLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewSecurityLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SecurityLogic {
	return &SecurityLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// SetPin hashes and stores the PIN, creating or overwriting. Proving the old PIN,
// when required, is the caller's responsibility.
func (l *SecurityLogic) SetPin(userId int64, pin string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = l.svcCtx.SecuritiesDao.FindOneByUserId(l.ctx, userId)
	if errors.Is(err, model.ErrNotFound) {
		if err := l.svcCtx.SecuritiesDao.Insert(l.ctx, &model.Securities{UserId: userId}); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return l.svcCtx.SecuritiesDao.SetPinHash(l.ctx, userId, string(hash))
}

// VerifyPin compares the PIN against the stored hash.
//   - 未设置 PIN: 返回 false
//   - 锁定中: 返回 ErrLocked, 不比较也不增加失败计数
//   - 不匹配: 计数 +1, 达到阈值后设置锁定窗口
//   - 匹配: 清零计数并解除锁定
func (l *SecurityLogic) VerifyPin(userId int64, pin string) (bool, error) {
	sec, err := l.svcCtx.SecuritiesDao.FindOneByUserId(l.ctx, userId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !sec.PinHash.Valid || sec.PinHash.String == "" {
		return false, nil
	}

	if sec.LockedUntil.Valid && sec.LockedUntil.Time.After(time.Now()) {
		return false, ErrLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(sec.PinHash.String), []byte(pin)) == nil {
		if sec.FailedAttempts > 0 || sec.LockedUntil.Valid {
			if err := l.svcCtx.SecuritiesDao.ResetFailures(l.ctx, userId); err != nil {
				return false, err
			}
		}
		return true, nil
	}

	failures := sec.FailedAttempts + 1
	var lockedUntil *time.Time
	if failures >= l.svcCtx.Config.Security.MaxPinAttempts {
		t := time.Now().Add(time.Duration(l.svcCtx.Config.Security.LockoutMinutes) * time.Minute)
		lockedUntil = &t
		l.Infof("用户 %d PIN 连续失败 %d 次, 锁定至 %s", userId, failures, t.Format(time.RFC3339))
	}
	if err := l.svcCtx.SecuritiesDao.RecordFailure(l.ctx, userId, failures, lockedUntil); err != nil {
		return false, err
	}
	return false, nil
}

// HasPin reports whether the user has a PIN set. No side effects.
func (l *SecurityLogic) HasPin(userId int64) (bool, error) {
	sec, err := l.svcCtx.SecuritiesDao.FindOneByUserId(l.ctx, userId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return sec.PinHash.Valid && sec.PinHash.String != "", nil
}

// EnsureRecord lazily creates the per-user security row.
func (l *SecurityLogic) EnsureRecord(userId int64) error {
	_, err := l.svcCtx.SecuritiesDao.FindOneByUserId(l.ctx, userId)
	if errors.Is(err, model.ErrNotFound) {
		return l.svcCtx.SecuritiesDao.Insert(l.ctx, &model.Securities{UserId: userId})
	}
	return err
}
