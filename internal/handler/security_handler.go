package handler

import (
	"net/http"

	"tgwallet/internal/logic/security"
	"tgwallet/internal/logic/wallet"
	"tgwallet/internal/svc"
	"tgwallet/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// PinSetHandler 设置或更换 PIN
func PinSetHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.PinSetReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		user, err := wallet.NewWalletLogic(r.Context(), svcCtx).GetOrCreateUser(req.UserId)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if err := security.NewSecurityLogic(r.Context(), svcCtx).SetPin(user.Id, req.Pin); err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &types.PinSetResp{Success: true})
	}
}

// PinVerifyHandler 校验 PIN。锁定状态会以 423 返回, 不消耗失败次数。
func PinVerifyHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.PinVerifyReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		user, err := wallet.NewWalletLogic(r.Context(), svcCtx).GetOrCreateUser(req.UserId)
		if err != nil {
			writeError(w, r, err)
			return
		}

		valid, err := security.NewSecurityLogic(r.Context(), svcCtx).VerifyPin(user.Id, req.Pin)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &types.PinVerifyResp{Valid: valid})
	}
}

func PinHasHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.PinHasReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		user, err := wallet.NewWalletLogic(r.Context(), svcCtx).GetOrCreateUser(req.UserId)
		if err != nil {
			writeError(w, r, err)
			return
		}

		has, err := security.NewSecurityLogic(r.Context(), svcCtx).HasPin(user.Id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &types.PinHasResp{HasPin: has})
	}
}
