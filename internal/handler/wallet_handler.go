package handler

import (
	"net/http"

	"tgwallet/internal/logic/asset"
	"tgwallet/internal/logic/wallet"
	"tgwallet/internal/svc"
	"tgwallet/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// WalletCreateHandler 创建托管钱包, 明文私钥只在这次响应里出现一次
func WalletCreateHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.WalletCreateReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := wallet.NewWalletLogic(r.Context(), svcCtx)
		resp, err := l.Create(req.UserId)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func WalletMeHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.WalletMeReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := wallet.NewWalletLogic(r.Context(), svcCtx)
		resp, err := l.Me(req.UserId)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

// BalanceHandler 查询单个资产余额, symbol 缺省为钱包原生币
func BalanceHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BalanceReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		wl := wallet.NewWalletLogic(r.Context(), svcCtx)
		wlt, err := wl.Get(req.UserId)
		if err != nil {
			writeError(w, r, err)
			return
		}

		symbol := req.Symbol
		if symbol == "" {
			symbol = wlt.Chain
		}
		chain := req.Chain
		if chain == "" {
			chain = wlt.Chain
		}

		balance, err := asset.NewAssetLogic(r.Context(), svcCtx).GetBalance(wlt.Id, symbol, chain)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &types.BalanceResp{
			Balance: balance,
			Symbol:  symbol,
			Chain:   chain,
		})
	}
}
