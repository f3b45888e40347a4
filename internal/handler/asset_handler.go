package handler

import (
	"net/http"

	"tgwallet/internal/logic/asset"
	"tgwallet/internal/logic/wallet"
	"tgwallet/internal/svc"
	"tgwallet/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// AssetListHandler 返回用户的完整资产列表 (含禁用的)
func AssetListHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AssetListReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		wlt, err := wallet.NewWalletLogic(r.Context(), svcCtx).Get(req.UserId)
		if err != nil {
			writeError(w, r, err)
			return
		}

		items, err := asset.NewAssetLogic(r.Context(), svcCtx).ListAssets(wlt.Id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &types.AssetListResp{Assets: items})
	}
}

func AssetToggleHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AssetToggleReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		if err := asset.NewAssetLogic(r.Context(), svcCtx).ToggleAsset(req.AssetId, req.Enabled); err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &types.AssetToggleResp{Success: true})
	}
}

// AssetAddHandler 手动登记自定义代币 (不走会话向导的直连入口)
func AssetAddHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AssetAddReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		wlt, err := wallet.NewWalletLogic(r.Context(), svcCtx).Get(req.UserId)
		if err != nil {
			writeError(w, r, err)
			return
		}

		created, err := asset.NewAssetLogic(r.Context(), svcCtx).AddCustomAsset(wlt.Id, &req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &types.AssetAddResp{Success: true, AssetId: created.Id})
	}
}
