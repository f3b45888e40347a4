package handler

import (
	"net/http"

	"tgwallet/internal/logic/session"
	"tgwallet/internal/svc"
	"tgwallet/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func SessionGetHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SessionGetReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		data, err := session.NewSessionLogic(r.Context(), svcCtx).Get(req.UserId)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &types.SessionResp{Session: *data})
	}
}

// SessionUpdateHandler 局部更新会话: 未出现的字段保持不变
func SessionUpdateHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SessionUpdateReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		data, err := session.NewSessionLogic(r.Context(), svcCtx).Update(&req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &types.SessionResp{Session: *data})
	}
}

func SessionClearHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SessionClearReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := session.NewSessionLogic(r.Context(), svcCtx)
		if err := l.Clear(req.UserId); err != nil {
			writeError(w, r, err)
			return
		}
		data, err := l.Get(req.UserId)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &types.SessionResp{Session: *data})
	}
}

// flowHandler adapts the common shape of the wizard endpoints.
func flowHandler(svcCtx *svc.ServiceContext, fn func(*session.SessionLogic, int64) (*types.FlowResp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.FlowReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		resp, err := fn(session.NewSessionLogic(r.Context(), svcCtx), req.UserId)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func FlowStartSendHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return flowHandler(svcCtx, (*session.SessionLogic).StartSend)
}

func FlowStartAddTokenHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return flowHandler(svcCtx, (*session.SessionLogic).StartAddToken)
}

func FlowCancelHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return flowHandler(svcCtx, (*session.SessionLogic).Cancel)
}

// FlowTextHandler 把一条自由文本输入交给状态机解释
func FlowTextHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.FlowReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		resp, err := session.NewSessionLogic(r.Context(), svcCtx).HandleText(&req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func FlowConfirmSendHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.FlowConfirmReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		resp, err := session.NewSessionLogic(r.Context(), svcCtx).ConfirmSend(&req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func FlowConfirmAddTokenHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.FlowConfirmReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		resp, err := session.NewSessionLogic(r.Context(), svcCtx).ConfirmAddToken(&req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
