package handler

import (
	"net/http"
	"time"

	"tgwallet/internal/svc"

	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Handler: HealthHandler(),
			},
			// --- Wallet Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/wallet/create",
				Handler: WalletCreateHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/wallet/me",
				Handler: WalletMeHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/wallet/balance",
				Handler: BalanceHandler(serverCtx),
			},
			// --- Transaction Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/transaction/send",
				Handler: SendHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/transaction/estimate",
				Handler: EstimateFeeHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/wallet/history",
				Handler: HistoryHandler(serverCtx),
			},
			// --- Security Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/security/pin/set",
				Handler: PinSetHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/security/pin/verify",
				Handler: PinVerifyHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/security/pin/has",
				Handler: PinHasHandler(serverCtx),
			},
			// --- Asset Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/asset/list",
				Handler: AssetListHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/asset/toggle",
				Handler: AssetToggleHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/asset/add",
				Handler: AssetAddHandler(serverCtx),
			},
			// --- Session Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/session/get",
				Handler: SessionGetHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/session/update",
				Handler: SessionUpdateHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/session/clear",
				Handler: SessionClearHandler(serverCtx),
			},
			// --- Conversation Flow Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/flow/send/start",
				Handler: FlowStartSendHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/flow/token/start",
				Handler: FlowStartAddTokenHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/flow/text",
				Handler: FlowTextHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/flow/send/confirm",
				Handler: FlowConfirmSendHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/flow/token/confirm",
				Handler: FlowConfirmAddTokenHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/flow/cancel",
				Handler: FlowCancelHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api/"),
		rest.WithTimeout(30000*time.Millisecond),
	)
}

// HealthHandler reports process liveness.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.OkJson(w, map[string]string{"status": "ok", "version": "1.0.0"})
	}
}
