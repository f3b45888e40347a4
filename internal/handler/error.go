package handler

import (
	"errors"
	"net/http"

	"tgwallet/internal/logic/asset"
	"tgwallet/internal/logic/security"
	"tgwallet/internal/logic/session"
	"tgwallet/internal/logic/transaction"
	"tgwallet/internal/logic/wallet"

	"github.com/zeromicro/go-zero/rest/httpx"
)

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps business sentinel errors onto stable HTTP status codes.
// Anything unrecognized falls through to the framework's default handling so
// internal detail never leaks with a 2xx-adjacent code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := 0
	switch {
	case errors.Is(err, wallet.ErrWalletNotFound):
		status = http.StatusNotFound
	case errors.Is(err, wallet.ErrWalletExists):
		status = http.StatusConflict
	case errors.Is(err, transaction.ErrInvalidPin):
		status = http.StatusUnauthorized
	case errors.Is(err, security.ErrLocked):
		status = http.StatusLocked
	case errors.Is(err, transaction.ErrInsufficientFunds):
		status = http.StatusBadRequest
	case errors.Is(err, asset.ErrDuplicateAsset):
		status = http.StatusConflict
	case errors.Is(err, session.ErrInvalidSessionState):
		status = http.StatusConflict
	}

	if status == 0 {
		httpx.ErrorCtx(r.Context(), w, err)
		return
	}
	httpx.WriteJsonCtx(r.Context(), w, status, errorBody{Code: status, Message: err.Error()})
}
