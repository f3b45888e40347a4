package types

// SendReq submits a PIN-gated transfer.
type SendReq struct {
	UserId  int64  `json:"user_id" validate:"required"`
	To      string `json:"to" validate:"required"`
	Amount  string `json:"amount" validate:"required"` // decimal string, e.g. "0.5"
	Pin     string `json:"pin" validate:"required"`
	RpcUrl  string `json:"rpc_url,omitempty"`
	ChainId int64  `json:"chain_id,omitempty"`
}

type SendResp struct {
	Success bool   `json:"success"`
	TxHash  string `json:"hash,omitempty"`
	Message string `json:"message,omitempty"`
}

type EstimateFeeReq struct {
	RpcUrl string `json:"rpc_url,omitempty"`
}

type EstimateFeeResp struct {
	Fee string `json:"fee"`
}

type HistoryReq struct {
	UserId int64 `json:"user_id" validate:"required"`
}

// HistoryItem classifies each record as Sent or Received by the destination sentinel.
type HistoryItem struct {
	Id        string `json:"id"`
	Type      string `json:"type"` // "Sent" | "Received"
	Amount    string `json:"amount"`
	Symbol    string `json:"symbol"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	TxHash    string `json:"hash"`
}

type HistoryResp struct {
	History []HistoryItem `json:"history"`
}
