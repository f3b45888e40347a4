package types

// TxScratch holds the partially collected fields of an in-progress send flow.
type TxScratch struct {
	To     string `json:"to,omitempty"`
	Amount string `json:"amount,omitempty"`
}

// AddTokenScratch holds the partially collected fields of an in-progress token add.
type AddTokenScratch struct {
	Chain    string `json:"chain,omitempty"`
	Address  string `json:"address,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Name     string `json:"name,omitempty"`
	Decimals int    `json:"decimals,omitempty"`
}

// SessionData is the durable conversation state of one user.
type SessionData struct {
	Step         string           `json:"step"`
	TxData       TxScratch        `json:"txData"`
	AddTokenData *AddTokenScratch `json:"addTokenData,omitempty"`
}

type SessionGetReq struct {
	UserId int64 `json:"user_id" validate:"required"`
}

// SessionUpdateReq carries a partial update: zero-valued fields leave the stored
// session untouched, txData fields are merged rather than replaced.
type SessionUpdateReq struct {
	UserId       int64            `json:"user_id" validate:"required"`
	Step         string           `json:"step,omitempty"`
	TxData       *TxScratch       `json:"tx_data,omitempty"`
	AddTokenData *AddTokenScratch `json:"add_token_data,omitempty"`
}

type SessionClearReq struct {
	UserId int64 `json:"user_id" validate:"required"`
}

type SessionResp struct {
	Session SessionData `json:"session"`
}

// FlowReq drives the chat wizard: free text interpreted against the current step.
type FlowReq struct {
	UserId int64  `json:"user_id" validate:"required"`
	Text   string `json:"text,omitempty"`
}

type FlowConfirmReq struct {
	UserId int64  `json:"user_id" validate:"required"`
	Pin    string `json:"pin,omitempty"`
}

// FlowResp is what the bot glue renders back to the user.
type FlowResp struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Success bool   `json:"success"`
	TxHash  string `json:"hash,omitempty"`
}
