package types

// WalletCreateReq creates the user's single custodial wallet.
type WalletCreateReq struct {
	UserId int64 `json:"user_id" validate:"required"`
}

// WalletCreateResp returns the plaintext private key exactly once, at creation.
type WalletCreateResp struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
}

type WalletMeReq struct {
	UserId int64 `json:"user_id" validate:"required"`
}

type WalletMeResp struct {
	Address string `json:"address"`
	Chain   string `json:"chain"`
	Balance string `json:"balance"`
}

type BalanceReq struct {
	UserId int64  `json:"user_id" validate:"required"`
	Symbol string `json:"symbol,omitempty"`
	Chain  string `json:"chain,omitempty"`
}

type BalanceResp struct {
	Balance string `json:"balance"`
	Symbol  string `json:"symbol"`
	Chain   string `json:"chain"`
}
