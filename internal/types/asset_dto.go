package types

type AssetListReq struct {
	UserId int64 `json:"user_id" validate:"required"`
}

type AssetItem struct {
	Id           int64  `json:"id"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Chain        string `json:"chain"`
	ContractAddr string `json:"contract_addr,omitempty"`
	Decimals     int    `json:"decimals"`
	LogoUrl      string `json:"logo_url,omitempty"`
	IsEnabled    bool   `json:"is_enabled"`
	IsCustom     bool   `json:"is_custom"`
	Balance      string `json:"balance"`
}

type AssetListResp struct {
	Assets []AssetItem `json:"assets"`
}

type AssetToggleReq struct {
	AssetId int64 `json:"asset_id" validate:"required"`
	Enabled bool  `json:"enabled"`
}

type AssetToggleResp struct {
	Success bool `json:"success"`
}

// AssetAddReq registers a custom token for the user's wallet.
type AssetAddReq struct {
	UserId       int64  `json:"user_id" validate:"required"`
	Symbol       string `json:"symbol" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Chain        string `json:"chain" validate:"required"`
	ContractAddr string `json:"contract_addr,omitempty"`
	Decimals     int    `json:"decimals,omitempty"`
	LogoUrl      string `json:"logo_url,omitempty"`
}

type AssetAddResp struct {
	Success bool  `json:"success"`
	AssetId int64 `json:"asset_id,omitempty"`
}
