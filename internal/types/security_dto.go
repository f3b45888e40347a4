package types

type PinSetReq struct {
	UserId int64  `json:"user_id" validate:"required"`
	Pin    string `json:"pin" validate:"required"`
}

type PinSetResp struct {
	Success bool `json:"success"`
}

type PinVerifyReq struct {
	UserId int64  `json:"user_id" validate:"required"`
	Pin    string `json:"pin" validate:"required"`
}

type PinVerifyResp struct {
	Valid bool `json:"valid"`
}

type PinHasReq struct {
	UserId int64 `json:"user_id" validate:"required"`
}

type PinHasResp struct {
	HasPin bool `json:"has_pin"`
}
