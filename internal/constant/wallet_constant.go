package constant

type Chain string

const (
	ChainETH  Chain = "ETH"
	ChainBSC  Chain = "BSC"
	ChainTRON Chain = "TRON"
)

// SupportedChains lists all chains that are currently supported for wallet creation.
var SupportedChains = []Chain{
	ChainETH,
}

// IsChainSupported checks if a given chain is in the list of supported chains.
func IsChainSupported(chain string) bool {
	for _, supportedChain := range SupportedChains {
		if string(supportedChain) == chain {
			return true
		}
	}
	return false
}

// ReceiveSentinel marks a transaction record as an incoming transfer.
// 历史记录里 to_address 等于这个值的条目视为 "Received"。
const ReceiveSentinel = "unknown"

// Transaction statuses. 状态只能单向推进: pending -> success | failed。
const (
	TxStatusPending = "pending"
	TxStatusSuccess = "success"
	TxStatusFailed  = "failed"
)

// Conversation steps for the chat-side wizard flows.
const (
	StepIdle            = "IDLE"
	StepSendAskAddress  = "SEND_ASK_ADDRESS"
	StepSendAskAmount   = "SEND_ASK_AMOUNT"
	StepAddTokenAddress = "ADD_TOKEN_ASK_ADDRESS"
)

// StandardTransferGas is the gas used by a plain native transfer.
const StandardTransferGas = 21000

// FallbackFee is returned when the RPC fee query is unavailable.
const FallbackFee = "0.001"
