package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	evmTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/zeromicro/go-zero/core/logx"
)

// ERC-20 method selectors used for metadata reads.
var (
	methodName     = []byte{0x06, 0xfd, 0xde, 0x03} // name()
	methodSymbol   = []byte{0x95, 0xd8, 0x9b, 0x41} // symbol()
	methodDecimals = []byte{0x31, 0x3c, 0xe5, 0x67} // decimals()
)

// EvmClient is the live Client backed by go-ethereum. 每次调用独立 Dial,
// 与上层的自定义 rpcUrl 参数保持一致。
type EvmClient struct{}

func NewEvmClient() *EvmClient {
	return &EvmClient{}
}

func (c *EvmClient) SubmitNativeTransfer(ctx context.Context, rpcUrl string, chainId int64, privateKeyHex, to string, amountWei *big.Int) (string, error) {
	logger := logx.WithContext(ctx)

	client, err := ethclient.Dial(rpcUrl)
	if err != nil {
		logger.Errorf("RPC 节点连接失败: %v", err)
		return "", errors.New("failed to connect to chain")
	}
	defer client.Close()

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return "", errors.New("invalid private key")
	}
	fromAddr := crypto.PubkeyToAddress(privateKey.PublicKey)
	toAddr := common.HexToAddress(to)

	nonce, err := client.PendingNonceAt(ctx, fromAddr)
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %v", err)
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %v", err)
	}

	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:  fromAddr,
		To:    &toAddr,
		Value: amountWei,
	})
	if err != nil {
		logger.Infof("Gas 估算失败，使用默认值: %v", err)
		gasLimit = 21000
	}
	if gasLimit < 21000 {
		gasLimit = 21000
	}
	gasLimit = gasLimit * 110 / 100

	tx := evmTypes.NewTx(&evmTypes.LegacyTx{
		Nonce:    nonce,
		To:       &toAddr,
		Value:    amountWei,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     nil,
	})

	signedTx, err := evmTypes.SignTx(tx, evmTypes.NewEIP155Signer(big.NewInt(chainId)), privateKey)
	if err != nil {
		return "", errors.New("failed to sign transaction")
	}

	if err := client.SendTransaction(ctx, signedTx); err != nil {
		// 有些 RPC 节点会在错误信息中返回已成功交易的哈希
		if strings.Contains(err.Error(), "result") && strings.Contains(err.Error(), "0x") {
			logger.Infof("⚠️ RPC 返回误导性错误，但交易可能已成功发送: %v", err)
		} else {
			return "", fmt.Errorf("failed to send transaction: %v", err)
		}
	}

	return signedTx.Hash().Hex(), nil
}

func (c *EvmClient) SuggestGasPrice(ctx context.Context, rpcUrl string) (*big.Int, error) {
	client, err := ethclient.Dial(rpcUrl)
	if err != nil {
		return nil, errors.New("failed to connect to chain")
	}
	defer client.Close()

	return client.SuggestGasPrice(ctx)
}

func (c *EvmClient) FetchTokenMetadata(ctx context.Context, rpcUrl, contractAddr string) (*TokenMetadata, error) {
	client, err := ethclient.Dial(rpcUrl)
	if err != nil {
		return nil, errors.New("failed to connect to chain")
	}
	defer client.Close()

	tokenAddr := common.HexToAddress(contractAddr)

	name, err := c.callString(ctx, client, tokenAddr, methodName)
	if err != nil {
		return nil, fmt.Errorf("failed to read token name: %v", err)
	}
	symbol, err := c.callString(ctx, client, tokenAddr, methodSymbol)
	if err != nil {
		return nil, fmt.Errorf("failed to read token symbol: %v", err)
	}

	result, err := client.CallContract(ctx, ethereum.CallMsg{To: &tokenAddr, Data: methodDecimals}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read token decimals: %v", err)
	}
	decimals := int(new(big.Int).SetBytes(result).Int64())

	return &TokenMetadata{Name: name, Symbol: symbol, Decimals: decimals}, nil
}

// callString performs a view call returning a string. Handles both ABI dynamic
// strings and legacy bytes32 returns.
func (c *EvmClient) callString(ctx context.Context, client *ethclient.Client, to common.Address, data []byte) (string, error) {
	result, err := client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return "", err
	}

	if len(result) >= 64 {
		length := new(big.Int).SetBytes(result[32:64]).Int64()
		if length >= 0 && 64+length <= int64(len(result)) {
			return string(result[64 : 64+length]), nil
		}
	}
	if len(result) == 32 {
		return strings.TrimRight(string(result), "\x00"), nil
	}
	return "", errors.New("unexpected string encoding")
}
