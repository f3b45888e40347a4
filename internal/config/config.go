package config

import "github.com/zeromicro/go-zero/rest"

type ChainConf struct {
	Name    string `json:"Name"`
	RpcUrl  string `json:"RpcUrl"`
	ChainId int64  `json:"ChainId"`
}

// SecurityConf 控制 PIN 锁定策略: 连续失败 MaxPinAttempts 次后锁定 LockoutMinutes 分钟。
type SecurityConf struct {
	MaxPinAttempts int `json:",default=3"`
	LockoutMinutes int `json:",default=15"`
}

// TransferConf 转账相关配置。
// TestMode 为 true 时不进行真实链上提交，只生成模拟交易哈希，
// 同时允许 history 为空时注入一条演示入账记录。生产环境必须为 false。
type TransferConf struct {
	FeeBuffer    string `json:",default=0.001"`
	TestMode     bool   `json:",default=false"`
	HistoryLimit int    `json:",default=5"`
}

// SeedConf 新钱包初始化时的测试赠送额度。
type SeedConf struct {
	GrantSymbols []string `json:",optional"`
	GrantAmount  string   `json:",default=1.0"`
}

type MonitorConf struct {
	Enabled bool   `json:",default=false"`
	WsUrl   string `json:",optional"`
}

type Config struct {
	rest.RestConf
	Postgres struct {
		DSN string
	}
	// EncryptionKey 私钥落库加密密钥, 64 位 hex (32 字节)。
	EncryptionKey string `json:",optional"`
	// Chains maps a chain name (e.g., "ETH") to its configuration.
	Chains       map[string]ChainConf
	DefaultChain string `json:",default=ETH"`
	Security     SecurityConf
	Transfer     TransferConf
	Seed         SeedConf
	Monitor      MonitorConf
}
