package constant

// AssetSeed describes one entry of the default asset catalog seeded for every new wallet.
type AssetSeed struct {
	Symbol         string
	Name           string
	Chain          string
	ContractAddr   string
	LogoUrl        string
	DefaultEnabled bool
}

// DefaultAssets is the fixed catalog every new wallet starts with.
// 结构性字段 (name/contract/logo) 允许在重复初始化时刷新, 余额与开关不会被重置。
var DefaultAssets = []AssetSeed{
	// Enabled by default
	{Symbol: "ETH", Name: "Ethereum", Chain: "ETH", LogoUrl: "https://cryptologos.cc/logos/ethereum-eth-logo.png", DefaultEnabled: true},
	{Symbol: "USDT", Name: "Tether USD", Chain: "ETH", ContractAddr: "0xdac17f958d2ee523a2206206994597c13d831ec7", LogoUrl: "https://cryptologos.cc/logos/tether-usdt-logo.png", DefaultEnabled: true},
	{Symbol: "USDC", Name: "USD Coin", Chain: "ETH", ContractAddr: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", LogoUrl: "https://cryptologos.cc/logos/usd-coin-usdc-logo.png", DefaultEnabled: true},
	{Symbol: "BNB", Name: "BNB", Chain: "BSC", LogoUrl: "https://cryptologos.cc/logos/bnb-bnb-logo.png", DefaultEnabled: true},
	{Symbol: "TRX", Name: "TRON", Chain: "TRON", LogoUrl: "https://cryptologos.cc/logos/tron-trx-logo.png", DefaultEnabled: true},

	// Disabled by default
	{Symbol: "WBTC", Name: "Wrapped Bitcoin", Chain: "ETH", ContractAddr: "0x2260fac5e5542a773aa44fbcfedf7c193bc2c599", LogoUrl: "https://cryptologos.cc/logos/bitcoin-btc-logo.png"},
	{Symbol: "SOL", Name: "Solana (Wormhole)", Chain: "ETH", ContractAddr: "0xd31a59c85ae9d8edefec411d448f90841571b89c", LogoUrl: "https://cryptologos.cc/logos/solana-sol-logo.png"},
	{Symbol: "MATIC", Name: "Polygon", Chain: "ETH", ContractAddr: "0x7d1afa7b718fb893db30a3abc0cfc608aacfebb0", LogoUrl: "https://cryptologos.cc/logos/polygon-matic-logo.png"},
	{Symbol: "LINK", Name: "Chainlink", Chain: "ETH", ContractAddr: "0x514910771af9ca656af840dff83e8264ecf986ca", LogoUrl: "https://cryptologos.cc/logos/chainlink-link-logo.png"},
	{Symbol: "UNI", Name: "Uniswap", Chain: "ETH", ContractAddr: "0x1f9840a85d5af5bf1d1762f925bdaddc4201f984", LogoUrl: "https://cryptologos.cc/logos/uniswap-uni-logo.png"},
	{Symbol: "SHIB", Name: "Shiba Inu", Chain: "ETH", ContractAddr: "0x95ad61b0a150d79219dcf64e1e6cc01f0b64c4ce", LogoUrl: "https://cryptologos.cc/logos/shiba-inu-shib-logo.png"},
	{Symbol: "PEPE", Name: "Pepe", Chain: "ETH", ContractAddr: "0x6982508145454ce325ddbe47a25d4ec3d2311933", LogoUrl: "https://cryptologos.cc/logos/pepe-pepe-logo.png"},
	{Symbol: "DAI", Name: "Dai Stablecoin", Chain: "ETH", ContractAddr: "0x6b175474e89094c44da98b954eedeac495271d0f", LogoUrl: "https://cryptologos.cc/logos/multi-collateral-dai-dai-logo.png"},
	{Symbol: "AAVE", Name: "Aave", Chain: "ETH", ContractAddr: "0x7fc66500c84a76ad7e9c93437bfc5ac33e2ddae9", LogoUrl: "https://cryptologos.cc/logos/aave-aave-logo.png"},
	{Symbol: "LTC", Name: "Litecoin (Binance-Peg)", Chain: "BSC", ContractAddr: "0x4338665cbb7b2485a8855a139b75d5e34ab0db94", LogoUrl: "https://cryptologos.cc/logos/litecoin-ltc-logo.png"},
	{Symbol: "DOGE", Name: "Dogecoin (Binance-Peg)", Chain: "BSC", ContractAddr: "0xba2ae424d960c26247dd6c32edc70b295c744c43", LogoUrl: "https://cryptologos.cc/logos/dogecoin-doge-logo.png"},
	{Symbol: "DOT", Name: "Polkadot (Binance-Peg)", Chain: "BSC", ContractAddr: "0x7083609fce4d1d8dc0c979aab8c869ea2c873402", LogoUrl: "https://cryptologos.cc/logos/polkadot-new-dot-logo.png"},
}

// DefaultGrantSymbols receive the one-time starting balance when no override is configured.
var DefaultGrantSymbols = []string{"ETH", "USDT"}
