package semantics

// System contract kinds used by the default tables.
const (
	KindPrecompile = "precompile"
	KindL2System   = "l2-system"
)

func defaultKnownContracts() map[string]string {
	return map[string]string{
		// Gnosis Safe deployments seen in DAO proposal traces.
		"0x3e5c63644e683549055b9be8653de26e0b4cd36e": "Gnosis Safe: Proxy Factory",
		"0xd9db270c1b5e3bd161e8c8503c55ceabee709552": "Gnosis Safe: Master Copy",
		"0xa6b71e26c5e0845f74c812102ca7114b6a896ab2": "Gnosis Safe: Proxy Factory v1.3.0",

		// Governor contracts.
		"0xf07ded9dc292157749b6fd268e37df6ea38395b9": "Arbitrum Governor",
		"0xb4c064f466931b8d0f637654c916e3f203c46f13": "Arbitrum Governor (Proposer)",
		"0x408ed6354d4973f66138c91495f2f2fcbd8724c3": "Uniswap Governor",
	}
}

func defaultSystemContracts() map[string]SystemContract {
	return map[string]SystemContract{
		"0x0000000000000000000000000000000000000001": {Kind: KindPrecompile, Name: "Ethereum Precompile: ECRecover"},
		"0x0000000000000000000000000000000000000002": {Kind: KindPrecompile, Name: "Ethereum Precompile: SHA256"},
		"0x0000000000000000000000000000000000000003": {Kind: KindPrecompile, Name: "Ethereum Precompile: RIPEMD160"},
		"0x0000000000000000000000000000000000000004": {Kind: KindPrecompile, Name: "Ethereum Precompile: Identity"},
		"0x0000000000000000000000000000000000000005": {Kind: KindPrecompile, Name: "Ethereum Precompile: ModExp"},
		"0x0000000000000000000000000000000000000006": {Kind: KindPrecompile, Name: "Ethereum Precompile: BN256Add"},
		"0x0000000000000000000000000000000000000007": {Kind: KindPrecompile, Name: "Ethereum Precompile: BN256Mul"},
		"0x0000000000000000000000000000000000000008": {Kind: KindPrecompile, Name: "Ethereum Precompile: BN256Pairing"},
		"0x0000000000000000000000000000000000000009": {Kind: KindPrecompile, Name: "Ethereum Precompile: Blake2F"},

		"0x0000000000000000000000000000000000000064": {Kind: KindL2System, Name: "Arbitrum: L1 ArbSys"},
		"0x0000000000000000000000000000000000000065": {Kind: KindL2System, Name: "Arbitrum: L2 ArbSys"},
	}
}

// defaultFunctionPatterns is matched top to bottom and the first hit
// wins, so longer patterns sit above their prefixes: upgradeToAndCall
// would otherwise be shadowed by upgradeTo.
func defaultFunctionPatterns() []FunctionPattern {
	return []FunctionPattern{
		{Pattern: "execTransaction", Label: "Gnosis Safe: Multi-sig execution"},
		{Pattern: "propose", Label: "Governor: Proposal creation"},
		{Pattern: "execute", Label: "Governor: Proposal execution"},
		{Pattern: "castVote", Label: "Governor: Voting"},
		{Pattern: "getPastVotes", Label: "Governor: Vote weight query"},
		{Pattern: "delegate", Label: "Governor: Delegation"},
		{Pattern: "upgradeToAndCall", Label: "Proxy: Upgrade and call"},
		{Pattern: "upgradeTo", Label: "Proxy: Upgrade"},
	}
}

func defaultSelectors() map[string]string {
	return map[string]string{
		"0xa9059cbb": "transfer(address,uint256)",
		"0x23b872dd": "transferFrom(address,address,uint256)",
		"0x095ea7b3": "approve(address,uint256)",
		"0x40c10f19": "mint(address,uint256)",
		"0x42966c68": "burn(uint256)",
		"0xbc86e06b": "execute(address,uint256,bytes)",
		"0x5c60da1b": "implementation()",
		"0x8da5cb5b": "owner()",
		"0x715018a6": "renounceOwnership()",
		"0xf2fde38b": "transferOwnership(address)",
		"0x70a08231": "balanceOf(address)",
		"0x18160ddd": "totalSupply()",
		"0x06fdde03": "name()",
		"0x95d89b41": "symbol()",
		"0x313ce567": "decimals()",
		"0xdd62ed3e": "allowance(address,address)",
		"0x4e71e0c8": "claim()",
		"0x379607f5": "claimable(address)",
		"0x2e1a7d4d": "withdraw(uint256)",
		"0x3d18b912": "getReward()",
		"0x5c975abb": "paused()",
		"0x8456cb59": "pause()",
		"0x3f4ba83a": "unpause()",
	}
}

// defaultImportant lists the function names whose calls qualify as
// representative paths in the structural description.
func defaultImportant() []string {
	return []string{"execTransaction", "propose", "execute", "upgradeTo"}
}

// DefaultTables returns a fresh copy of the builtin annotation data.
// Callers may extend the copy before building a registry from it.
func DefaultTables() Tables {
	return Tables{
		KnownContracts:  defaultKnownContracts(),
		SystemContracts: defaultSystemContracts(),
		Patterns:        defaultFunctionPatterns(),
		Selectors:       defaultSelectors(),
		Important:       defaultImportant(),
	}
}
