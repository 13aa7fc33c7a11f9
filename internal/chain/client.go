package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"proposalScope/internal/model"
)

// Client wraps go-ethereum RPC and provides trace helpers. The debug
// namespace is only exposed by archive or dev nodes, so trace calls
// fail against most public endpoints.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client

	mu      sync.RWMutex
	chainID *big.Int
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// ChainID returns the chain id, caching the first successful result.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	c.mu.RLock()
	id := c.chainID
	c.mu.RUnlock()
	if id != nil {
		return id, nil
	}

	id, err := c.ethClient.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.chainID = id
	c.mu.Unlock()

	return id, nil
}

type traceConfig struct {
	Tracer string `json:"tracer"`
}

// TraceTransaction fetches the nested call tree for a mined
// transaction through the debug namespace's callTracer.
func (c *Client) TraceTransaction(ctx context.Context, txHash common.Hash) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.rpcClient.CallContext(ctx, &result, "debug_traceTransaction", txHash, traceConfig{Tracer: "callTracer"})
	if err != nil {
		return nil, fmt.Errorf("trace transaction %s: %w", txHash.Hex(), err)
	}
	return result, nil
}

// TransactionOrigin builds the trace header for a mined transaction,
// recovering the sender from the signature.
func (c *Client) TransactionOrigin(ctx context.Context, txHash common.Hash) (*model.TraceHeader, error) {
	tx, isPending, err := c.ethClient.TransactionByHash(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", txHash.Hex(), err)
	}
	if isPending {
		return nil, fmt.Errorf("transaction %s is still pending", txHash.Hex())
	}

	chainID, err := c.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	from, err := types.Sender(types.LatestSignerForChainID(chainID), tx)
	if err != nil {
		return nil, fmt.Errorf("recover sender: %w", err)
	}

	header := &model.TraceHeader{
		Hash: strings.ToLower(txHash.Hex()),
		From: strings.ToLower(from.Hex()),
	}
	if to := tx.To(); to != nil {
		header.To = strings.ToLower(to.Hex())
	}
	if value := tx.Value(); value != nil && value.Sign() > 0 {
		header.Value = model.Quantity{Int: new(big.Int).Set(value)}
	}
	return header, nil
}

// ParseTxHash validates a transaction hash string.
func ParseTxHash(input string) (common.Hash, error) {
	cleaned := strings.TrimSpace(input)
	data, err := hexutil.Decode(cleaned)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid transaction hash %q: %w", input, err)
	}
	if len(data) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid transaction hash %q: want %d bytes, got %d", input, common.HashLength, len(data))
	}
	return common.BytesToHash(data), nil
}
