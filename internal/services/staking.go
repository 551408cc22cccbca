package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"strings"
	"time"
)

// StakeChecker looks up how much a wallet has staked. The production
// implementation goes over JSON-RPC to a chain node.
type StakeChecker interface {
	StakedBalance(ctx context.Context, address string) (*big.Int, error)
}

// StakingService answers "is this wallet eligible", racing the chain lookup
// against a fixed timeout. Chain nodes stall often enough that a timeout is
// treated as a plain negative answer, never retried.
type StakingService struct {
	checker StakeChecker
	timeout time.Duration
}

func NewStakingService(checker StakeChecker) *StakingService {
	return &StakingService{
		checker: checker,
		timeout: 5 * time.Second,
	}
}

var stakingService *StakingService

// GetStakingService returns the singleton backed by the JSON-RPC checker,
// or nil when no staking contract is configured for this deployment.
func GetStakingService() *StakingService {
	if stakingService == nil {
		checker := NewRPCStakeChecker()
		if !checker.Configured() {
			return nil
		}
		stakingService = NewStakingService(checker)
	}
	return stakingService
}

// IsEligible reports whether the address holds any staked balance. Errors
// and timeouts both come back as false.
func (s *StakingService) IsEligible(ctx context.Context, address string) bool {
	if address == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type answer struct {
		balance *big.Int
		err     error
	}
	ch := make(chan answer, 1)
	go func() {
		balance, err := s.checker.StakedBalance(ctx, address)
		ch <- answer{balance, err}
	}()

	select {
	case <-ctx.Done():
		return false
	case a := <-ch:
		return a.err == nil && a.balance != nil && a.balance.Sign() > 0
	}
}

// RPCStakeChecker queries an ERC-20 style staking contract's balanceOf over
// JSON-RPC eth_call.
type RPCStakeChecker struct {
	client   *http.Client
	rpcURL   string
	contract string
}

// balanceOf(address) selector.
const balanceOfSelector = "0x70a08231"

func NewRPCStakeChecker() *RPCStakeChecker {
	return &RPCStakeChecker{
		client:   &http.Client{Timeout: 30 * time.Second},
		rpcURL:   os.Getenv("ETH_RPC_URL"),
		contract: os.Getenv("STAKING_CONTRACT"),
	}
}

// Configured reports whether both the node URL and the contract address are
// set.
func (c *RPCStakeChecker) Configured() bool {
	return c.rpcURL != "" && c.contract != ""
}

func (c *RPCStakeChecker) StakedBalance(ctx context.Context, address string) (*big.Int, error) {
	if c.rpcURL == "" || c.contract == "" {
		return nil, fmt.Errorf("staking lookup not configured")
	}

	addr := strings.TrimPrefix(strings.ToLower(address), "0x")
	if len(addr) != 40 {
		return nil, fmt.Errorf("malformed address %q", address)
	}
	callData := balanceOfSelector + strings.Repeat("0", 24) + addr

	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "eth_call",
		"params": []interface{}{
			map[string]string{"to": c.contract, "data": callData},
			"latest",
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rpcResp struct {
		Result string `json:"result"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, err
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("eth_call: %s", rpcResp.Error.Message)
	}

	balance, ok := new(big.Int).SetString(strings.TrimPrefix(rpcResp.Result, "0x"), 16)
	if !ok {
		return nil, fmt.Errorf("malformed eth_call result %q", rpcResp.Result)
	}
	return balance, nil
}
