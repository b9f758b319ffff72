package rpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"dfaith/pkg/config"
	"dfaith/pkg/models"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

var CallTimeout = 10 * time.Second

// totalSupply() selector
var totalSupplySelector = []byte{0x18, 0x16, 0x0d, 0xdd}

// SupplyReader reports the D.FAITH supply for the stats panel.
type SupplyReader struct {
	chain config.ChainConfig
}

func NewSupplyReader(chain config.ChainConfig) *SupplyReader {
	return &SupplyReader{chain: chain}
}

// FetchSupply reads totalSupply() on-chain when a token contract is
// configured, trying RPC URLs in order. Without one it reports the static
// supply from config.
func (r *SupplyReader) FetchSupply(ctx context.Context) (models.SupplyData, error) {
	if !r.chain.Enabled() {
		return models.SupplyData{Supply: r.chain.StaticSupply, Source: models.SourceStatic}, nil
	}
	return FetchTotalSupply(ctx, r.chain.RPCURLs, r.chain.TokenAddress, r.chain.Decimals)
}

// FetchTotalSupply returns the token supply scaled by decimals and the RPCs that failed on the way.
func FetchTotalSupply(ctx context.Context, rpcURLs []string, tokenAddress string, decimals int) (models.SupplyData, error) {
	var failed []string
	var lastErr error
	tokenAddr := common.HexToAddress(tokenAddress)

	for _, rpcURL := range rpcURLs {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		callCtx, cancel := context.WithTimeout(ctx, CallTimeout)
		client, err := ethclient.DialContext(callCtx, rpcURL)
		if err != nil {
			cancel()
			failed = append(failed, rpcURL)
			lastErr = err
			continue
		}

		msg := ethereum.CallMsg{To: &tokenAddr, Data: totalSupplySelector}
		result, err := client.CallContract(callCtx, msg, nil)
		client.Close()
		cancel()
		if err != nil {
			failed = append(failed, rpcURL)
			lastErr = err
			continue
		}
		if len(result) == 0 {
			failed = append(failed, rpcURL)
			lastErr = fmt.Errorf("empty totalSupply result from %s", rpcURL)
			continue
		}

		supply := scale(new(big.Int).SetBytes(result), decimals)
		return models.SupplyData{Supply: supply, Source: models.SourceChain, FailedRPCs: failed}, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no RPC URLs configured")
	}
	return models.SupplyData{Source: models.SourceChain, FailedRPCs: failed, Err: lastErr}, lastErr
}

func scale(raw *big.Int, decimals int) float64 {
	f := new(big.Float).SetInt(raw)
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	f.Quo(f, divisor)
	v, _ := f.Float64()
	return v
}

// FetchRPCLatency pings an RPC URL to measure latency.
func FetchRPCLatency(ctx context.Context, rpcURL string) (time.Duration, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	if _, err := client.HeaderByNumber(ctx, nil); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
