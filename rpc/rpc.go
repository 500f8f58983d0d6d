package rpc

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

var ErrNotContract = errors.New("address is not a contract")

// CheckIfContract asks the node at rpcURL for the code stored at address.
// A nil httpClient uses the go-ethereum default transport.
func CheckIfContract(ctx context.Context, rpcURL string, httpClient *http.Client, address string) (bool, error) {
	opts := []gethrpc.ClientOption{}
	if httpClient != nil {
		opts = append(opts, gethrpc.WithHTTPClient(httpClient))
	}

	rpcClient, err := gethrpc.DialOptions(ctx, rpcURL, opts...)
	if err != nil {
		return false, errors.Wrap(err, "failed to dial rpc")
	}
	client := ethclient.NewClient(rpcClient)
	defer client.Close()

	code, err := client.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return false, errors.Wrap(err, "eth_getCode failed")
	}

	return len(code) > 0, nil
}

// EnsureContract returns ErrNotContract when no code is deployed at address.
func EnsureContract(ctx context.Context, rpcURL string, httpClient *http.Client, address string) error {
	isContract, err := CheckIfContract(ctx, rpcURL, httpClient, address)
	if err != nil {
		return err
	}
	if !isContract {
		return errors.Wrapf(ErrNotContract, "%s", address)
	}
	return nil
}
