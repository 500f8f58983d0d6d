package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/huahuayu/etherscan-code-exporter/entity"
	"github.com/huahuayu/etherscan-code-exporter/flags"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrNoResult = errors.New("no result")

// QueryURL builds the getsourcecode request for address on the configured network.
// The address is used as given.
func QueryURL(cfg *flags.Config, address string) string {
	return fmt.Sprintf("%s?module=contract&action=getsourcecode&address=%s", cfg.APIEndpoint(), url.QueryEscape(address))
}

type Client struct {
	cfg    *flags.Config
	client *http.Client
	logger *zap.Logger
}

// NewClient returns an explorer client. A nil httpClient falls back to http.DefaultClient.
func NewClient(cfg *flags.Config, httpClient *http.Client, l *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, client: httpClient, logger: l}
}

// FetchSourceCode queries the explorer for the verified source of address.
// When the explorer reports failure the returned error is an *entity.ExplorerError.
func (c *Client) FetchSourceCode(ctx context.Context, address string) (*entity.SourceCode, error) {
	api := QueryURL(c.cfg, address)
	c.logger.Debug("querying explorer", zap.String("url", api))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	response := &entity.EtherscanResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, errors.Wrapf(err, "failed to parse response (http status %d)", resp.StatusCode)
	}

	if response.Status == c.cfg.FailStatus {
		return nil, &entity.ExplorerError{Status: response.Status, Message: resultMessage(response)}
	}

	var result []entity.SourceCode
	if err := json.Unmarshal(response.Result, &result); err != nil {
		return nil, errors.Wrap(err, "unknown result "+string(response.Result))
	}
	if len(result) == 0 {
		return nil, ErrNoResult
	}

	code := result[0]
	c.logger.Debug("received contract metadata",
		zap.String("contractName", code.ContractName),
		zap.String("compilerVersion", code.CompilerVersion),
		zap.String("optimizationUsed", code.OptimizationUsed),
		zap.String("runs", code.Runs),
		zap.String("evmVersion", code.EVMVersion),
		zap.String("licenseType", code.LicenseType),
		zap.String("library", code.Library),
		zap.String("proxy", code.Proxy),
		zap.Int("sourceLength", len(code.SourceCode)),
	)
	return &code, nil
}

// resultMessage returns the failure text. Result is normally a JSON string;
// anything else is returned as raw JSON.
func resultMessage(r *entity.EtherscanResponse) string {
	var msg string
	if err := json.Unmarshal(r.Result, &msg); err == nil {
		return msg
	}
	if len(r.Result) == 0 {
		return r.Message
	}
	return string(r.Result)
}
