package exporter

import (
	"context"
	"net/http"

	"github.com/huahuayu/etherscan-code-exporter/api"
	"github.com/huahuayu/etherscan-code-exporter/entity"
	"github.com/huahuayu/etherscan-code-exporter/flags"
	"github.com/huahuayu/etherscan-code-exporter/rpc"
	"github.com/huahuayu/etherscan-code-exporter/source"
	"github.com/huahuayu/etherscan-code-exporter/writer"
	"go.uber.org/zap"
)

// Exporter runs the query, unwrap and write steps for one contract.
type Exporter struct {
	cfg        *flags.Config
	httpClient *http.Client
	client     *api.Client
	writer     *writer.Writer
	logger     *zap.Logger
}

func New(cfg *flags.Config, httpClient *http.Client, l *zap.Logger) (*Exporter, error) {
	w, err := writer.New(cfg, l)
	if err != nil {
		return nil, err
	}
	return &Exporter{
		cfg:        cfg,
		httpClient: httpClient,
		client:     api.NewClient(cfg, httpClient, l),
		writer:     w,
		logger:     l,
	}, nil
}

// Export downloads the verified source of address and writes it to disk.
// address is expected to be validated already.
func (e *Exporter) Export(ctx context.Context, address string) ([]entity.WrittenFile, error) {
	if e.cfg.RpcURL != "" {
		if err := rpc.EnsureContract(ctx, e.cfg.RpcURL, e.httpClient, address); err != nil {
			return nil, err
		}
	}

	code, err := e.client.FetchSourceCode(ctx, address)
	if err != nil {
		return nil, err
	}

	if e.cfg.FollowProxy && code.IsProxy() {
		e.logger.Info("following proxy implementation",
			zap.String("proxy", address),
			zap.String("implementation", code.Implementation),
		)
		code, err = e.client.FetchSourceCode(ctx, code.Implementation)
		if err != nil {
			return nil, err
		}
	}

	manifest, err := source.BuildManifest(code, e.cfg.SourceExt)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("built manifest", zap.String("contractName", code.ContractName), zap.Int("entries", manifest.Len()))

	return e.writer.Write(manifest)
}
