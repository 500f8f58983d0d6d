package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/huahuayu/etherscan-code-exporter/address"
	"github.com/huahuayu/etherscan-code-exporter/exporter"
	"github.com/huahuayu/etherscan-code-exporter/flags"
	"github.com/huahuayu/etherscan-code-exporter/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewRootCmd builds the CLI. httpClient is used for every outbound request; nil means http.DefaultClient.
func NewRootCmd(version string, httpClient *http.Client) *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "etherscan-code-exporter <contract-address>",
		Short: "Download verified contract sources from Etherscan",
		Long: `Download the verified source code of a contract from Etherscan and write it to disk.

Multi-file projects are written with their original layout. Dependencies
imported through a package path (e.g. @openzeppelin/...) are placed under
contracts/. Existing files are overwritten.

EXAMPLES:
  etherscan-code-exporter 0xdAC17F958D2ee523a2206206994597C13D831ec7

  # Rinkeby explorer
  etherscan-code-exporter 0x... --rinkeby

  # Write somewhere other than the working directory
  etherscan-code-exporter 0x... -o ./vendor
`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Load(v, cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd, cfg, httpClient, args[0])
		},
	}

	flags.Register(rootCmd.Flags())

	return rootCmd
}

func run(cmd *cobra.Command, cfg *flags.Config, httpClient *http.Client, rawAddress string) error {
	contractAddr, err := address.Normalize(rawAddress)
	if err != nil {
		return err
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
	if err != nil {
		return err
	}
	defer l.Sync() //nolint:errcheck

	exp, err := exporter.New(cfg, httpClient, l)
	if err != nil {
		return err
	}

	written, err := exp.Export(cmd.Context(), contractAddr)
	if err != nil {
		return err
	}
	l.Info("export finished", zap.String("address", contractAddr), zap.Int("files", len(written)))

	fmt.Fprintln(cmd.OutOrStdout(), cfg.SuccessMessage)
	return nil
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute(version string) int {
	return executeCmd(NewRootCmd(version, nil), os.Args[1:], os.Stdout, os.Stderr)
}

func executeCmd(rootCmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
