package flags

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "EXPORTER"

// flag and config keys
const (
	Rinkeby     = "rinkeby"
	Output      = "output"
	RpcURL      = "rpc-url"
	FollowProxy = "follow-proxy"
	Debug       = "debug"
	MainnetAPI  = "mainnet-api"
	RinkebyAPI  = "rinkeby-api"
)

const (
	DefaultMainnetAPI     = "https://api.etherscan.io/api"
	DefaultRinkebyAPI     = "https://api-rinkeby.etherscan.io/api"
	DefaultFailStatus     = "0"
	DefaultBaseDir        = "contracts"
	DefaultModulePrefix   = "@"
	DefaultSourceExt      = ".sol"
	DefaultSuccessMessage = "Contracts downloaded successfully!"
)

// Config is built once at startup and passed down the pipeline.
type Config struct {
	MainnetAPI string
	RinkebyAPI string
	Rinkeby    bool

	// FailStatus is the explorer status value that marks a failed request.
	FailStatus string

	// BaseDir is where module paths (ModulePrefix...SourceExt) are rooted.
	BaseDir      string
	ModulePrefix string
	SourceExt    string

	// OutputDir is the root all files are written under; empty means the working directory.
	OutputDir string

	RpcURL      string
	FollowProxy bool
	Debug       bool

	SuccessMessage string
}

func Default() *Config {
	return &Config{
		MainnetAPI:     DefaultMainnetAPI,
		RinkebyAPI:     DefaultRinkebyAPI,
		FailStatus:     DefaultFailStatus,
		BaseDir:        DefaultBaseDir,
		ModulePrefix:   DefaultModulePrefix,
		SourceExt:      DefaultSourceExt,
		OutputDir:      ".",
		SuccessMessage: DefaultSuccessMessage,
	}
}

// APIEndpoint returns the explorer endpoint for the selected network.
func (c *Config) APIEndpoint() string {
	if c.Rinkeby {
		return c.RinkebyAPI
	}
	return c.MainnetAPI
}

// Register adds the exporter flags to fs.
func Register(fs *pflag.FlagSet) {
	fs.BoolP(Rinkeby, "r", false, "query the rinkeby test network explorer")
	fs.StringP(Output, "o", ".", "directory to write contracts to")
	fs.String(RpcURL, "", `optional node url used to check the address holds code, e.g. "http://<hostname>:8545"`)
	fs.Bool(FollowProxy, false, "export the implementation contract when the address is a proxy")
	fs.Bool(Debug, false, "enable debug logging on stderr")
	fs.String(MainnetAPI, DefaultMainnetAPI, "mainnet explorer api endpoint")
	fs.String(RinkebyAPI, DefaultRinkebyAPI, "rinkeby explorer api endpoint")
}

// Load reads a .env file if present, binds fs and the environment into v and builds the Config.
// Precedence is flag, then environment (EXPORTER_*), then .env, then default.
func Load(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	// Load .env file; variables already in the environment win
	_ = godotenv.Load()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, bindErr
	}

	cfg := Default()
	cfg.MainnetAPI = v.GetString(MainnetAPI)
	cfg.RinkebyAPI = v.GetString(RinkebyAPI)
	cfg.Rinkeby = v.GetBool(Rinkeby)
	cfg.OutputDir = v.GetString(Output)
	cfg.RpcURL = v.GetString(RpcURL)
	cfg.FollowProxy = v.GetBool(FollowProxy)
	cfg.Debug = v.GetBool(Debug)

	return cfg, nil
}
