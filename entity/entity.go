package entity

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// EtherscanResponse represents the response structure from Etherscan API
type EtherscanResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// SourceCode represents the structure of contract source code information
type SourceCode struct {
	SourceCode           string `json:"SourceCode"`
	ABI                  string `json:"ABI"`
	ContractName         string `json:"ContractName"`
	CompilerVersion      string `json:"CompilerVersion"`
	OptimizationUsed     string `json:"OptimizationUsed"`
	Runs                 string `json:"Runs"`
	ConstructorArguments string `json:"ConstructorArguments"`
	EVMVersion           string `json:"EVMVersion"`
	Library              string `json:"Library"`
	LicenseType          string `json:"LicenseType"`
	Proxy                string `json:"Proxy"`
	Implementation       string `json:"Implementation"`
	SwarmSource          string `json:"SwarmSource"`
}

// IsProxy reports whether the explorer flagged the contract as a proxy with a known implementation.
func (s *SourceCode) IsProxy() bool {
	return s.Proxy == "1" && s.Implementation != ""
}

// SourceFile is a single entry of a compiler standard-json "sources" object
type SourceFile struct {
	Content string `json:"content"`
}

// Manifest maps a virtual source path to its file, in the order the explorer listed them
type Manifest = *orderedmap.OrderedMap[string, SourceFile]

func NewManifest() Manifest {
	return orderedmap.New[string, SourceFile]()
}

// WrittenFile is a source file persisted to disk
type WrittenFile struct {
	Path    string
	Content string
}

// ExplorerError is returned when the explorer answers with its failure status.
// The message is the explorer's result text, unmodified.
type ExplorerError struct {
	Status  string
	Message string
}

func (e *ExplorerError) Error() string {
	return e.Message
}
