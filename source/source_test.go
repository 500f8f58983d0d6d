package source

import (
	"testing"

	"github.com/huahuayu/etherscan-code-exporter/entity"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multiFile = `{"language":"Solidity","sources":{"contracts/Token.sol":{"content":"import \"@openzeppelin/contracts/token/ERC20/ERC20.sol\";"},"@openzeppelin/contracts/token/ERC20/ERC20.sol":{"content":"contract ERC20 {}"},"README.md":{"content":"docs"}},"settings":{"optimizer":{"enabled":true,"runs":200}}}`

func keys(m entity.Manifest) []string {
	out := []string{}
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func Test_Unwrap(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		b, err := Unwrap(multiFile)
		require.NoError(t, err)
		require.NotNil(t, b.Sources)
		assert.Equal(t, 3, b.Sources.Len())
	})
	t.Run("double wrapped json recovers the same sources", func(t *testing.T) {
		plain, err := Unwrap(multiFile)
		require.NoError(t, err)

		wrapped, err := Unwrap("{" + multiFile + "}")
		require.NoError(t, err)
		require.NotNil(t, wrapped.Sources)

		assert.Equal(t, keys(plain.Sources), keys(wrapped.Sources))
		for pair := plain.Sources.Oldest(); pair != nil; pair = pair.Next() {
			got, ok := wrapped.Sources.Get(pair.Key)
			require.True(t, ok)
			assert.Equal(t, pair.Value, got)
		}
	})
	t.Run("surrounding whitespace before unwrapping", func(t *testing.T) {
		b, err := Unwrap("\n {" + multiFile + "} \r\n")
		require.NoError(t, err)
		assert.Equal(t, 3, b.Sources.Len())
	})
	t.Run("json without sources", func(t *testing.T) {
		b, err := Unwrap(`{"language":"Solidity"}`)
		require.NoError(t, err)
		assert.Nil(t, b.Sources)
	})
	t.Run("sources key is case sensitive", func(t *testing.T) {
		b, err := Unwrap(`{"Sources":{"A.sol":{"content":"contract A {}"}}}`)
		require.NoError(t, err)
		assert.Nil(t, b.Sources)

		m, err := BuildManifest(&entity.SourceCode{SourceCode: `{"Sources":{"A.sol":{"content":"contract A {}"}}}`, ContractName: "A"}, ".sol")
		require.NoError(t, err)
		assert.Equal(t, []string{"A.sol"}, keys(m))
		f, _ := m.Get("A.sol")
		assert.Equal(t, `{"Sources":{"A.sol":{"content":"contract A {}"}}}`, f.Content)
	})
	t.Run("null sources", func(t *testing.T) {
		b, err := Unwrap(`{"sources":null}`)
		require.NoError(t, err)
		assert.Nil(t, b.Sources)
	})
	t.Run("solidity source is not json", func(t *testing.T) {
		_, err := Unwrap("pragma solidity ^0.8.0;\ncontract Foo {}")
		assert.Error(t, err)
	})
	t.Run("empty string", func(t *testing.T) {
		_, err := Unwrap("")
		assert.Error(t, err)
	})
}

func Test_BuildManifest(t *testing.T) {
	t.Run("sources become the manifest in explorer order", func(t *testing.T) {
		m, err := BuildManifest(&entity.SourceCode{SourceCode: multiFile, ContractName: "Token"}, ".sol")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"contracts/Token.sol",
			"@openzeppelin/contracts/token/ERC20/ERC20.sol",
			"README.md",
		}, keys(m))

		f, ok := m.Get("@openzeppelin/contracts/token/ERC20/ERC20.sol")
		require.True(t, ok)
		assert.Equal(t, "contract ERC20 {}", f.Content)
	})
	t.Run("single file contract", func(t *testing.T) {
		raw := "pragma solidity ^0.4.24;\ncontract Foo {}"
		m, err := BuildManifest(&entity.SourceCode{SourceCode: raw, ContractName: "Foo"}, ".sol")
		require.NoError(t, err)
		assert.Equal(t, []string{"Foo.sol"}, keys(m))

		f, _ := m.Get("Foo.sol")
		assert.Equal(t, raw, f.Content)
	})
	t.Run("json without sources falls back to single file", func(t *testing.T) {
		raw := `{"language":"Vyper"}`
		m, err := BuildManifest(&entity.SourceCode{SourceCode: raw, ContractName: "Vault"}, ".sol")
		require.NoError(t, err)

		f, ok := m.Get("Vault.sol")
		require.True(t, ok)
		assert.Equal(t, raw, f.Content)
	})
	t.Run("sources win even without a contract name", func(t *testing.T) {
		m, err := BuildManifest(&entity.SourceCode{SourceCode: `{"sources":{"Foo.sol":{"content":"contract Foo{}"}}}`}, ".sol")
		require.NoError(t, err)
		assert.Equal(t, []string{"Foo.sol"}, keys(m))
	})
	t.Run("unverified contract", func(t *testing.T) {
		_, err := BuildManifest(&entity.SourceCode{SourceCode: "", ContractName: ""}, ".sol")
		assert.True(t, errors.Is(err, ErrUnparseableSource))
	})
	t.Run("unparseable source without a contract name", func(t *testing.T) {
		_, err := BuildManifest(&entity.SourceCode{SourceCode: "contract Foo {}"}, ".sol")
		assert.True(t, errors.Is(err, ErrUnparseableSource))
	})
}
