package bitcoin

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// scriptDecoder extracts the receiving address from ScriptPubKey results.
type scriptDecoder struct {
	params *chaincfg.Params
}

// NewScriptDecoder initializes a decoder for extracting addresses using params of the provided network.
func NewScriptDecoder(network model.Network) (ScriptDecoder, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &scriptDecoder{params: params}, nil
}

// decodeAddress prefers the node supplied address, then the legacy addresses list, then the raw
// script. Outputs paying to zero or several addresses have no address.
func (d *scriptDecoder) decodeAddress(spk btcjson.ScriptPubKeyResult) (fn.Option[string], error) {
	if spk.Address != "" {
		return fn.Some(spk.Address), nil
	}
	if len(spk.Addresses) == 1 && spk.Addresses[0] != "" {
		return fn.Some(spk.Addresses[0]), nil
	}
	if len(spk.Addresses) > 1 || spk.Hex == "" {
		return fn.None[string](), nil
	}

	scriptBytes, err := hex.DecodeString(spk.Hex)
	if err != nil {
		return fn.None[string](), fmt.Errorf("%w: script hex: %w", chain.ErrMalformedResponse, err)
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(scriptBytes, d.params)
	if err != nil || len(addrs) != 1 {
		// nonstandard scripts
		return fn.None[string](), nil
	}
	return fn.Some(addrs[0].EncodeAddress()), nil
}

func chainParamsForNetwork(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
