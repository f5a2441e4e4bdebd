package bitcoin

import (
	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"github.com/lightningnetwork/lnd/fn/v2"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCClient is the subset of the btcd rpc client used by the bitcoin adapters.
	RPCClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
		SearchRawTransactionsVerbose(address btcutil.Address, skip, count int, includePrevOut, reverse bool, filterAddrs []string) ([]*btcjson.SearchRawTransactionsResult, error)
	}

	// ScriptDecoder resolves the single address an output pays to.
	ScriptDecoder interface {
		decodeAddress(spk btcjson.ScriptPubKeyResult) (fn.Option[string], error)
	}

	// TransactionConverter turns a verbose rpc transaction into the domain transaction.
	TransactionConverter interface {
		Convert(tx btcjson.TxRawResult) (model.Transaction, error)
	}
)
