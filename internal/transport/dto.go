package transport

import "github.com/goodnatureofminers/addressflow/internal/utxo/model"

const (
	flowTypeReceived = "received"
	flowTypeSent     = "sent"
)

// FlowDTO is the wire form of one flow. Address and Value describe the output the flow moves.
type FlowDTO struct {
	Type            string `json:"type"`
	Index           uint32 `json:"index"`
	SourceTxID      string `json:"source_txid"`
	DestinationTxID string `json:"destination_txid,omitempty"`
	Address         string `json:"address,omitempty"`
	Value           uint64 `json:"value"`
}

// TransactionDTO groups the flows of one transaction.
type TransactionDTO struct {
	TxID      string    `json:"txid"`
	BlockTime int64     `json:"blocktime"`
	Flows     []FlowDTO `json:"flows"`
}

// GroupedFlowsResponse lists grouped flows in (blocktime, txid) order.
type GroupedFlowsResponse struct {
	Transactions []TransactionDTO `json:"transactions"`
}

// AddressFlowsResponse is the flow history of a single address.
type AddressFlowsResponse struct {
	Address      string           `json:"address"`
	Transactions []TransactionDTO `json:"transactions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newFlowDTO(flow model.Flow) FlowDTO {
	switch f := flow.(type) {
	case model.ReceivedFlow:
		dto := FlowDTO{Type: flowTypeReceived, Index: f.Index, SourceTxID: f.Transaction.TxID}
		if out, ok := f.Transaction.OutputAt(f.Index); ok {
			dto.Address = out.Address.UnwrapOr("")
			dto.Value = out.Value
		}
		return dto
	case model.SentFlow:
		dto := FlowDTO{
			Type:            flowTypeSent,
			Index:           f.Index,
			SourceTxID:      f.Source.TxID,
			DestinationTxID: f.Destination.TxID,
		}
		if out, ok := f.Source.OutputAt(f.Index); ok {
			dto.Address = out.Address.UnwrapOr("")
			dto.Value = out.Value
		}
		return dto
	default:
		return FlowDTO{}
	}
}

func newFlowDTOs(flows []model.Flow) []FlowDTO {
	dtos := make([]FlowDTO, 0, len(flows))
	for _, flow := range flows {
		dtos = append(dtos, newFlowDTO(flow))
	}
	return dtos
}

// NewGroupedFlowsResponse maps a grouped flow table to its wire form.
func NewGroupedFlowsResponse(table model.GroupedFlowTable) GroupedFlowsResponse {
	resp := GroupedFlowsResponse{Transactions: make([]TransactionDTO, 0, len(table))}
	for _, key := range table.Keys() {
		resp.Transactions = append(resp.Transactions, TransactionDTO{
			TxID:      key.TxID,
			BlockTime: key.BlockTime,
			Flows:     newFlowDTOs(table[key]),
		})
	}
	return resp
}

// NewAddressFlowsResponse maps one address history to its wire form.
func NewAddressFlowsResponse(history model.AddressFlowHistory) AddressFlowsResponse {
	resp := AddressFlowsResponse{
		Address:      history.Address,
		Transactions: make([]TransactionDTO, 0, len(history.Transactions)),
	}
	for _, entry := range history.Transactions {
		resp.Transactions = append(resp.Transactions, TransactionDTO{
			TxID:      entry.Transaction.TxID,
			BlockTime: entry.Transaction.BlockTime,
			Flows:     newFlowDTOs(entry.Flows),
		})
	}
	return resp
}
