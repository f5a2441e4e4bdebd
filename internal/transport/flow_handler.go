// Package transport exposes the flow engine over HTTP JSON.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
	"go.uber.org/zap"
)

const (
	routeGroupedFlows = "GET /v1/flows"
	routeAddressFlows = "GET /v1/addresses/{address}/flows"
	routeHealth       = "GET /healthz"

	maxAddressesPerRequest = 50
)

// FlowHandler serves grouped and per-address flow histories.
type FlowHandler struct {
	service FlowService
	metrics HTTPMetrics
	logger  *zap.Logger
}

func NewFlowHandler(service FlowService, metrics HTTPMetrics, logger *zap.Logger) (*FlowHandler, error) {
	if service == nil {
		return nil, errors.New("flow service is required")
	}
	if metrics == nil {
		return nil, errors.New("http metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlowHandler{service: service, metrics: metrics, logger: logger.Named("flow_handler")}, nil
}

// Register mounts the handler routes on mux.
func (h *FlowHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc(routeGroupedFlows, h.observe(routeGroupedFlows, h.groupedFlows))
	mux.HandleFunc(routeAddressFlows, h.observe(routeAddressFlows, h.addressFlows))
	mux.HandleFunc(routeHealth, h.observe(routeHealth, h.health))
}

func (h *FlowHandler) groupedFlows(w http.ResponseWriter, r *http.Request) int {
	addresses := r.URL.Query()["address"]
	if len(addresses) == 0 {
		return h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "at least one address is required"})
	}
	if len(addresses) > maxAddressesPerRequest {
		return h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "too many addresses"})
	}

	table, err := h.service.GroupedFlows(r.Context(), addresses)
	if err != nil {
		return h.writeError(w, err, zap.Strings("addresses", addresses))
	}
	return h.writeJSON(w, http.StatusOK, NewGroupedFlowsResponse(table))
}

func (h *FlowHandler) addressFlows(w http.ResponseWriter, r *http.Request) int {
	address := r.PathValue("address")
	if address == "" {
		return h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "address is required"})
	}

	history, err := h.service.BuildAddressFlowHistory(r.Context(), address)
	if err != nil {
		return h.writeError(w, err, zap.String("address", address))
	}
	return h.writeJSON(w, http.StatusOK, NewAddressFlowsResponse(history))
}

func (h *FlowHandler) health(w http.ResponseWriter, _ *http.Request) int {
	return h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *FlowHandler) observe(route string, handle func(http.ResponseWriter, *http.Request) int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		code := handle(w, r)
		h.metrics.ObserveRequest(route, code, started)
	}
}

func (h *FlowHandler) writeError(w http.ResponseWriter, err error, fields ...zap.Field) int {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error("flow request failed", append(fields, zap.Error(err))...)
	} else {
		h.logger.Debug("flow request rejected", append(fields, zap.Error(err))...)
	}
	return h.writeJSON(w, code, errorResponse{Error: err.Error()})
}

func (h *FlowHandler) writeJSON(w http.ResponseWriter, code int, body any) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("write response failed", zap.Error(err))
	}
	return code
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, chain.ErrLookupFailure):
		return http.StatusBadRequest
	case errors.Is(err, chain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chain.ErrInconsistentBlocktime):
		return http.StatusConflict
	case errors.Is(err, chain.ErrRPCFailure), errors.Is(err, chain.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
