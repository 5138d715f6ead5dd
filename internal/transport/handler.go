// Package transport exposes the segment forest and the script engine over HTTP and gRPC.
package transport

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/utxonode/internal/blockchain"
	"github.com/goodnatureofminers/utxonode/internal/upgrade"
	"github.com/goodnatureofminers/utxonode/internal/validation"
)

const maxVerifyBodyBytes = 1 << 20

// Handler serves the query API.
type Handler struct {
	chain    Chain
	schedule upgrade.Schedule
	params   *chaincfg.Params
	logger   *zap.Logger
}

// NewHandler returns a Handler reading chain and evaluating scripts under schedule. params
// selects the address encoding of decoded locking scripts.
func NewHandler(chain Chain, schedule upgrade.Schedule, params *chaincfg.Params, logger *zap.Logger) *Handler {
	return &Handler{
		chain:    chain,
		schedule: schedule,
		params:   params,
		logger:   logger.Named("http"),
	}
}

// Register adds the API routes to mux.
func (h *Handler) Register(mux *gwruntime.ServeMux) error {
	routes := []struct {
		method  string
		pattern string
		handler gwruntime.HandlerFunc
	}{
		{http.MethodGet, "/v1/head", h.head},
		{http.MethodGet, "/v1/blocks/{hash}", h.block},
		{http.MethodGet, "/v1/segments/{id}", h.segment},
		{http.MethodGet, "/v1/segments/{id}/head", h.segmentHead},
		{http.MethodGet, "/v1/segments/{a}/connected/{b}", h.connected},
		{http.MethodPost, "/v1/script/verify", h.verify},
	}
	for _, r := range routes {
		if err := mux.HandlePath(r.method, r.pattern, r.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", r.method, r.pattern, err)
		}
	}
	return nil
}

func (h *Handler) head(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	b, err := h.chain.HeadBlock()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newBlockResponse(b))
}

func (h *Handler) block(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	hash, err := chainhash.NewHashFromStr(params["hash"])
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid block hash: %v", err)})
		return
	}
	b, err := h.chain.BlockByHash(*hash)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newBlockResponse(b))
}

func (h *Handler) segment(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	id, ok := h.segmentID(w, params["id"])
	if !ok {
		return
	}
	s, err := h.chain.Segment(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newSegmentResponse(s))
}

func (h *Handler) segmentHead(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	id, ok := h.segmentID(w, params["id"])
	if !ok {
		return
	}
	b, err := h.chain.HeadBlockOfSegment(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newBlockResponse(b))
}

func (h *Handler) connected(w http.ResponseWriter, r *http.Request, params map[string]string) {
	a, ok := h.segmentID(w, params["a"])
	if !ok {
		return
	}
	b, ok := h.segmentID(w, params["b"])
	if !ok {
		return
	}
	rel, err := blockchain.ParseRelationship(r.URL.Query().Get("relationship"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	connected, err := h.chain.AreSegmentsConnected(a, b, rel)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, connectedResponse{
		A:            uint64(a),
		B:            uint64(b),
		Relationship: rel.String(),
		Connected:    connected,
	})
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req verifyRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxVerifyBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("decode request: %v", err)})
		return
	}

	check, err := req.scriptCheck()
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	res, err := validation.CheckScript(check, h.schedule)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	resp := newVerifyResponse(res, req.Amount)
	resp.LockingScript = decodeLockingScript(check.Locking, h.params)
	h.writeJSON(w, http.StatusOK, resp)
}

func (req verifyRequest) scriptCheck() (validation.ScriptCheck, error) {
	locking, err := hex.DecodeString(req.LockingScript)
	if err != nil {
		return validation.ScriptCheck{}, fmt.Errorf("locking_script: %w", err)
	}
	check := validation.ScriptCheck{
		Locking:    locking,
		InputIndex: req.InputIndex,
		Amount:     req.Amount,
		Point:      upgrade.Point{Height: req.Height, MedianTime: req.MedianTime},
	}
	if req.UnlockingScript != "" {
		if check.Unlocking, err = hex.DecodeString(req.UnlockingScript); err != nil {
			return validation.ScriptCheck{}, fmt.Errorf("unlocking_script: %w", err)
		}
	}
	if req.Transaction != "" {
		raw, err := hex.DecodeString(req.Transaction)
		if err != nil {
			return validation.ScriptCheck{}, fmt.Errorf("transaction: %w", err)
		}
		tx := wire.NewMsgTx(wire.TxVersion)
		if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
			return validation.ScriptCheck{}, fmt.Errorf("transaction: %w", err)
		}
		check.Tx = tx
	} else if check.Unlocking == nil {
		return validation.ScriptCheck{}, errors.New("unlocking_script or transaction is required")
	}
	return check, nil
}

func (h *Handler) segmentID(w http.ResponseWriter, raw string) (blockchain.SegmentID, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid segment id %q", raw)})
		return 0, false
	}
	return blockchain.SegmentID(id), true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, blockchain.ErrBlockNotFound), errors.Is(err, blockchain.ErrSegmentNotFound):
		status = http.StatusNotFound
	default:
		h.logger.Error("request failed", zap.Error(err))
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}

func bitsString(bits uint32) string {
	return fmt.Sprintf("%08x", bits)
}
