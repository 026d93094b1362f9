package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/ayo6706/payment-instructions/internal/domain"
	"github.com/ayo6706/payment-instructions/internal/models"
	"github.com/ayo6706/payment-instructions/internal/observability"
	"github.com/ayo6706/payment-instructions/internal/service"
	"go.uber.org/zap"
)

// maxBodyBytes bounds a single instruction request.
const maxBodyBytes = 1 << 20

// InstructionProcessor runs one instruction against a caller-supplied snapshot.
type InstructionProcessor interface {
	Process(ctx context.Context, req models.ProcessRequest) (*models.TransactionResponse, error)
}

type InstructionHandler struct {
	svc    InstructionProcessor
	logger *zap.Logger
}

func NewInstructionHandler(svc InstructionProcessor, logger *zap.Logger) *InstructionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructionHandler{svc: svc, logger: logger}
}

type instructionRequest struct {
	Instruction json.RawMessage  `json:"instruction"`
	Accounts    []models.Account `json:"accounts"`
}

// ProcessInstruction handles POST /payment-instructions.
// successful and pending answer 200, failed answers 400, and a processing fault answers
// 500 with the fallback payload.
func (h *InstructionHandler) ProcessInstruction(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("instruction handler panic",
				zap.Any("panic", rec),
				zap.String("trace_id", observability.TraceIDFromContext(r.Context())),
			)
			RespondJSON(w, http.StatusInternalServerError, service.FallbackResponse())
		}
	}()

	resp, err := h.svc.Process(r.Context(), decodeInstructionRequest(r.Body, h.logger))
	if err != nil || resp == nil {
		h.logger.Error("instruction processing failed",
			zap.Error(err),
			zap.String("trace_id", observability.TraceIDFromContext(r.Context())),
		)
		RespondJSON(w, http.StatusInternalServerError, service.FallbackResponse())
		return
	}

	status := http.StatusOK
	if resp.Status == domain.StatusFailed {
		status = http.StatusBadRequest
	}
	RespondJSON(w, status, resp)
}

// decodeInstructionRequest never fails: an unreadable body, or an instruction that is
// not a JSON string, yields a request with a nil Instruction.
func decodeInstructionRequest(body io.Reader, logger *zap.Logger) models.ProcessRequest {
	var raw instructionRequest
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&raw); err != nil {
		logger.Debug("instruction body is not valid JSON", zap.Error(err))
		return models.ProcessRequest{}
	}

	req := models.ProcessRequest{Accounts: raw.Accounts}
	var text string
	if len(raw.Instruction) > 0 && json.Unmarshal(raw.Instruction, &text) == nil && raw.Instruction[0] == '"' {
		req.Instruction = &text
	}
	return req
}
