package service

import (
	"context"
	"time"

	"github.com/ayo6706/payment-instructions/internal/domain"
	"github.com/ayo6706/payment-instructions/internal/events"
	"github.com/ayo6706/payment-instructions/internal/instruction"
	"github.com/ayo6706/payment-instructions/internal/models"
	"github.com/ayo6706/payment-instructions/internal/observability"
	"go.uber.org/zap"
)

// InstructionService runs payment instructions through the pipeline:
// normalize, parse, validate, settle.
type InstructionService struct {
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewInstructionService(publisher events.Publisher, logger *zap.Logger) *InstructionService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructionService{
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the clock used to decide whether a dated instruction is due.
func (s *InstructionService) WithClock(now func() time.Time) *InstructionService {
	s.now = now
	return s
}

// Process runs one instruction against a caller-owned account snapshot.
// Every outcome, including internal faults, is reported as a response; the error is
// non-nil only when ctx is already done. req.Accounts is never modified.
func (s *InstructionService) Process(ctx context.Context, req models.ProcessRequest) (*models.TransactionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, stage := s.run(req)

	observability.IncrementInstructionOutcome(resp.Status, resp.StatusCode)
	s.logger.Info("instruction processed",
		zap.String("trace_id", observability.TraceIDFromContext(ctx)),
		zap.String("stage", string(stage)),
		zap.String("status", resp.Status),
		zap.String("status_code", resp.StatusCode),
		zap.Stringp("type", resp.Type),
	)

	event := events.FromResponse(resp, string(stage), observability.TraceIDFromContext(ctx))
	if err := s.publisher.PublishOutcome(ctx, event); err != nil {
		observability.IncrementPublishFailure()
		s.logger.Warn("publish instruction event failed", zap.Error(err), zap.String("event_id", event.ID))
	}

	return resp, nil
}

func (s *InstructionService) run(req models.ProcessRequest) (resp *models.TransactionResponse, stage Stage) {
	lc := newLifecycle()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("instruction pipeline panic", zap.Any("panic", r), zap.String("stage", string(lc.stage)))
			resp, stage = FallbackResponse(), lc.stage
		}
	}()

	if req.Instruction == nil {
		return s.fail(lc, StageSyntaxFailed, FallbackResponse())
	}

	tokens := instruction.Normalize(*req.Instruction)
	if err := lc.advance(StageNormalized); err != nil {
		return s.internalFailure(lc, err)
	}

	fields, err := instruction.Parse(tokens)
	if err != nil {
		return s.fail(lc, StageSyntaxFailed, parseFailureResponse(domain.AsStatusError(err)))
	}
	if err := lc.advance(StageParsed); err != nil {
		return s.internalFailure(lc, err)
	}

	validated, err := Validate(fields, req.Accounts)
	if err != nil {
		return s.fail(lc, StageRuleFailed, validationFailureResponse(fields, req.Accounts, domain.AsStatusError(err)))
	}
	if err := lc.advance(StageValidated); err != nil {
		return s.internalFailure(lc, err)
	}

	settlement, err := Settle(validated, req.Accounts, s.now())
	if err != nil {
		return s.internalFailure(lc, err)
	}
	if settlement.StatusCode == domain.CodeExecuted {
		if err := checkConservation(settlement.Accounts); err != nil {
			return s.internalFailure(lc, err)
		}
	}
	if err := lc.advance(StageSettled); err != nil {
		return s.internalFailure(lc, err)
	}

	return settledResponse(validated, settlement), lc.stage
}

func (s *InstructionService) fail(lc *lifecycle, stage Stage, resp *models.TransactionResponse) (*models.TransactionResponse, Stage) {
	if err := lc.advance(stage); err != nil {
		return s.internalFailure(lc, err)
	}
	return resp, lc.stage
}

func (s *InstructionService) internalFailure(lc *lifecycle, err error) (*models.TransactionResponse, Stage) {
	s.logger.Error("instruction pipeline failed", zap.Error(err), zap.String("stage", string(lc.stage)))
	return FallbackResponse(), lc.stage
}
