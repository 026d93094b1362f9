package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAfterInit(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(instructionCounter.WithLabelValues("failed", "AC01"))
	IncrementInstructionOutcome("failed", "AC01")
	assert.Equal(t, before+1, testutil.ToFloat64(instructionCounter.WithLabelValues("failed", "AC01")))

	IncrementPublishFailure()
	assert.GreaterOrEqual(t, testutil.ToFloat64(publishFailureCounter), float64(1))

	ObserveHTTP("POST", "/payment-instructions", 200, 5*time.Millisecond)
	IncrementWorkerRun("idempotency_sweeper", "success")
	IncrementIdempotencyEvent("reserved")
	IncrementLedgerImbalance("NGN")
}

func TestTraceIDFromContext(t *testing.T) {
	assert.Equal(t, "", TraceIDFromContext(context.Background()))
	ctx := ContextWithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", TraceIDFromContext(ctx))
}
