package service

import "fmt"

// Stage is a step of the instruction lifecycle.
type Stage string

const (
	StageReceived     Stage = "RECEIVED"
	StageNormalized   Stage = "NORMALIZED"
	StageParsed       Stage = "PARSED"
	StageSyntaxFailed Stage = "SYNTAX_FAILED"
	StageValidated    Stage = "VALIDATED"
	StageRuleFailed   Stage = "RULE_FAILED"
	StageSettled      Stage = "SETTLED"
)

// RECEIVED may fail directly when there is no instruction text to normalize.
var stageTransitions = map[Stage]map[Stage]struct{}{
	StageReceived: {
		StageNormalized:   {},
		StageSyntaxFailed: {},
	},
	StageNormalized: {
		StageParsed:       {},
		StageSyntaxFailed: {},
	},
	StageParsed: {
		StageValidated:  {},
		StageRuleFailed: {},
	},
	StageValidated: {
		StageSettled: {},
	},
	StageSyntaxFailed: {},
	StageRuleFailed:   {},
	StageSettled:      {},
}

func canAdvance(current, next Stage) bool {
	nextStages, ok := stageTransitions[current]
	if !ok {
		return false
	}
	_, ok = nextStages[next]
	return ok
}

// IsTerminal reports whether no further stage can follow s.
func (s Stage) IsTerminal() bool {
	return len(stageTransitions[s]) == 0
}

type lifecycle struct {
	stage Stage
}

func newLifecycle() *lifecycle {
	return &lifecycle{stage: StageReceived}
}

func (l *lifecycle) advance(next Stage) error {
	if !canAdvance(l.stage, next) {
		return fmt.Errorf("invalid instruction stage transition: %s -> %s", l.stage, next)
	}
	l.stage = next
	return nil
}
