package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleTransitions(t *testing.T) {
	cases := []struct {
		name string
		path []Stage
		ok   bool
	}{
		{name: "settled", path: []Stage{StageNormalized, StageParsed, StageValidated, StageSettled}, ok: true},
		{name: "syntax_failed", path: []Stage{StageNormalized, StageSyntaxFailed}, ok: true},
		{name: "missing_instruction", path: []Stage{StageSyntaxFailed}, ok: true},
		{name: "rule_failed", path: []Stage{StageNormalized, StageParsed, StageRuleFailed}, ok: true},
		{name: "skip_parse", path: []Stage{StageNormalized, StageValidated}, ok: false},
		{name: "leave_terminal", path: []Stage{StageNormalized, StageSyntaxFailed, StageParsed}, ok: false},
		{name: "settle_unvalidated", path: []Stage{StageNormalized, StageParsed, StageSettled}, ok: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			lc := newLifecycle()
			var err error
			for _, next := range tc.path {
				if err = lc.advance(next); err != nil {
					break
				}
			}
			if tc.ok {
				require.NoError(t, err)
				assert.True(t, lc.stage.IsTerminal())
				return
			}
			require.Error(t, err)
		})
	}
}
