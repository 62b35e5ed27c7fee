package coach

import (
	"fmt"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

// highConfidenceRule and insufficientDataRule are mutually exclusive by
// construction: one requires at least minUsableSessions, the other fewer.

type highConfidenceRule struct{}

func (highConfidenceRule) evaluate(in ruleInput) *internal.CoachTip {
	if in.state.Confidence < highConfidence || len(in.sessions) < minUsableSessions {
		return nil
	}
	return &internal.CoachTip{
		ID:       "tip-high-confidence",
		Title:    "Pattern locked in",
		Message:  "The schedule estimate has settled on a consistent pattern. Predictions should be reliable now.",
		Severity: internal.TipSuccess,
	}
}

type insufficientDataRule struct{}

func (insufficientDataRule) evaluate(in ruleInput) *internal.CoachTip {
	if len(in.sessions) >= minUsableSessions {
		return nil
	}
	needed := minUsableSessions - len(in.sessions)
	return &internal.CoachTip{
		ID:       "tip-insufficient-data",
		Title:    "Keep logging",
		Message:  fmt.Sprintf("Log %d more sleep sessions and the schedule predictions will sharpen up.", needed),
		Severity: internal.TipInfo,
	}
}
