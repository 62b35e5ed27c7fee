package coach

import (
	"fmt"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

// overtiredRule warns when the gap between the two most recent sessions
// overran the age bracket's maximum wake window by more than 20%.
type overtiredRule struct{}

func (overtiredRule) evaluate(in ruleInput) *internal.CoachTip {
	if len(in.sessions) < 2 {
		return nil
	}
	latest := in.sessions[0]
	previous := in.sessions[1]
	gap := latest.StartTime.Sub(*previous.EndTime).Minutes()
	threshold := overtiredFactor * float64(in.bracket.WakeWindowMax)
	if gap <= threshold {
		return nil
	}
	return &internal.CoachTip{
		ID:       "tip-long-wake-window",
		Title:    "Wake window ran long",
		Message:  fmt.Sprintf("The last wake window lasted %.0f minutes, past the %d minute maximum for this age. Overtiredness can make the next sleep harder to settle.", gap, in.bracket.WakeWindowMax),
		Severity: internal.TipWarning,

		RelatedSessionIDs: []string{latest.ID, previous.ID},
	}
}
