// Package notify turns schedule blocks into local-notification requests for
// the delivery collaborator. Planning only — nothing here sends anything.
package notify

import (
	"fmt"
	"time"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

// leadTime is how far before a block's start its notification fires.
const leadTime = 5 * time.Minute

// Request is one planned local notification.
type Request struct {
	BlockID string    `json:"block_id"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	FireAt  time.Time `json:"fire_at"`
}

// Plan maps each upcoming block to a notification request. Blocks whose
// fire time has already passed are skipped; wind-downs are skipped too since
// the sleep block's reminder already covers the lead-in.
func Plan(blocks []internal.ScheduleBlock, now time.Time) []Request {
	var reqs []Request
	for _, b := range blocks {
		if b.Kind == internal.BlockWindDown {
			continue
		}
		fireAt := b.StartTime.Add(-leadTime)
		if !fireAt.After(now) {
			continue
		}
		reqs = append(reqs, Request{
			BlockID: b.ID,
			Title:   title(b.Kind),
			Body:    fmt.Sprintf("Planned %s at %s. %s", b.Kind, b.StartTime.Format("15:04"), b.Rationale),
			FireAt:  fireAt,
		})
	}
	return reqs
}

func title(kind internal.BlockKind) string {
	if kind == internal.BlockBedtime {
		return "Bedtime coming up"
	}
	return "Nap time coming up"
}
