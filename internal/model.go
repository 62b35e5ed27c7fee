package internal

import "time"

// SessionSource records how a sleep session entered the system.
type SessionSource string

const (
	SourceManual SessionSource = "manual"
	SourceTimer  SessionSource = "timer"
)

// User is a caregiver account holding profiles.
type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// BabyProfile identifies a child. Birth date must not be in the future;
// the core only ever derives age-in-months from it.
type BabyProfile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
}

// AgeMonths returns the profile's age in whole months at the given instant.
func (p *BabyProfile) AgeMonths(now time.Time) int {
	months := int(now.Sub(p.BirthDate).Hours() / (24 * 30.44))
	if months < 0 {
		return 0
	}
	return months
}

// SleepSession is one recorded sleep. EndTime is nil while the child is
// still asleep (open session). Deleted sessions stay on record but are
// excluded from every computation.
type SleepSession struct {
	ID        string        `json:"id"`
	ProfileID string        `json:"profile_id,omitempty"`
	StartTime time.Time     `json:"start_time"`
	EndTime   *time.Time    `json:"end_time,omitempty"`
	Quality   int           `json:"quality,omitempty"` // 1–5 scale, 0 = unrated
	Note      string        `json:"note,omitempty"`
	Source    SessionSource `json:"source"`
	Deleted   bool          `json:"deleted,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DurationMinutes returns the session length in minutes, or 0 for an open session.
func (s *SleepSession) DurationMinutes() float64 {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Minutes()
}

// LearnerState is the smoothed sleep-pattern estimate for one profile.
// It is rebuilt from the full session history on every pass, never patched
// incrementally, so edits and deletes can never leave it stale.
type LearnerState struct {
	SchemaVersion  int       `json:"schema_version"`
	NapLengthMin   int       `json:"ewma_nap_length_min"`
	WakeWindowMin  int       `json:"ewma_wake_window_min"`
	Confidence     float64   `json:"confidence"`
	LastComputedAt time.Time `json:"last_computed_at"`
}

// BlockKind classifies a schedule block.
type BlockKind string

const (
	BlockNap      BlockKind = "nap"
	BlockBedtime  BlockKind = "bedtime"
	BlockWindDown BlockKind = "wind_down"
)

// ScheduleBlock is one projected window in the upcoming schedule. The whole
// set is regenerated on every simulation call; IDs are derived from kind and
// start time so identical inputs reproduce identical blocks.
type ScheduleBlock struct {
	ID         string    `json:"id"`
	Kind       BlockKind `json:"kind"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Confidence float64   `json:"confidence"`
	Rationale  string    `json:"rationale"`
}

// TipSeverity tags a coach tip for presentation.
type TipSeverity string

const (
	TipWarning TipSeverity = "warning"
	TipInfo    TipSeverity = "info"
	TipSuccess TipSeverity = "success"
)

// CoachTip is one advisory produced by the rule battery. ID is fixed per
// rule, which lets the presentation layer deduplicate across passes.
type CoachTip struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Message           string      `json:"message"`
	Severity          TipSeverity `json:"severity"`
	RelatedSessionIDs []string    `json:"related_session_ids,omitempty"`
}
