package usecase

// RunStatus summarizes how far a background job got. Jobs report no_data when
// there was nothing to act on, which is distinct from finishing with failures.
type RunStatus string

const (
	RunStatusCompleted      RunStatus = "completed"
	RunStatusPartialFailure RunStatus = "partial_failure"
	RunStatusNoData         RunStatus = "no_data"
)

// RunFailure identifies one record a job could not process. Ref is the
// record's public id (match, pick, or entry depending on the job).
type RunFailure struct {
	Ref    string `json:"ref"`
	Reason string `json:"reason"`
}

type MatchSyncResult struct {
	Status       RunStatus    `json:"status"`
	SeasonID     string       `json:"season_id,omitempty"`
	Week         *int         `json:"week,omitempty"`
	FetchedCount int          `json:"fetched_count"`
	CreatedCount int          `json:"created_count"`
	UpdatedCount int          `json:"updated_count"`
	SkippedCount int          `json:"skipped_count"`
	FailedCount  int          `json:"failed_count"`
	Failures     []RunFailure `json:"failures,omitempty"`
	DurationMs   int64        `json:"duration_ms"`
}

type PickScoringResult struct {
	Status       RunStatus    `json:"status"`
	SeasonID     string       `json:"season_id,omitempty"`
	ScoredCount  int          `json:"scored_count"`
	SkippedCount int          `json:"skipped_count"`
	FailedCount  int          `json:"failed_count"`
	Failures     []RunFailure `json:"failures,omitempty"`
	DurationMs   int64        `json:"duration_ms"`
}

type EntryStatsResult struct {
	Status          RunStatus    `json:"status"`
	SeasonID        string       `json:"season_id,omitempty"`
	EntryCount      int          `json:"entry_count"`
	UpdatedCount    int          `json:"updated_count"`
	EliminatedCount int          `json:"eliminated_count"`
	FailedCount     int          `json:"failed_count"`
	WorkerCount     int          `json:"worker_count"`
	Failures        []RunFailure `json:"failures,omitempty"`
	DurationMs      int64        `json:"duration_ms"`
}

type WeekAdvanceResult struct {
	Status       RunStatus `json:"status"`
	SeasonID     string    `json:"season_id,omitempty"`
	PreviousWeek int       `json:"previous_week"`
	CurrentWeek  int       `json:"current_week"`
	Advanced     bool      `json:"advanced"`
	DurationMs   int64     `json:"duration_ms"`
}

type AutoPickResult struct {
	Status        RunStatus    `json:"status"`
	SeasonID      string       `json:"season_id,omitempty"`
	Week          int          `json:"week,omitempty"`
	AssignedCount int          `json:"assigned_count"`
	SkippedCount  int          `json:"skipped_count"`
	FailedCount   int          `json:"failed_count"`
	Failures      []RunFailure `json:"failures,omitempty"`
	DurationMs    int64        `json:"duration_ms"`
}
