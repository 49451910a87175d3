// Package journal implements the document layer of a markdown
// goal-tracking journal: parsing goal documents and daily reflections,
// deriving habit definitions, and detecting critical life-change
// events in free text.
//
// Documents are hand-edited and often partially filled, so every
// extraction path degrades gracefully: a missing section yields an
// empty default, never an error.
package journal

// Goal statuses as written in the document's bold status field.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
	StatusCancelled = "cancelled"
)

// Goal is one parsed goal document.
type Goal struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	Identity   string     `json:"identity"`
	Beliefs    []string   `json:"beliefs"`
	Evidence   []string   `json:"evidence"`
	Operations Operations `json:"operations"`
	Tactics    Tactics    `json:"tactics"`
}

// Operations holds a goal's behavioral-intention plans.
type Operations struct {
	IfThen     []string `json:"if_then"`
	TinyHabits []string `json:"tiny_habits"`
}

// Tactics holds a goal's tactical formalism (OKR or SMART).
type Tactics struct {
	Method     string   `json:"method"`
	Objective  string   `json:"objective"`
	KeyResults []string `json:"key_results"`
	SMARTGoal  string   `json:"smart_goal"`
}

// Record is the structured form of one daily reflection document.
// Pointer fields are nil when the document leaves them unfilled.
type Record struct {
	Date              string   `json:"date"`
	OperationsDone    []string `json:"operations_done"`
	TacticsDone       []string `json:"tactics_done"`
	EvidenceDone      []string `json:"evidence_done"`
	Obstacles         []string `json:"obstacles"`
	HelpfulFactors    []string `json:"helpful_factors"`
	Rating            *int     `json:"rating"`
	OperationsPercent *int     `json:"operations_percent"`
	TacticsPercent    *int     `json:"tactics_percent"`
	Energy            string   `json:"energy"`
	Motivation        string   `json:"motivation"`
	Focus             string   `json:"focus"`
	Insights          string   `json:"insights"`
	PlanTomorrow      string   `json:"plan_tomorrow"`
	CriticalEvents    []Event  `json:"critical_events"`
}

// HabitKind distinguishes the two behavioral-intention grammars.
type HabitKind string

const (
	HabitIfThen HabitKind = "implementation_intention"
	HabitTiny   HabitKind = "tiny_habit"
)

// Habit is one behavioral plan derived from a goal document. Name
// doubles as the habit's identity key in downstream matching.
type Habit struct {
	Name    string
	Kind    HabitKind
	Trigger string // trigger for if-then plans, anchor for tiny habits
	Action  string
}

// EventKind classifies a detected life change.
type EventKind string

const (
	EventForced    EventKind = "FORCED_CHANGE"
	EventVoluntary EventKind = "VOLUNTARY_CHANGE"
)

// Confidence grades how strongly a keyword signals a real event.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
)

// Event is one keyword match signaling a forced or voluntary life
// change, with the surrounding text captured for review.
type Event struct {
	Kind       EventKind  `json:"type"`
	Keyword    string     `json:"keyword"`
	Context    string     `json:"context"`
	Confidence Confidence `json:"confidence"`
}
