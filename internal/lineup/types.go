package lineup

// LineType describes how many players each side of a line holds.
type LineType string

const (
	LineSingles LineType = "singles"
	LineDoubles LineType = "doubles"
	LineMixed   LineType = "mixed"
)

// IsSingles reports whether the line holds one player per side.
func (t LineType) IsSingles() bool {
	return t == LineSingles
}

// Side identifies a position within a court slot.
type Side int

const (
	SidePrimary Side = iota + 1
	SideSecondary
)

func (s Side) valid() bool {
	return s == SidePrimary || s == SideSecondary
}

// Status is a player's self-reported availability for one match or event.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusMaybe       Status = "maybe"
	StatusLate        Status = "late"
	StatusLastResort  Status = "last_resort"
)

// Player is a roster snapshot row handed to the engine.
type Player struct {
	ID         string
	FullName   string
	NTRPRating *float64
	IsActive   bool
}

func (p Player) rating() float64 {
	if p.NTRPRating == nil {
		return 0
	}
	return *p.NTRPRating
}

// Mark is one availability row. The engine keys marks by player and keeps
// the last one it sees when duplicates are supplied.
type Mark struct {
	RosterMemberID string
	Status         Status
}

// LineConfig is the per-team court configuration for a match.
type LineConfig struct {
	TotalLines int
	LineTypes  []LineType
}

// Normalized pads or truncates LineTypes to TotalLines, defaulting new
// lines to doubles, matching how team settings are stored.
func (c LineConfig) Normalized() LineConfig {
	if c.TotalLines <= 0 {
		return LineConfig{}
	}
	types := make([]LineType, c.TotalLines)
	for i := range types {
		if i < len(c.LineTypes) && c.LineTypes[i] != "" {
			types[i] = c.LineTypes[i]
		} else {
			types[i] = LineDoubles
		}
	}
	return LineConfig{TotalLines: c.TotalLines, LineTypes: types}
}

// IsSingles reports whether the 0-based court index is a singles line.
// Out-of-range indexes are treated as doubles, the storage default.
func (c LineConfig) IsSingles(courtIndex int) bool {
	if courtIndex < 0 || courtIndex >= len(c.LineTypes) {
		return false
	}
	return c.LineTypes[courtIndex].IsSingles()
}

// Slot is one line's current assignment.
type Slot struct {
	Court    int // 1-based court number
	Player1  *Player
	Player2  *Player
	LineupID string // persisted lineup row backing this slot, if any
}

// Row is a persisted lineup row used to resume editing.
type Row struct {
	LineupID  string
	CourtSlot int
	Player1ID *string
	Player2ID *string
}

// PlanRow is the serializable form of one slot, shaped for upsert into
// the lineups table.
type PlanRow struct {
	CourtNumber int     `json:"courtNumber"`
	Player1ID   *string `json:"player1Id"`
	Player2ID   *string `json:"player2Id"`
}

// Buckets partitions the unassigned pool by availability.
type Buckets struct {
	Available   []Player `json:"available"`
	Unavailable []Player `json:"unavailable"`
	NotSet      []Player `json:"notSet"`
}
