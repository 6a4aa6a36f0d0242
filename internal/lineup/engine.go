// Package lineup maintains the mapping from roster players to court slots
// for one match. The engine is pure: every operation takes a State value
// and returns a new one, so the caller owns the single mutable reference
// and can evaluate saved or pending snapshots alike.
package lineup

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrCourtOutOfRange = errors.New("court index out of range")
	ErrInvalidSide     = errors.New("invalid slot side")
	ErrSinglesSide     = errors.New("singles lines have no secondary side")
	ErrUnknownPlayer   = errors.New("player is not part of this lineup")
)

// State holds the court slots and the unassigned pool. Every roster player
// is in exactly one of: some slot's side, or the unassigned pool.
type State struct {
	config     LineConfig
	slots      []Slot
	unassigned []Player
	marks      map[string]Status
}

// NewState builds editing state from a roster snapshot, availability marks,
// and any persisted lineup rows. Rows referencing unknown players or courts
// outside the configuration are ignored; a second player stored on a singles
// line is dropped so the player stays assignable.
func NewState(cfg LineConfig, roster []Player, marks []Mark, existing []Row) State {
	cfg = cfg.Normalized()

	byID := make(map[string]Player, len(roster))
	for _, p := range roster {
		byID[p.ID] = p
	}

	// Last mark wins when duplicates are supplied.
	markByPlayer := make(map[string]Status, len(marks))
	for _, m := range marks {
		markByPlayer[m.RosterMemberID] = m.Status
	}

	slots := make([]Slot, cfg.TotalLines)
	for i := range slots {
		slots[i] = Slot{Court: i + 1}
	}

	assigned := make(map[string]bool, len(roster))
	for _, row := range existing {
		idx := row.CourtSlot - 1
		if idx < 0 || idx >= len(slots) {
			continue
		}
		slots[idx].LineupID = row.LineupID
		if row.Player1ID != nil {
			if p, ok := byID[*row.Player1ID]; ok && !assigned[p.ID] {
				slots[idx].Player1 = &p
				assigned[p.ID] = true
			}
		}
		if row.Player2ID != nil && !cfg.IsSingles(idx) {
			if p, ok := byID[*row.Player2ID]; ok && !assigned[p.ID] {
				slots[idx].Player2 = &p
				assigned[p.ID] = true
			}
		}
	}

	unassigned := make([]Player, 0, len(roster))
	for _, p := range roster {
		if !assigned[p.ID] {
			unassigned = append(unassigned, p)
		}
	}

	return State{config: cfg, slots: slots, unassigned: unassigned, marks: markByPlayer}
}

// Config returns the normalized line configuration backing this state.
func (s State) Config() LineConfig {
	return s.config
}

// Slots returns a copy of the current court slots in court order.
func (s State) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Unassigned returns a copy of the unassigned pool in insertion order.
func (s State) Unassigned() []Player {
	out := make([]Player, len(s.unassigned))
	copy(out, s.unassigned)
	return out
}

// MarkFor returns the latest availability status recorded for a player.
func (s State) MarkFor(playerID string) (Status, bool) {
	status, ok := s.marks[playerID]
	return status, ok
}

func (s State) clone() State {
	next := State{
		config:     s.config,
		slots:      make([]Slot, len(s.slots)),
		unassigned: make([]Player, len(s.unassigned)),
		marks:      s.marks,
	}
	copy(next.slots, s.slots)
	copy(next.unassigned, s.unassigned)
	return next
}

func (s State) checkCourt(courtIndex int) error {
	if courtIndex < 0 || courtIndex >= len(s.slots) {
		return fmt.Errorf("%w: %d of %d", ErrCourtOutOfRange, courtIndex, len(s.slots))
	}
	return nil
}

// findPlayer locates a player by ID in the unassigned pool or a slot.
func (s State) findPlayer(playerID string) (Player, bool) {
	for _, p := range s.unassigned {
		if p.ID == playerID {
			return p, true
		}
	}
	for _, slot := range s.slots {
		if slot.Player1 != nil && slot.Player1.ID == playerID {
			return *slot.Player1, true
		}
		if slot.Player2 != nil && slot.Player2.ID == playerID {
			return *slot.Player2, true
		}
	}
	return Player{}, false
}

// removePlayer clears playerID from wherever it currently lives.
func (s *State) removePlayer(playerID string) {
	for i, p := range s.unassigned {
		if p.ID == playerID {
			s.unassigned = append(s.unassigned[:i], s.unassigned[i+1:]...)
			return
		}
	}
	for i := range s.slots {
		if s.slots[i].Player1 != nil && s.slots[i].Player1.ID == playerID {
			s.slots[i].Player1 = nil
			return
		}
		if s.slots[i].Player2 != nil && s.slots[i].Player2.ID == playerID {
			s.slots[i].Player2 = nil
			return
		}
	}
}

// Assign places a player on a court side. The player's previous slot is
// vacated first, and any occupant displaced from the destination returns
// to the unassigned pool. No player is ever dropped.
func (s State) Assign(playerID string, courtIndex int, side Side) (State, error) {
	if err := s.checkCourt(courtIndex); err != nil {
		return s, err
	}
	if !side.valid() {
		return s, fmt.Errorf("%w: %d", ErrInvalidSide, side)
	}
	if side == SideSecondary && s.config.IsSingles(courtIndex) {
		return s, fmt.Errorf("%w: court %d", ErrSinglesSide, courtIndex+1)
	}
	player, ok := s.findPlayer(playerID)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}

	next := s.clone()
	next.removePlayer(playerID)

	slot := &next.slots[courtIndex]
	var displaced *Player
	if side == SidePrimary {
		displaced = slot.Player1
		slot.Player1 = &player
	} else {
		displaced = slot.Player2
		slot.Player2 = &player
	}
	if displaced != nil && displaced.ID != playerID {
		next.unassigned = append(next.unassigned, *displaced)
	}
	return next, nil
}

// Unassign clears a court side, returning its occupant to the unassigned
// pool. Clearing an already-empty side is a no-op, not an error.
func (s State) Unassign(courtIndex int, side Side) (State, error) {
	if err := s.checkCourt(courtIndex); err != nil {
		return s, err
	}
	if !side.valid() {
		return s, fmt.Errorf("%w: %d", ErrInvalidSide, side)
	}

	slot := s.slots[courtIndex]
	var occupant *Player
	if side == SidePrimary {
		occupant = slot.Player1
	} else {
		occupant = slot.Player2
	}
	if occupant == nil {
		return s, nil
	}

	next := s.clone()
	if side == SidePrimary {
		next.slots[courtIndex].Player1 = nil
	} else {
		next.slots[courtIndex].Player2 = nil
	}
	next.unassigned = append(next.unassigned, *occupant)
	return next, nil
}

// Classify buckets the unassigned pool. A player marked maybe or late is
// still surfaced as assignable, and last_resort likewise stays in the
// candidate list; only an explicit unavailable hides a player.
func (s State) Classify() Buckets {
	var b Buckets
	for _, p := range s.unassigned {
		status, ok := s.marks[p.ID]
		switch {
		case !ok || status == "":
			b.NotSet = append(b.NotSet, p)
		case status == StatusUnavailable:
			b.Unavailable = append(b.Unavailable, p)
		default:
			b.Available = append(b.Available, p)
		}
	}
	return b
}

// CombinedRating returns a slot's combined NTRP rating: the primary
// player's rating for singles, the sum of both sides for doubles/mixed.
// Absent players and unset ratings count as zero.
func CombinedRating(slot Slot, isSingles bool) float64 {
	var total float64
	if slot.Player1 != nil {
		total = slot.Player1.rating()
	}
	if isSingles {
		return total
	}
	if slot.Player2 != nil {
		total += slot.Player2.rating()
	}
	return total
}

// roundHalfUp1 rounds to one decimal place, halves away from zero, which
// keeps half-point NTRP sums exact before comparison.
func roundHalfUp1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// OverLimit reports whether a slot exceeds the team's rating limit. The
// stored limit is per player, so it is doubled for doubles/mixed lines.
// Both sides are rounded to one decimal and equality is compliant.
func OverLimit(slot Slot, isSingles bool, ratingLimit *float64) bool {
	if ratingLimit == nil {
		return false
	}
	effective := *ratingLimit
	if !isSingles {
		effective *= 2
	}
	return roundHalfUp1(CombinedRating(slot, isSingles)) > roundHalfUp1(effective)
}

// Plan serializes the state for persistence. Player2 is forced null on
// singles lines no matter what the in-memory slot holds.
func (s State) Plan() []PlanRow {
	rows := make([]PlanRow, 0, len(s.slots))
	for i, slot := range s.slots {
		row := PlanRow{CourtNumber: slot.Court}
		if slot.Player1 != nil {
			id := slot.Player1.ID
			row.Player1ID = &id
		}
		if slot.Player2 != nil && !s.config.IsSingles(i) {
			id := slot.Player2.ID
			row.Player2ID = &id
		}
		rows = append(rows, row)
	}
	return rows
}
