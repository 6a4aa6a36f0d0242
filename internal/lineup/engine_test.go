package lineup

import (
	"errors"
	"testing"
)

func rating(v float64) *float64 {
	return &v
}

func testRoster() []Player {
	return []Player{
		{ID: "a", FullName: "Alice", NTRPRating: rating(4.0), IsActive: true},
		{ID: "b", FullName: "Bob", NTRPRating: rating(3.5), IsActive: true},
		{ID: "c", FullName: "Cora", NTRPRating: rating(4.5), IsActive: true},
		{ID: "d", FullName: "Dan", IsActive: true},
	}
}

func doublesConfig(lines int) LineConfig {
	return LineConfig{TotalLines: lines}
}

// collectIDs returns every player ID present in the state, slots first.
func collectIDs(s State) map[string]int {
	seen := make(map[string]int)
	for _, slot := range s.Slots() {
		if slot.Player1 != nil {
			seen[slot.Player1.ID]++
		}
		if slot.Player2 != nil {
			seen[slot.Player2.ID]++
		}
	}
	for _, p := range s.Unassigned() {
		seen[p.ID]++
	}
	return seen
}

func TestNewState_ResumesFromRows(t *testing.T) {
	aID, bID := "a", "b"
	cfg := LineConfig{TotalLines: 2, LineTypes: []LineType{LineSingles, LineDoubles}}
	state := NewState(cfg, testRoster(), nil, []Row{
		{LineupID: "l1", CourtSlot: 1, Player1ID: &aID, Player2ID: &bID},
		{LineupID: "l9", CourtSlot: 9, Player1ID: &bID},
	})

	slots := state.Slots()
	if slots[0].LineupID != "l1" || slots[0].Player1 == nil || slots[0].Player1.ID != "a" {
		t.Fatalf("court 1 not restored: %+v", slots[0])
	}
	// Singles line drops a stored second player instead of trusting the row.
	if slots[0].Player2 != nil {
		t.Errorf("singles court kept player2 %q", slots[0].Player2.ID)
	}
	// Out-of-range court rows are ignored, so Bob stays assignable.
	if len(state.Unassigned()) != 3 {
		t.Errorf("unassigned = %d, want 3", len(state.Unassigned()))
	}
}

func TestAssign_DisplacementAndConservation(t *testing.T) {
	state := NewState(doublesConfig(2), testRoster(), nil, nil)

	state, err := state.Assign("a", 0, SidePrimary)
	if err != nil {
		t.Fatal(err)
	}
	state, err = state.Assign("b", 0, SideSecondary)
	if err != nil {
		t.Fatal(err)
	}

	// Replacing Bob with Cora returns Bob to the pool.
	state, err = state.Assign("c", 0, SideSecondary)
	if err != nil {
		t.Fatal(err)
	}

	slots := state.Slots()
	if slots[0].Player2 == nil || slots[0].Player2.ID != "c" {
		t.Fatalf("court 1 secondary = %+v, want Cora", slots[0].Player2)
	}
	found := false
	for _, p := range state.Unassigned() {
		if p.ID == "b" {
			found = true
		}
	}
	if !found {
		t.Error("displaced player did not return to unassigned pool")
	}

	// Every roster member is in exactly one place.
	seen := collectIDs(state)
	for _, p := range testRoster() {
		if seen[p.ID] != 1 {
			t.Errorf("player %s appears %d times", p.ID, seen[p.ID])
		}
	}
}

func TestAssign_MovesPlayerBetweenSlots(t *testing.T) {
	state := NewState(doublesConfig(2), testRoster(), nil, nil)

	state, _ = state.Assign("a", 0, SidePrimary)
	state, err := state.Assign("a", 1, SidePrimary)
	if err != nil {
		t.Fatal(err)
	}

	slots := state.Slots()
	if slots[0].Player1 != nil {
		t.Errorf("court 1 still holds %q after move", slots[0].Player1.ID)
	}
	if slots[1].Player1 == nil || slots[1].Player1.ID != "a" {
		t.Errorf("court 2 primary = %+v, want Alice", slots[1].Player1)
	}
	if seen := collectIDs(state); seen["a"] != 1 {
		t.Errorf("player a appears %d times", seen["a"])
	}
}

func TestAssign_Errors(t *testing.T) {
	cfg := LineConfig{TotalLines: 1, LineTypes: []LineType{LineSingles}}
	state := NewState(cfg, testRoster(), nil, nil)

	if _, err := state.Assign("a", 3, SidePrimary); !errors.Is(err, ErrCourtOutOfRange) {
		t.Errorf("out-of-range court error = %v", err)
	}
	if _, err := state.Assign("a", 0, SideSecondary); !errors.Is(err, ErrSinglesSide) {
		t.Errorf("singles secondary error = %v", err)
	}
	if _, err := state.Assign("zz", 0, SidePrimary); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("unknown player error = %v", err)
	}
	if _, err := state.Assign("a", 0, Side(7)); !errors.Is(err, ErrInvalidSide) {
		t.Errorf("invalid side error = %v", err)
	}

	// Failed operations leave the state untouched.
	if len(state.Unassigned()) != 4 {
		t.Errorf("unassigned = %d after failed assigns, want 4", len(state.Unassigned()))
	}
}

func TestUnassign_Idempotent(t *testing.T) {
	state := NewState(doublesConfig(1), testRoster(), nil, nil)
	state, _ = state.Assign("a", 0, SidePrimary)

	state, err := state.Unassign(0, SidePrimary)
	if err != nil {
		t.Fatal(err)
	}
	if state.Slots()[0].Player1 != nil {
		t.Fatal("slot not cleared")
	}
	if len(state.Unassigned()) != 4 {
		t.Fatalf("unassigned = %d, want 4", len(state.Unassigned()))
	}

	// Clearing an empty side twice is a no-op both times.
	for i := 0; i < 2; i++ {
		next, err := state.Unassign(0, SidePrimary)
		if err != nil {
			t.Fatalf("unassign empty side: %v", err)
		}
		if len(next.Unassigned()) != len(state.Unassigned()) {
			t.Errorf("unassign of empty side changed pool size")
		}
		state = next
	}
}

func TestClassify(t *testing.T) {
	marks := []Mark{
		{RosterMemberID: "a", Status: StatusLate},
		{RosterMemberID: "b", Status: StatusUnavailable},
		{RosterMemberID: "c", Status: StatusLastResort},
	}
	state := NewState(doublesConfig(1), testRoster(), marks, nil)

	b := state.Classify()
	if len(b.Available) != 2 || b.Available[0].ID != "a" || b.Available[1].ID != "c" {
		t.Errorf("available = %+v, want [a c]", b.Available)
	}
	if len(b.Unavailable) != 1 || b.Unavailable[0].ID != "b" {
		t.Errorf("unavailable = %+v, want [b]", b.Unavailable)
	}
	if len(b.NotSet) != 1 || b.NotSet[0].ID != "d" {
		t.Errorf("notSet = %+v, want [d]", b.NotSet)
	}
}

func TestClassify_DuplicateMarksLastOneWins(t *testing.T) {
	marks := []Mark{
		{RosterMemberID: "a", Status: StatusUnavailable},
		{RosterMemberID: "a", Status: StatusAvailable},
	}
	state := NewState(doublesConfig(1), testRoster(), marks, nil)

	b := state.Classify()
	for _, p := range b.Unavailable {
		if p.ID == "a" {
			t.Error("stale duplicate mark won")
		}
	}
	if len(b.Available) == 0 || b.Available[0].ID != "a" {
		t.Errorf("available = %+v, want a first", b.Available)
	}
}

func TestClassify_OnlyCoversUnassigned(t *testing.T) {
	marks := []Mark{{RosterMemberID: "a", Status: StatusAvailable}}
	state := NewState(doublesConfig(1), testRoster(), marks, nil)
	state, _ = state.Assign("a", 0, SidePrimary)

	b := state.Classify()
	for _, p := range b.Available {
		if p.ID == "a" {
			t.Error("assigned player still classified")
		}
	}
}

func TestCombinedRating(t *testing.T) {
	alice := Player{ID: "a", NTRPRating: rating(4.0)}
	bob := Player{ID: "b", NTRPRating: rating(3.5)}
	dan := Player{ID: "d"}

	tests := []struct {
		name     string
		slot     Slot
		singles  bool
		expected float64
	}{
		{"doubles sums both sides", Slot{Player1: &alice, Player2: &bob}, false, 7.5},
		{"singles uses primary only", Slot{Player1: &alice, Player2: &bob}, true, 4.0},
		{"missing player counts zero", Slot{Player1: &alice}, false, 4.0},
		{"unrated player counts zero", Slot{Player1: &alice, Player2: &dan}, false, 4.0},
		{"empty slot", Slot{}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CombinedRating(tt.slot, tt.singles); got != tt.expected {
				t.Errorf("CombinedRating = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestOverLimit_Boundaries(t *testing.T) {
	limit := rating(3.0)

	p := func(v float64) *Player { return &Player{ID: "x", NTRPRating: rating(v)} }

	tests := []struct {
		name    string
		slot    Slot
		singles bool
		want    bool
	}{
		{"doubles at exactly double the limit", Slot{Player1: p(3.0), Player2: p(3.0)}, false, false},
		{"doubles just over", Slot{Player1: p(3.0), Player2: p(3.1)}, false, true},
		{"singles at the limit", Slot{Player1: p(3.0)}, true, false},
		{"singles just over", Slot{Player1: p(3.1)}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverLimit(tt.slot, tt.singles, limit); got != tt.want {
				t.Errorf("OverLimit = %v, want %v", got, tt.want)
			}
		})
	}

	if OverLimit(Slot{Player1: p(9.9), Player2: p(9.9)}, false, nil) {
		t.Error("nil limit must never flag a slot")
	}
}

func TestScenario_RatingLimitWithDisplacement(t *testing.T) {
	limit := rating(4.0) // effective 8.0 for doubles
	state := NewState(doublesConfig(1), testRoster()[:3], nil, nil)

	state, _ = state.Assign("a", 0, SidePrimary)
	state, _ = state.Assign("b", 0, SideSecondary)

	slot := state.Slots()[0]
	if got := CombinedRating(slot, false); got != 7.5 {
		t.Fatalf("combined = %v, want 7.5", got)
	}
	if OverLimit(slot, false, limit) {
		t.Fatal("7.5 vs 8.0 flagged over limit")
	}

	state, _ = state.Assign("c", 0, SideSecondary)
	slot = state.Slots()[0]
	if got := CombinedRating(slot, false); got != 8.5 {
		t.Fatalf("combined = %v, want 8.5", got)
	}
	if !OverLimit(slot, false, limit) {
		t.Fatal("8.5 vs 8.0 not flagged")
	}
	if pool := state.Unassigned(); len(pool) != 1 || pool[0].ID != "b" {
		t.Fatalf("unassigned = %+v, want displaced Bob", pool)
	}
}

func TestPlan_ForcesNullSecondaryOnSingles(t *testing.T) {
	cfg := LineConfig{TotalLines: 2, LineTypes: []LineType{LineSingles, LineDoubles}}
	state := NewState(cfg, testRoster(), nil, nil)

	state, _ = state.Assign("a", 0, SidePrimary)
	state, _ = state.Assign("b", 1, SidePrimary)
	state, _ = state.Assign("c", 1, SideSecondary)

	plan := state.Plan()
	if len(plan) != 2 {
		t.Fatalf("plan rows = %d, want 2", len(plan))
	}
	if plan[0].CourtNumber != 1 || plan[0].Player1ID == nil || *plan[0].Player1ID != "a" {
		t.Errorf("row 1 = %+v", plan[0])
	}
	if plan[0].Player2ID != nil {
		t.Errorf("singles row kept player2 %q", *plan[0].Player2ID)
	}
	if plan[1].Player2ID == nil || *plan[1].Player2ID != "c" {
		t.Errorf("doubles row lost player2: %+v", plan[1])
	}
}

func TestLineConfigNormalized(t *testing.T) {
	cfg := LineConfig{TotalLines: 3, LineTypes: []LineType{LineSingles}}
	norm := cfg.Normalized()
	if len(norm.LineTypes) != 3 {
		t.Fatalf("line types = %d, want 3", len(norm.LineTypes))
	}
	if norm.LineTypes[0] != LineSingles || norm.LineTypes[1] != LineDoubles || norm.LineTypes[2] != LineDoubles {
		t.Errorf("padded types = %v", norm.LineTypes)
	}

	cfg = LineConfig{TotalLines: 1, LineTypes: []LineType{LineDoubles, LineSingles}}
	if norm := cfg.Normalized(); len(norm.LineTypes) != 1 {
		t.Errorf("truncated types = %v", norm.LineTypes)
	}
}
