package roster

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "national US", in: "(415) 555-2671", want: "+14155552671"},
		{name: "already E164", in: "+14155552671", want: "+14155552671"},
		{name: "international", in: "+44 20 7946 0958", want: "+442079460958"},
		{name: "whitespace only", in: "   ", want: ""},
		{name: "empty", in: "", want: ""},
		{name: "garbage", in: "not a phone", wantErr: true},
		{name: "too short", in: "12", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizePhone(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("normalizePhone(%q) = %q, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizePhone(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("normalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMemberRequestValidate(t *testing.T) {
	rating := 4.5
	phone := "415-555-2671"
	emailAddr := "  Player@Example.COM "

	req := memberRequest{
		FullName:   "  Pat Player  ",
		Email:      &emailAddr,
		Phone:      &phone,
		NTRPRating: &rating,
	}
	if err := req.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.FullName != "Pat Player" {
		t.Errorf("FullName = %q", req.FullName)
	}
	if req.Email == nil || *req.Email != "player@example.com" {
		t.Errorf("Email = %v", req.Email)
	}
	if req.Phone == nil || *req.Phone != "+14155552671" {
		t.Errorf("Phone = %v", req.Phone)
	}

	empty := memberRequest{FullName: "   "}
	if err := empty.validate(); err == nil {
		t.Error("expected error for blank full name")
	}

	badRating := 8.0
	overRated := memberRequest{FullName: "Pat", NTRPRating: &badRating}
	if err := overRated.validate(); err == nil {
		t.Error("expected error for out of range rating")
	}
}
