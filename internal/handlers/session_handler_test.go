package handlers

import (
	"testing"
	"time"
)

func validCreateRequest() createSessionRequest {
	return createSessionRequest{
		Title:             "Intro to Algebra",
		TutorName:         "Jane Doe",
		TutorEmail:        "jane@example.com",
		Description:       "Weekly algebra sessions",
		RegistrationStart: "2025-01-01",
		RegistrationEnd:   "2025-01-10",
		ClassStart:        "2025-01-11",
		ClassEnd:          "2025-01-20",
		Duration:          "2 hours",
		MaxStudents:       20,
	}
}

func TestMissingSessionField(t *testing.T) {
	if field := missingSessionField(validCreateRequest()); field != "" {
		t.Fatalf("expected complete request to pass, got missing %q", field)
	}

	cases := []struct {
		mutate func(*createSessionRequest)
		expect string
	}{
		{func(r *createSessionRequest) { r.Title = "" }, "title"},
		{func(r *createSessionRequest) { r.TutorName = "" }, "tutorName"},
		{func(r *createSessionRequest) { r.TutorEmail = "" }, "tutorEmail"},
		{func(r *createSessionRequest) { r.Description = "" }, "description"},
		{func(r *createSessionRequest) { r.RegistrationStart = "" }, "registrationStart"},
		{func(r *createSessionRequest) { r.RegistrationEnd = "" }, "registrationEnd"},
		{func(r *createSessionRequest) { r.ClassStart = "" }, "classStart"},
		{func(r *createSessionRequest) { r.ClassEnd = "" }, "classEnd"},
		{func(r *createSessionRequest) { r.Duration = "" }, "duration"},
		{func(r *createSessionRequest) { r.MaxStudents = 0 }, "maxStudents"},
	}
	for _, tc := range cases {
		req := validCreateRequest()
		tc.mutate(&req)
		if field := missingSessionField(req); field != tc.expect {
			t.Fatalf("expected missing field %q, got %q", tc.expect, field)
		}
	}

	// The first missing field wins.
	req := validCreateRequest()
	req.Title = ""
	req.Duration = ""
	if field := missingSessionField(req); field != "title" {
		t.Fatalf("expected first missing field to be reported, got %q", field)
	}
}

func TestParseSessionDate(t *testing.T) {
	if _, err := parseSessionDate("2025-01-01"); err != nil {
		t.Fatalf("expected plain date to parse: %v", err)
	}
	if _, err := parseSessionDate("2025-01-01T10:00:00Z"); err != nil {
		t.Fatalf("expected RFC 3339 to parse: %v", err)
	}
	if _, err := parseSessionDate("January 1st"); err == nil {
		t.Fatalf("expected freeform date to fail")
	}
	if _, err := parseSessionDate(""); err == nil {
		t.Fatalf("expected empty date to fail")
	}
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := parseSessionDate(value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return parsed
}

func TestValidateSessionWindow(t *testing.T) {
	cases := map[string]struct {
		regStart, regEnd, classStart, classEnd string
		ok                                     bool
	}{
		"valid window":                     {"2025-01-01", "2025-01-10", "2025-01-11", "2025-01-20", true},
		"registration inverted":            {"2025-01-10", "2025-01-01", "2025-01-11", "2025-01-20", false},
		"registration zero length":         {"2025-01-01", "2025-01-01", "2025-01-11", "2025-01-20", false},
		"class inverted":                   {"2025-01-01", "2025-01-10", "2025-01-20", "2025-01-11", false},
		"class before registration ends":   {"2025-01-01", "2025-01-10", "2025-01-09", "2025-01-20", false},
		"class starts at registration end": {"2025-01-01", "2025-01-10", "2025-01-10", "2025-01-20", false},
	}

	for name, tc := range cases {
		err := validateSessionWindow(
			mustDate(t, tc.regStart),
			mustDate(t, tc.regEnd),
			mustDate(t, tc.classStart),
			mustDate(t, tc.classEnd),
		)
		if tc.ok && err != nil {
			t.Fatalf("%s: expected valid window, got %v", name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected window to be rejected", name)
		}
	}
}

func TestSessionUpdateFields(t *testing.T) {
	now := time.Now()

	req := updateSessionRequest{
		Title:           "Intro to Algebra",
		Description:     "Weekly algebra sessions",
		MaxStudents:     15,
		RegistrationFee: "99",
	}

	set, err := sessionUpdateFields(req, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, field := range []string{"registrationStart", "registrationEnd", "classStart", "classEnd"} {
		if _, ok := set[field]; ok {
			t.Fatalf("expected absent %s to be skipped", field)
		}
	}
	if set["title"] != "Intro to Algebra" || set["registrationFee"] != 99 {
		t.Fatalf("unexpected update fields: %v", set)
	}
	if set["updatedAt"] != now {
		t.Fatalf("expected updatedAt to be refreshed")
	}

	req.ClassStart = "2025-01-11"
	set, err = sessionUpdateFields(req, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := set["classStart"].(time.Time); !ok {
		t.Fatalf("expected supplied classStart to be parsed, got %v", set["classStart"])
	}

	req.ClassStart = "bogus"
	if _, err := sessionUpdateFields(req, now); err == nil {
		t.Fatalf("expected unparseable date to be rejected")
	}
}

func TestCoerceInt(t *testing.T) {
	cases := []struct {
		input  interface{}
		expect int
	}{
		{float64(150), 150},
		{"150", 150},
		{" 150 ", 150},
		{"abc", 0},
		{nil, 0},
		{true, 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := coerceInt(tc.input); got != tc.expect {
			t.Fatalf("coerceInt(%v): expected %d, got %d", tc.input, tc.expect, got)
		}
	}
}
