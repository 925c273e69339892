package core

import (
	"encoding/json"
	"testing"
)

func TestFullName(t *testing.T) {
	cases := []struct {
		name                   string
		first, last, org, want string
	}{
		{"first and last", "Jane", "Doe", "Acme PAC", "Jane Doe"},
		{"first only", "Jane", "", "", "Jane"},
		{"last only", "", "Doe", "", "Doe"},
		{"organization fallback", "", "", "Acme PAC", "Acme PAC"},
		{"whitespace parts", "  ", " ", "  Acme PAC ", "Acme PAC"},
		{"placeholder", "", "", "", UnknownContributor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FullName(tc.first, tc.last, tc.org, UnknownContributor); got != tc.want {
				t.Fatalf("FullName = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	row := RawRow{
		FieldContributorFirstName: " Jane ",
		FieldContributorLastName:  "Doe",
		FieldRecipientFirstName:   "John",
		FieldRecipientLastName:    "Smith",
		FieldAmount:               "100",
		FieldReceiptDate:          " 2024-01-05 ",
		FieldCity:                 "Providence",
		FieldState:                "RI",
		FieldEmployer:             "  Acme  ",
	}
	rec := Normalize(row, 3)

	if rec.ContributorFullName != "Jane Doe" {
		t.Errorf("contributor = %q", rec.ContributorFullName)
	}
	if rec.RecipientFullName != "John Smith" {
		t.Errorf("recipient = %q", rec.RecipientFullName)
	}
	if rec.Amount != 100 {
		t.Errorf("amount = %v", rec.Amount)
	}
	if rec.ReceiptDate != "2024-01-05" {
		t.Errorf("receipt date = %q", rec.ReceiptDate)
	}
	if rec.Employer != "Acme" {
		t.Errorf("employer = %q", rec.Employer)
	}
	if rec.ID != "3-Jane Doe-John Smith-2024-01-05" {
		t.Errorf("id = %q", rec.ID)
	}
	if rec.Place() != "Providence, RI" {
		t.Errorf("place = %q", rec.Place())
	}
	if rec.OfficeSought != "" || rec.Zip != "" {
		t.Errorf("absent fields must be empty strings")
	}
}

func TestNormalizeEmptyRow(t *testing.T) {
	rec := Normalize(RawRow{}, 0)
	if rec.ContributorFullName != UnknownContributor {
		t.Errorf("contributor = %q", rec.ContributorFullName)
	}
	if rec.RecipientFullName != UnknownRecipient {
		t.Errorf("recipient = %q", rec.RecipientFullName)
	}
	if rec.Amount != 0 {
		t.Errorf("amount = %v", rec.Amount)
	}
	if rec.ID != "0-Unknown contributor-Unknown recipient-" {
		t.Errorf("id = %q", rec.ID)
	}
	if rec.LocationKey() != UnknownLocation {
		t.Errorf("location key = %q", rec.LocationKey())
	}
}

func TestNormalizeOrganizations(t *testing.T) {
	rec := Normalize(RawRow{
		FieldFromOrganizationName: "Acme PAC",
		FieldToOrganization:       "Friends of Lee",
	}, 1)
	if rec.ContributorFullName != "Acme PAC" {
		t.Errorf("contributor = %q", rec.ContributorFullName)
	}
	if rec.RecipientFullName != "Friends of Lee" {
		t.Errorf("recipient = %q", rec.RecipientFullName)
	}
}

func TestRawRowUnmarshal(t *testing.T) {
	var rows []RawRow
	data := `[{"Amount": 12.5, "City": null, "State": "RI", "Exemption Status": false, "Nested": {"a": 1}}]`
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	row := rows[0]
	if row[FieldAmount] != "12.5" {
		t.Errorf("amount = %q", row[FieldAmount])
	}
	if _, ok := row[FieldCity]; ok {
		t.Errorf("null city should be absent")
	}
	if row[FieldState] != "RI" {
		t.Errorf("state = %q", row[FieldState])
	}
	if row[FieldExemptionStatus] != "false" {
		t.Errorf("exemption = %q", row[FieldExemptionStatus])
	}
	if _, ok := row["Nested"]; ok {
		t.Errorf("nested value should be dropped")
	}
}

func TestColumns(t *testing.T) {
	cols := Columns()
	if len(cols) != 23 {
		t.Fatalf("expected 23 columns, got %d", len(cols))
	}
	seen := map[string]bool{}
	for _, c := range cols {
		if seen[c] {
			t.Fatalf("duplicate column %q", c)
		}
		seen[c] = true
	}
	if !seen[FieldAmount] {
		t.Fatalf("amount column missing")
	}
}
