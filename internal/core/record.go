package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	UnknownContributor = "Unknown contributor"
	UnknownRecipient   = "Unknown recipient"
	UnknownLocation    = "Unknown location"
	NoReceiptDate      = "No receipt date"
)

// RawRow is one filing as published: column name to optional value.
type RawRow map[string]string

// Get returns the trimmed value of a column, or "" when the column is absent.
func (r RawRow) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// UnmarshalJSON accepts the loose shapes found in exports: null values are
// treated as absent, numbers and booleans are kept in their textual form.
func (r *RawRow) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	row := make(RawRow, len(fields))
	for k, raw := range fields {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decode field %q: %w", k, err)
		}
		switch t := v.(type) {
		case nil:
			continue
		case string:
			row[k] = t
		case float64:
			row[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			row[k] = strconv.FormatBool(t)
		default:
			// nested values carry no meaning for a filing column
			continue
		}
	}
	*r = row
	return nil
}

// Record is a filing after normalization. Every field is populated; text
// fields default to "" and names never come out blank.
type Record struct {
	ID                   string  `json:"id" yaml:"id"`
	ToOrganization       string  `json:"toOrganization" yaml:"toOrganization"`
	FromOrganizationName string  `json:"fromOrganizationName" yaml:"fromOrganizationName"`
	ContributorFirstName string  `json:"contributorFirstName" yaml:"contributorFirstName"`
	ContributorLastName  string  `json:"contributorLastName" yaml:"contributorLastName"`
	ContributorFullName  string  `json:"contributorFullName" yaml:"contributorFullName"`
	RecipientFirstName   string  `json:"recipientFirstName" yaml:"recipientFirstName"`
	RecipientLastName    string  `json:"recipientLastName" yaml:"recipientLastName"`
	RecipientFullName    string  `json:"recipientFullName" yaml:"recipientFullName"`
	OfficeSought         string  `json:"officeSought" yaml:"officeSought"`
	Location             string  `json:"location" yaml:"location"`
	ElectionDate         string  `json:"electionDate" yaml:"electionDate"`
	ElectionType         string  `json:"electionType" yaml:"electionType"`
	ExemptionStatus      string  `json:"exemptionStatus" yaml:"exemptionStatus"`
	Address1             string  `json:"address1" yaml:"address1"`
	Address2             string  `json:"address2" yaml:"address2"`
	City                 string  `json:"city" yaml:"city"`
	State                string  `json:"state" yaml:"state"`
	Zip                  string  `json:"zip" yaml:"zip"`
	Amount               float64 `json:"amount" yaml:"amount"`
	ContributionType     string  `json:"contributionType" yaml:"contributionType"`
	ContributionMode     string  `json:"contributionMode" yaml:"contributionMode"`
	Occupation           string  `json:"occupation" yaml:"occupation"`
	OtherOccupation      string  `json:"otherOccupation" yaml:"otherOccupation"`
	Employer             string  `json:"employer" yaml:"employer"`
	ReceiptDate          string  `json:"receiptDate" yaml:"receiptDate"`
}

// Normalize maps a raw row onto a Record. It never fails: missing columns
// become "", unusable amounts become 0 and empty names fall back to the
// organization and then to a fixed placeholder.
func Normalize(row RawRow, index int) Record {
	var rec Record
	for _, f := range textFields {
		f.assign(&rec, row.Get(f.column))
	}
	rec.Amount = ParseAmount(row.Get(FieldAmount))
	rec.ContributorFullName = FullName(rec.ContributorFirstName, rec.ContributorLastName, rec.FromOrganizationName, UnknownContributor)
	rec.RecipientFullName = FullName(rec.RecipientFirstName, rec.RecipientLastName, rec.ToOrganization, UnknownRecipient)
	rec.ID = RecordID(index, rec.ContributorFullName, rec.RecipientFullName, rec.ReceiptDate)
	return rec
}

// NormalizeAll normalizes rows in order, using the slice position as index.
func NormalizeAll(rows []RawRow) []Record {
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = Normalize(row, i)
	}
	return out
}

// FullName joins the non-empty name parts with a single space. When both are
// empty it uses the organization, and failing that the fallback literal.
func FullName(first, last, organization, fallback string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{strings.TrimSpace(first), strings.TrimSpace(last)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if name := strings.Join(parts, " "); name != "" {
		return name
	}
	if org := strings.TrimSpace(organization); org != "" {
		return org
	}
	return fallback
}

// RecordID builds the list key of a record. It is unique within one load
// because index is.
func RecordID(index int, contributor, recipient, receiptDate string) string {
	return strconv.Itoa(index) + "-" + contributor + "-" + recipient + "-" + receiptDate
}

// Place is the short location label of a record: "City, State" when the city
// is known, otherwise the free-form location.
func (r Record) Place() string {
	switch {
	case r.City != "" && r.State != "":
		return r.City + ", " + r.State
	case r.City != "":
		return r.City
	default:
		return r.Location
	}
}

// LocationKey is the bucket used by the overview's location ranking.
func (r Record) LocationKey() string {
	if r.City != "" && r.State != "" {
		return r.City + ", " + r.State
	}
	if r.Location != "" {
		return r.Location
	}
	return UnknownLocation
}
