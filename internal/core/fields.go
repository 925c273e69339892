package core

// Column names used by the filings export. Casing and embedded spaces are
// significant; any of them may be missing from a given row.
const (
	FieldToOrganization       = "To Organization"
	FieldFromOrganizationName = "From Organization Name"
	FieldContributorFirstName = "Contributor First Name"
	FieldContributorLastName  = "Contributor Last Name"
	FieldRecipientFirstName   = "Recipient First Name"
	FieldRecipientLastName    = "Recipient Last Name"
	FieldOfficeSought         = "Office Sought"
	FieldLocation             = "Location"
	FieldElectionDate         = "Election Date"
	FieldElectionType         = "Election Type"
	FieldExemptionStatus      = "Exemption Status"
	FieldAddress1             = "Address 1"
	FieldAddress2             = "Address 2"
	FieldCity                 = "City"
	FieldState                = "State"
	FieldZip                  = "Zip"
	FieldAmount               = "Amount"
	FieldContributionType     = "Contribution Type"
	FieldContributionMode     = "Contribution Mode"
	FieldOccupation           = "Occupation"
	FieldOtherOccupation      = "Other Occupation"
	FieldEmployer             = "Employer"
	FieldReceiptDate          = "Receipt Date"
)

// textField binds one raw column to the Record attribute it populates.
type textField struct {
	column string
	assign func(*Record, string)
}

// textFields is the exhaustive mapping of plain text columns. Names and the
// amount are resolved separately by Normalize.
var textFields = []textField{
	{FieldToOrganization, func(r *Record, v string) { r.ToOrganization = v }},
	{FieldFromOrganizationName, func(r *Record, v string) { r.FromOrganizationName = v }},
	{FieldContributorFirstName, func(r *Record, v string) { r.ContributorFirstName = v }},
	{FieldContributorLastName, func(r *Record, v string) { r.ContributorLastName = v }},
	{FieldRecipientFirstName, func(r *Record, v string) { r.RecipientFirstName = v }},
	{FieldRecipientLastName, func(r *Record, v string) { r.RecipientLastName = v }},
	{FieldOfficeSought, func(r *Record, v string) { r.OfficeSought = v }},
	{FieldLocation, func(r *Record, v string) { r.Location = v }},
	{FieldElectionDate, func(r *Record, v string) { r.ElectionDate = v }},
	{FieldElectionType, func(r *Record, v string) { r.ElectionType = v }},
	{FieldExemptionStatus, func(r *Record, v string) { r.ExemptionStatus = v }},
	{FieldAddress1, func(r *Record, v string) { r.Address1 = v }},
	{FieldAddress2, func(r *Record, v string) { r.Address2 = v }},
	{FieldCity, func(r *Record, v string) { r.City = v }},
	{FieldState, func(r *Record, v string) { r.State = v }},
	{FieldZip, func(r *Record, v string) { r.Zip = v }},
	{FieldContributionType, func(r *Record, v string) { r.ContributionType = v }},
	{FieldContributionMode, func(r *Record, v string) { r.ContributionMode = v }},
	{FieldOccupation, func(r *Record, v string) { r.Occupation = v }},
	{FieldOtherOccupation, func(r *Record, v string) { r.OtherOccupation = v }},
	{FieldEmployer, func(r *Record, v string) { r.Employer = v }},
	{FieldReceiptDate, func(r *Record, v string) { r.ReceiptDate = v }},
}

// Columns returns every known column name in export order.
func Columns() []string {
	cols := make([]string, 0, len(textFields)+1)
	for _, f := range textFields {
		cols = append(cols, f.column)
		if f.column == FieldZip {
			cols = append(cols, FieldAmount)
		}
	}
	return cols
}
