// Package validation holds the field rules for policy submissions.
// Rules are pure: they never touch storage and take "today" as an argument.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field identifiers, matching the JSON names of the create request.
const (
	FieldCustomerName      = "customerName"
	FieldDob               = "dob"
	FieldGender            = "gender"
	FieldMobile            = "mobile"
	FieldEmail             = "email"
	FieldAddress           = "address"
	FieldPlanType          = "planType"
	FieldPanNumber         = "panNumber"
	FieldMembersCount      = "membersCount"
	FieldMedicalConditions = "medicalConditions"
	FieldNomineeName       = "nomineeName"
	FieldPremium           = "premium"
	FieldPolicyStartDate   = "policyStartDate"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var (
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	panPattern    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

// Submission is a candidate policy as entered by the agent.
// Dates are calendar dates; nil means the field was not provided.
type Submission struct {
	CustomerName      string
	Dob               *time.Time
	Gender            string
	Mobile            string
	Email             string
	Address           string
	PlanType          string
	PanNumber         string
	MembersCount      int
	MedicalConditions string
	NomineeName       string
	Premium           string
	PolicyStartDate   *time.Time
}

// Rule fails a field when Fails returns true, reporting Message.
type Rule struct {
	Fails   func(s Submission, today time.Time) bool
	Message string
}

// RuleSet maps a field to its rules. Rules of one field run in order and
// stop at the first failure; fields are independent of each other.
type RuleSet map[string][]Rule

// Errors maps a field to the message of its first failing rule.
type Errors map[string]string

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return strings.Join(parts, "; ")
}

// Check evaluates every field of the set against s.
func (rs RuleSet) Check(s Submission, today time.Time) Errors {
	errs := Errors{}
	for field, rules := range rs {
		for _, r := range rules {
			if r.Fails(s, today) {
				errs[field] = r.Message
				break
			}
		}
	}
	return errs
}

// Without returns a copy of the set minus the given fields.
func (rs RuleSet) Without(fields ...string) RuleSet {
	out := make(RuleSet, len(rs))
	for f, r := range rs {
		out[f] = r
	}
	for _, f := range fields {
		delete(out, f)
	}
	return out
}

// FormRules are the rules a submission must pass before it is sent.
var FormRules = RuleSet{
	FieldCustomerName: {blank(func(s Submission) string { return s.CustomerName })},
	FieldDob: {
		{Fails: func(s Submission, _ time.Time) bool { return s.Dob == nil }, Message: "Required."},
		{Fails: func(s Submission, today time.Time) bool { return !Day(*s.Dob).Before(Day(today)) }, Message: "Must be in the past."},
	},
	FieldGender: {absent(func(s Submission) string { return s.Gender })},
	FieldMobile: {
		absent(func(s Submission) string { return s.Mobile }),
		{Fails: func(s Submission, _ time.Time) bool { return !mobilePattern.MatchString(s.Mobile) }, Message: "Invalid 10-digit number."},
	},
	FieldEmail: {
		absent(func(s Submission) string { return s.Email }),
		{Fails: func(s Submission, _ time.Time) bool { return !emailPattern.MatchString(s.Email) }, Message: "Invalid email."},
	},
	FieldAddress:  {blank(func(s Submission) string { return s.Address })},
	FieldPlanType: {absent(func(s Submission) string { return s.PlanType })},
	FieldPanNumber: {
		absent(func(s Submission) string { return s.PanNumber }),
		{Fails: func(s Submission, _ time.Time) bool { return !panPattern.MatchString(s.PanNumber) }, Message: "Invalid PAN (e.g. ABCDE1234F)."},
	},
	FieldMembersCount: {
		{Fails: func(s Submission, _ time.Time) bool { return s.MembersCount == 0 }, Message: "Required."},
		{Fails: func(s Submission, _ time.Time) bool { return s.MembersCount < 0 }, Message: "Must be a positive number."},
	},
	FieldMedicalConditions: {absent(func(s Submission) string { return s.MedicalConditions })},
	FieldNomineeName:       {blank(func(s Submission) string { return s.NomineeName })},
	FieldPremium: {
		absent(func(s Submission) string { return s.Premium }),
		{Fails: func(s Submission, _ time.Time) bool { return !positive(s.Premium) }, Message: "Must be > 0."},
		{Fails: func(s Submission, _ time.Time) bool { return !cents(s.Premium) }, Message: "At most 2 decimal places."},
		{Fails: func(s Submission, _ time.Time) bool { return !belowMaxPremium(s.Premium) }, Message: "Must be less than 100000000."},
	},
	FieldPolicyStartDate: {
		{Fails: func(s Submission, _ time.Time) bool { return s.PolicyStartDate == nil }, Message: "Required."},
		{Fails: func(s Submission, today time.Time) bool { return Day(*s.PolicyStartDate).Before(Day(today)) }, Message: "Cannot be in the past."},
	},
}

// ServerRules re-validate a request on the server. A missing
// medicalConditions token is stored as false, so it is not required there.
var ServerRules = FormRules.Without(FieldMedicalConditions)

// Validate checks s against FormRules.
func Validate(s Submission, today time.Time) Errors {
	return FormRules.Check(s, today)
}

func absent(get func(Submission) string) Rule {
	return Rule{
		Fails:   func(s Submission, _ time.Time) bool { return get(s) == "" },
		Message: "Required.",
	}
}

func blank(get func(Submission) string) Rule {
	return Rule{
		Fails:   func(s Submission, _ time.Time) bool { return strings.TrimSpace(get(s)) == "" },
		Message: "Required.",
	}
}

func positive(amount string) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return false
	}
	return d.IsPositive()
}

// MaxPremium is the first amount that does not fit the decimal(10,2) premium column.
var MaxPremium = decimal.New(1, 8)

// cents reports whether amount has no non-zero digits past the second decimal place.
func cents(amount string) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return false
	}
	return d.Equal(d.Round(2))
}

func belowMaxPremium(amount string) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return false
	}
	return d.LessThan(MaxPremium)
}

// Day truncates t to its calendar date, keeping the date as seen in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date. An RFC 3339 timestamp is
// accepted too and reduced to its calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(DateLayout, s)
	if err == nil {
		return d, nil
	}
	if ts, tsErr := time.Parse(time.RFC3339, s); tsErr == nil {
		return Day(ts), nil
	}
	return time.Time{}, err
}

// NormalizePAN trims and upper-cases a PAN before it is checked or stored.
func NormalizePAN(pan string) string {
	return strings.ToUpper(strings.TrimSpace(pan))
}
