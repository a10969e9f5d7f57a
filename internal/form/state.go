// Package form holds the state of one churn prediction form: the record being
// edited, the most recent outcome or error, and whether a submission is in
// flight.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/f3rmion/churn/internal/churn"
	"github.com/f3rmion/churn/internal/predict"
)

// Field identifies one input of the form.
type Field int

const (
	FieldCustomerAge Field = iota
	FieldSex
	FieldTenure
	FieldServiceUsageRate
	FieldSupportCalls
	FieldBillingDelay
	FieldPlanType
	FieldAgreementDuration
	FieldTotalExpenditure
	FieldRecentActivity
)

// Fields in display order.
var Fields = []Field{
	FieldCustomerAge,
	FieldSex,
	FieldTenure,
	FieldServiceUsageRate,
	FieldSupportCalls,
	FieldBillingDelay,
	FieldPlanType,
	FieldAgreementDuration,
	FieldTotalExpenditure,
	FieldRecentActivity,
}

var fieldLabels = map[Field]string{
	FieldCustomerAge:       "Customer Age",
	FieldSex:               "Sex",
	FieldTenure:            "Tenure (months)",
	FieldServiceUsageRate:  "Service Usage Rate",
	FieldSupportCalls:      "Support Calls",
	FieldBillingDelay:      "Billing Delay",
	FieldPlanType:          "Plan Type",
	FieldAgreementDuration: "Agreement Duration",
	FieldTotalExpenditure:  "Total Expenditure",
	FieldRecentActivity:    "Recent Activity",
}

// Label returns the field's display name.
func (f Field) Label() string { return fieldLabels[f] }

// IsChoice reports whether the field takes one of a fixed set of names.
func (f Field) IsChoice() bool {
	return f == FieldSex || f == FieldPlanType || f == FieldAgreementDuration
}

// Choices returns the allowed names of a choice field, nil otherwise.
func (f Field) Choices() []string {
	var out []string
	switch f {
	case FieldSex:
		for _, v := range churn.Sexes {
			out = append(out, string(v))
		}
	case FieldPlanType:
		for _, v := range churn.PlanTypes {
			out = append(out, string(v))
		}
	case FieldAgreementDuration:
		for _, v := range churn.AgreementDurations {
			out = append(out, string(v))
		}
	}
	return out
}

// Runner produces an outcome for a record. *predict.Pipeline is a Runner.
type Runner interface {
	Run(ctx context.Context, r churn.FormRecord) (churn.Outcome, error)
}

// State is the form's mutable state. It is safe for concurrent use.
type State struct {
	mu       sync.Mutex
	record   churn.FormRecord
	outcome  *churn.Outcome
	errMsg   string
	inFlight bool
}

// New returns a form with default values and nothing submitted.
func New() *State {
	return &State{record: churn.DefaultRecord()}
}

// Record returns a copy of the record being edited.
func (s *State) Record() churn.FormRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// SetRecord replaces every field at once.
func (s *State) SetRecord(r churn.FormRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = r
}

// Reset restores the default record. The last outcome stays visible.
func (s *State) Reset() {
	s.SetRecord(churn.DefaultRecord())
}

// Value returns the text shown for field f.
func (s *State) Value(f Field) string {
	r := s.Record()
	switch f {
	case FieldCustomerAge:
		return churn.FormatNumber(r.CustomerAge)
	case FieldSex:
		return string(r.Sex)
	case FieldTenure:
		return churn.FormatNumber(r.Tenure)
	case FieldServiceUsageRate:
		return churn.FormatNumber(r.ServiceUsageRate)
	case FieldSupportCalls:
		return churn.FormatNumber(r.SupportCalls)
	case FieldBillingDelay:
		return churn.FormatNumber(r.BillingDelay)
	case FieldPlanType:
		return string(r.PlanType)
	case FieldAgreementDuration:
		return string(r.AgreementDuration)
	case FieldTotalExpenditure:
		return churn.FormatNumber(r.TotalExpenditure)
	case FieldRecentActivity:
		return churn.FormatNumber(r.RecentActivity)
	}
	return ""
}

// Set updates field f from text. Numeric text that does not parse is stored
// as NaN; only unknown choice names are rejected.
func (s *State) Set(f Field, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &s.record
	switch f {
	case FieldCustomerAge:
		r.CustomerAge = churn.ParseNumber(text)
	case FieldTenure:
		r.Tenure = churn.ParseNumber(text)
	case FieldServiceUsageRate:
		r.ServiceUsageRate = churn.ParseNumber(text)
	case FieldSupportCalls:
		r.SupportCalls = churn.ParseNumber(text)
	case FieldBillingDelay:
		r.BillingDelay = churn.ParseNumber(text)
	case FieldTotalExpenditure:
		r.TotalExpenditure = churn.ParseNumber(text)
	case FieldRecentActivity:
		r.RecentActivity = churn.ParseNumber(text)
	case FieldSex:
		v, err := churn.ParseSex(text)
		if err != nil {
			return err
		}
		r.Sex = v
	case FieldPlanType:
		v, err := churn.ParsePlanType(text)
		if err != nil {
			return err
		}
		r.PlanType = v
	case FieldAgreementDuration:
		v, err := churn.ParseAgreementDuration(text)
		if err != nil {
			return err
		}
		r.AgreementDuration = v
	default:
		return fmt.Errorf("unknown field %d", f)
	}
	return nil
}

// Cycle moves a choice field to the next (delta > 0) or previous choice.
func (s *State) Cycle(f Field, delta int) {
	choices := f.Choices()
	if len(choices) == 0 {
		return
	}
	cur := s.Value(f)
	idx := 0
	for i, c := range choices {
		if c == cur {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(choices) + len(choices)) % len(choices)
	_ = s.Set(f, choices[idx])
}

// InFlight reports whether a submission is running.
func (s *State) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Outcome returns the most recent successful outcome, if any.
func (s *State) Outcome() (churn.Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome == nil {
		return churn.Outcome{}, false
	}
	return *s.outcome, true
}

// Error returns the message of the most recent failed submission.
func (s *State) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Begin starts a submission and returns the record to send. It returns false
// and does nothing if a submission is already in flight.
func (s *State) Begin() (churn.FormRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return churn.FormRecord{}, false
	}
	s.inFlight = true
	s.errMsg = ""
	return s.record, true
}

// Finish ends the submission started by Begin. A success replaces the shown
// outcome; a failure replaces it with the generic error message.
func (s *State) Finish(out churn.Outcome, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		s.outcome = nil
		s.errMsg = predict.UserMessage
		return
	}
	s.outcome = &out
	s.errMsg = ""
}

// Submit runs one submission through r and blocks until it completes.
// It returns false without calling r when another submission is in flight.
func (s *State) Submit(ctx context.Context, r Runner) bool {
	rec, ok := s.Begin()
	if !ok {
		return false
	}
	s.Complete(ctx, r, rec)
	return true
}

// Complete runs rec, obtained from Begin, through r and always calls Finish,
// even if r panics.
func (s *State) Complete(ctx context.Context, r Runner, rec churn.FormRecord) {
	var (
		out churn.Outcome
		err = errAborted
	)
	defer func() { s.Finish(out, err) }()

	out, err = r.Run(ctx, rec)
}

var errAborted = errors.New("submission aborted")
