package analyzer

import (
	"strconv"

	"github.com/shopspring/decimal"

	"telcheck/internal/domain"
	"telcheck/internal/i18n"
	"telcheck/internal/money"
)

const (
	reminderScore = 20
	startScore    = 85
	// greenFloor is the lowest score that may still be shown as green.
	greenFloor = 70

	totalUnknownCeiling = 60
	highAmountCeiling   = 55
	dueDateCeiling      = 65
	noItemsCeiling      = 60
)

// DefaultHighAmount is the total from which an invoice is flagged yellow.
var DefaultHighAmount = decimal.NewFromInt(150)

// RiskInput is everything the traffic light looks at.
type RiskInput struct {
	DocumentType domain.DocumentType
	Total        *domain.MonetaryAmount
	DueDate      string
	ItemCount    int
}

// RiskStep is the state of an evaluation after one rule.
type RiskStep struct {
	Rule   string
	Status domain.RiskStatus
	Score  int
}

type riskState struct {
	status  domain.RiskStatus
	score   int
	reasons []string
}

// tighten worsens the status and caps the score. Neither can improve.
func (st *riskState) tighten(status domain.RiskStatus, ceiling int, reason string) {
	st.status = st.status.Worse(status)
	if ceiling < st.score {
		st.score = ceiling
	}
	st.reasons = append(st.reasons, reason)
}

func (st *riskState) note(reason string) {
	st.reasons = append(st.reasons, reason)
}

type riskRule struct {
	name  string
	apply func(s *Scorer, in RiskInput, st *riskState, loc *i18n.Localizer)
}

// riskRules run in this order after the reminder check.
var riskRules = []riskRule{
	{name: "total", apply: (*Scorer).applyTotal},
	{name: "due_date", apply: (*Scorer).applyDueDate},
	{name: "items", apply: (*Scorer).applyItems},
}

// Scorer computes the traffic light of a document.
type Scorer struct {
	highAmount decimal.Decimal
}

// NewScorer creates a Scorer flagging totals at or above highAmount.
func NewScorer(highAmount decimal.Decimal) *Scorer {
	return &Scorer{highAmount: highAmount}
}

// Evaluate returns the risk assessment for in.
func (s *Scorer) Evaluate(in RiskInput, loc *i18n.Localizer) domain.RiskAssessment {
	a, _ := s.Trace(in, loc)
	return a
}

// Trace is Evaluate that also returns the state after every applied rule.
func (s *Scorer) Trace(in RiskInput, loc *i18n.Localizer) (domain.RiskAssessment, []RiskStep) {
	if in.DocumentType == domain.DocumentTypePaymentReminder {
		return domain.RiskAssessment{
				Status:  domain.RiskRed,
				Score:   reminderScore,
				Reasons: []string{loc.T("risk.reminder")},
			}, []RiskStep{
				{Rule: "reminder", Status: domain.RiskRed, Score: reminderScore},
			}
	}

	st := &riskState{status: domain.RiskGreen, score: startScore, reasons: []string{}}
	steps := []RiskStep{{Rule: "start", Status: st.status, Score: st.score}}
	for _, r := range riskRules {
		r.apply(s, in, st, loc)
		steps = append(steps, RiskStep{Rule: r.name, Status: st.status, Score: st.score})
	}
	if st.status == domain.RiskGreen && st.score < greenFloor {
		st.status = domain.RiskYellow
		steps = append(steps, RiskStep{Rule: "green_floor", Status: st.status, Score: st.score})
	}

	return domain.RiskAssessment{Status: st.status, Score: st.score, Reasons: st.reasons}, steps
}

func (s *Scorer) applyTotal(in RiskInput, st *riskState, loc *i18n.Localizer) {
	if in.Total == nil {
		st.tighten(domain.RiskYellow, totalUnknownCeiling, loc.T("risk.total_unknown"))
		return
	}
	st.note(loc.T("risk.total_found", map[string]string{"amount": in.Total.Display}))
	if in.Total.Value.GreaterThanOrEqual(s.highAmount) {
		st.tighten(domain.RiskYellow, highAmountCeiling,
			loc.T("risk.high_amount", map[string]string{"threshold": money.Format(s.highAmount)}))
	}
}

func (s *Scorer) applyDueDate(in RiskInput, st *riskState, loc *i18n.Localizer) {
	if in.DueDate != "" {
		st.note(loc.T("risk.due_date_found", map[string]string{"date": in.DueDate}))
		return
	}
	st.tighten(domain.RiskYellow, dueDateCeiling, loc.T("risk.due_date_missing"))
}

func (s *Scorer) applyItems(in RiskInput, st *riskState, loc *i18n.Localizer) {
	if in.ItemCount == 0 {
		st.tighten(domain.RiskYellow, noItemsCeiling, loc.T("risk.no_items"))
		return
	}
	st.note(loc.T("risk.items_found", map[string]string{"count": strconv.Itoa(in.ItemCount)}))
}
