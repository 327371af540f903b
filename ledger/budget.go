package ledger

import (
	"context"
	"fmt"

	"github.com/zhang-accounting/ledger/ast"
	"github.com/shopspring/decimal"
)

// Budget tracks a named bucket for a single commodity, broken into monthly
// intervals keyed YYYYMM. Accounts opt in with metadata budget: NAME; their
// postings accumulate into the interval's activity_amount (see
// budgetAddActivity), while budget/budget-add/budget-transfer/budget-close
// directives drive assigned_amount and the closed flag.
//
// Grounded on the Operations budget methods in the original implementation
// (store.budgets keyed by name, detail keyed by month interval), re-expressed
// here with the Delta/Handler split the rest of this package uses instead of
// direct mutation.
type Budget struct {
	Name     string
	Currency string
	OpenDate *ast.Date
	Closed   bool
	Detail   map[int]*BudgetIntervalDetail // interval (YYYYMM) -> detail
}

// BudgetIntervalDetail holds one month's assigned and activity totals plus
// the event log that produced the assigned total.
type BudgetIntervalDetail struct {
	Interval       int
	AssignedAmount decimal.Decimal
	ActivityAmount decimal.Decimal
	Events         []*BudgetEvent
}

// BudgetEventType distinguishes a direct assignment from a transfer leg.
type BudgetEventType string

const (
	BudgetEventAddAssignedAmount BudgetEventType = "AddAssignedAmount"
	BudgetEventTransfer          BudgetEventType = "Transfer"
)

// BudgetEvent is a single entry in an interval's assignment log.
type BudgetEvent struct {
	Date      *ast.Date
	Amount    decimal.Decimal
	EventType BudgetEventType
}

// intervalFor derives the YYYYMM bucket a date falls into.
func intervalFor(date *ast.Date) int {
	return date.Year()*100 + int(date.Month())
}

// zeroIntervalDetail returns a fresh, empty detail for the given interval.
func zeroIntervalDetail(interval int) *BudgetIntervalDetail {
	return &BudgetIntervalDetail{
		Interval:       interval,
		AssignedAmount: decimal.Zero,
		ActivityAmount: decimal.Zero,
	}
}

// initBudget creates the budget if it doesn't already exist and ensures the
// interval containing date is initialized to zero. Mutates l.budgets.
func initBudget(l *Ledger, name, currency string, date *ast.Date) *Budget {
	budget, ok := l.budgets[name]
	if !ok {
		budget = &Budget{
			Name:     name,
			Currency: currency,
			OpenDate: date,
			Detail:   make(map[int]*BudgetIntervalDetail),
		}
		l.budgets[name] = budget
	}

	interval := intervalFor(date)
	if _, ok := budget.Detail[interval]; !ok {
		budget.Detail[interval] = zeroIntervalDetail(interval)
	}
	return budget
}

// budgetMonthDetail returns the detail for interval, carrying over from the
// latest prior interval if interval itself has no detail yet. Pure: does not
// mutate the budget. The carry-over detail has assigned = previous.assigned -
// previous.activity (what's left rolls forward), activity reset to zero.
func budgetMonthDetail(budget *Budget, interval int) *BudgetIntervalDetail {
	var latest *BudgetIntervalDetail
	for i, detail := range budget.Detail {
		if i > interval {
			continue
		}
		if latest == nil || i > latest.Interval {
			latest = detail
		}
	}
	if latest == nil {
		return nil
	}
	if latest.Interval == interval {
		return latest
	}
	return &BudgetIntervalDetail{
		Interval:       interval,
		AssignedAmount: latest.AssignedAmount.Sub(latest.ActivityAmount),
		ActivityAmount: decimal.Zero,
	}
}

// budgetAddAssignedAmount ensures interval exists (carrying over as above),
// adds amount to its assigned_amount, and appends an event recording it.
func budgetAddAssignedAmount(l *Ledger, name string, date *ast.Date, eventType BudgetEventType, amount decimal.Decimal) {
	budget := l.budgets[name]
	interval := intervalFor(date)

	detail, ok := budget.Detail[interval]
	if !ok {
		if carried := budgetMonthDetail(budget, interval); carried != nil {
			detail = carried
		} else {
			detail = zeroIntervalDetail(interval)
		}
		budget.Detail[interval] = detail
	}

	detail.AssignedAmount = detail.AssignedAmount.Add(amount)
	detail.Events = append(detail.Events, &BudgetEvent{Date: date, Amount: amount, EventType: eventType})
}

// budgetTransfer moves amount from one budget to another within the same
// interval: a pair of opposite-signed assignments, both logged as Transfer.
func budgetTransfer(l *Ledger, date *ast.Date, from, to string, amount decimal.Decimal) {
	budgetAddAssignedAmount(l, from, date, BudgetEventTransfer, amount.Neg())
	budgetAddAssignedAmount(l, to, date, BudgetEventTransfer, amount)
}

// budgetClose marks a budget as closed.
func budgetClose(l *Ledger, name string) {
	if budget, ok := l.budgets[name]; ok {
		budget.Closed = true
	}
}

// budgetAddActivity accumulates a transaction posting's amount into the
// activity_amount of the named budget's current interval, carrying over as
// needed. Called from applyTransaction for every posting whose account
// carries budget: NAME metadata; amount must already be signed by the
// account's normal sign.
func budgetAddActivity(l *Ledger, name string, date *ast.Date, amount decimal.Decimal) {
	budget, ok := l.budgets[name]
	if !ok {
		// Unknown budget names on postings are tolerated rather than fatal:
		// the transaction itself already validated independently of budgets.
		return
	}

	interval := intervalFor(date)
	detail, ok := budget.Detail[interval]
	if !ok {
		if carried := budgetMonthDetail(budget, interval); carried != nil {
			detail = carried
		} else {
			detail = zeroIntervalDetail(interval)
		}
		budget.Detail[interval] = detail
	}

	detail.ActivityAmount = detail.ActivityAmount.Add(amount)
}

// normalSign returns +1 for account types with a normal debit balance
// (Assets, Expenses) and -1 for the normal credit types (Liabilities,
// Equity, Income), so budget activity reads as positive "spend" regardless
// of which side of the books the posting sits on.
func normalSign(t ast.AccountType) decimal.Decimal {
	switch t {
	case ast.AccountTypeAssets, ast.AccountTypeExpenses:
		return decimal.New(1, 0)
	default:
		return decimal.New(-1, 0)
	}
}

// budgetNamesFromMetadata returns every value of a budget: key found in
// metadata. An account can belong to more than one budget.
func budgetNamesFromMetadata(metadata []*ast.Metadata) []string {
	var names []string
	for _, m := range metadata {
		if m.Key == "budget" && m.Value != nil && m.Value.StringValue != nil {
			names = append(names, m.Value.StringValue.Value)
		} else if m.Key == "budget" && m.Value != nil && m.Value.Currency != nil {
			names = append(names, *m.Value.Currency)
		}
	}
	return names
}

// BudgetHandler processes Budget directives.
type BudgetHandler struct{}

func (h *BudgetHandler) Validate(ctx context.Context, l *Ledger, d ast.Directive) ([]error, any) {
	budget := d.(*ast.Budget)

	if existing, ok := l.budgets[budget.Name]; ok {
		return []error{NewDefineDuplicatedBudgetError(budget.Date, budget.Name, existing.OpenDate, budget)}, nil
	}

	return nil, &BudgetDelta{
		Name:     budget.Name,
		Currency: budget.Currency,
		Date:     budget.Date,
		Metadata: budget.Metadata,
	}
}

func (h *BudgetHandler) Apply(ctx context.Context, l *Ledger, d ast.Directive, delta any) {
	bd := delta.(*BudgetDelta)
	initBudget(l, bd.Name, bd.Currency, bd.Date)
}

// BudgetAddHandler processes BudgetAdd directives.
type BudgetAddHandler struct{}

func (h *BudgetAddHandler) Validate(ctx context.Context, l *Ledger, d ast.Directive) ([]error, any) {
	add := d.(*ast.BudgetAdd)

	if _, ok := l.budgets[add.Name]; !ok {
		return []error{NewBudgetDoesNotExistError(add.Date, add.Name, add)}, nil
	}

	amount, err := ParseAmount(add.Amount)
	if err != nil {
		return []error{fmt.Errorf("%s: invalid budget-add amount: %w", add.Date.Format("2006-01-02"), err)}, nil
	}

	return nil, &BudgetAddDelta{
		Name:      add.Name,
		Date:      add.Date,
		Amount:    amount,
		EventType: BudgetEventAddAssignedAmount,
	}
}

func (h *BudgetAddHandler) Apply(ctx context.Context, l *Ledger, d ast.Directive, delta any) {
	bad := delta.(*BudgetAddDelta)
	budgetAddAssignedAmount(l, bad.Name, bad.Date, bad.EventType, bad.Amount)
}

// BudgetTransferHandler processes BudgetTransfer directives.
type BudgetTransferHandler struct{}

func (h *BudgetTransferHandler) Validate(ctx context.Context, l *Ledger, d ast.Directive) ([]error, any) {
	transfer := d.(*ast.BudgetTransfer)

	var errs []error
	if _, ok := l.budgets[transfer.From]; !ok {
		errs = append(errs, NewBudgetDoesNotExistError(transfer.Date, transfer.From, transfer))
	}
	if _, ok := l.budgets[transfer.To]; !ok {
		errs = append(errs, NewBudgetDoesNotExistError(transfer.Date, transfer.To, transfer))
	}
	if len(errs) > 0 {
		return errs, nil
	}

	amount, err := ParseAmount(transfer.Amount)
	if err != nil {
		return []error{fmt.Errorf("%s: invalid budget-transfer amount: %w", transfer.Date.Format("2006-01-02"), err)}, nil
	}

	return nil, &BudgetTransferDelta{
		Date:   transfer.Date,
		From:   transfer.From,
		To:     transfer.To,
		Amount: amount,
	}
}

func (h *BudgetTransferHandler) Apply(ctx context.Context, l *Ledger, d ast.Directive, delta any) {
	btd := delta.(*BudgetTransferDelta)
	budgetTransfer(l, btd.Date, btd.From, btd.To, btd.Amount)
}

// BudgetCloseHandler processes BudgetClose directives.
type BudgetCloseHandler struct{}

func (h *BudgetCloseHandler) Validate(ctx context.Context, l *Ledger, d ast.Directive) ([]error, any) {
	close := d.(*ast.BudgetClose)

	if _, ok := l.budgets[close.Name]; !ok {
		return []error{NewBudgetDoesNotExistError(close.Date, close.Name, close)}, nil
	}

	return nil, &BudgetCloseDelta{Name: close.Name, Date: close.Date}
}

func (h *BudgetCloseHandler) Apply(ctx context.Context, l *Ledger, d ast.Directive, delta any) {
	bcd := delta.(*BudgetCloseDelta)
	budgetClose(l, bcd.Name)
}
