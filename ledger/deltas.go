package ledger

import (
	"fmt"
	"strings"

	"github.com/zhang-accounting/ledger/ast"
	"github.com/shopspring/decimal"
)

// Delta Architecture
//
// This file defines lightweight "delta" structs that represent the mutations
// to be applied to the ledger state. Validators return these deltas instead of
// directly mutating state, keeping validation pure and making mutations explicit.
//
// Benefits:
//   - Pure validation: validators compute changes without side effects
//   - Inspectable: deltas are plain Go structs that can be logged/debugged
//   - Testable: can validate without applying, test deltas independently
//   - Replayable: can store deltas and replay them later
//   - Consistent: same pattern across all directive types

// InventoryOperation represents the type of inventory mutation
type InventoryOperation int

const (
	// OpAdd adds to inventory (augmentation)
	OpAdd InventoryOperation = iota
	// OpReduce removes from inventory (reduction)
	OpReduce
)

// String returns the string representation of the operation
func (op InventoryOperation) String() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpReduce:
		return "Reduce"
	default:
		return "Unknown"
	}
}

// InventoryChange represents a single change to an account's inventory
type InventoryChange struct {
	Account   string             // Account name
	Currency  string             // Currency/commodity
	Amount    decimal.Decimal    // Amount to add/remove (ALWAYS POSITIVE - operation indicates direction)
	LotSpec   *lotSpec           // Lot specification (nil for simple amounts)
	Operation InventoryOperation // Add or Reduce (determines sign)
}

// String returns a human-readable representation of the inventory change
func (ic *InventoryChange) String() string {
	var sb strings.Builder
	sb.WriteString(ic.Operation.String())
	sb.WriteString(" ")
	sb.WriteString(ic.Amount.String())
	sb.WriteString(" ")
	sb.WriteString(ic.Currency)

	if ic.LotSpec != nil && !ic.LotSpec.IsEmpty() {
		sb.WriteString(" ")
		sb.WriteString(ic.LotSpec.String())
	}

	sb.WriteString(" ")
	if ic.Operation == OpAdd {
		sb.WriteString("to")
	} else {
		sb.WriteString("from")
	}
	sb.WriteString(" ")
	sb.WriteString(ic.Account)

	return sb.String()
}

// TransactionDelta represents the mutations to be applied from a transaction.
// It contains both inferred values (amounts/costs) and the explicit list of
// inventory changes to be made.
type TransactionDelta struct {
	Transaction      *ast.Transaction             // Original transaction
	InferredAmounts  map[*ast.Posting]*ast.Amount // Amounts inferred for postings without explicit amounts
	InferredCosts    map[*ast.Posting]*ast.Amount // Costs inferred from balance residuals
	InventoryChanges []InventoryChange            // Explicit list of inventory mutations
}

// String returns a human-readable representation of the transaction delta
func (td *TransactionDelta) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Transaction on %s:\n", td.Transaction.Date.Format("2006-01-02")))

	if len(td.InferredAmounts) > 0 {
		sb.WriteString("  Inferred amounts:\n")
		for posting, amount := range td.InferredAmounts {
			sb.WriteString(fmt.Sprintf("    %s: %s %s\n", posting.Account, amount.Value, amount.Currency))
		}
	}

	if len(td.InferredCosts) > 0 {
		sb.WriteString("  Inferred costs:\n")
		for posting, cost := range td.InferredCosts {
			sb.WriteString(fmt.Sprintf("    %s: {%s %s}\n", posting.Account, cost.Value, cost.Currency))
		}
	}

	if len(td.InventoryChanges) > 0 {
		sb.WriteString("  Inventory changes:\n")
		for _, change := range td.InventoryChanges {
			sb.WriteString(fmt.Sprintf("    %s\n", change.String()))
		}
	}

	return sb.String()
}

// BalanceDelta represents the mutations to be applied from a balance assertion.
// It includes padding information if a pad directive is active for the account.
// The synthetic padding transaction (if any) is applied through the normal
// transaction pipeline rather than here, so this delta carries no direct
// inventory mutation of its own.
type BalanceDelta struct {
	AccountName           string
	Currency              string
	ExpectedAmount        decimal.Decimal
	ActualAmount          decimal.Decimal
	PaddingAdjustments    map[string]decimal.Decimal
	PadAccountName        string
	SyntheticTransaction  *ast.Transaction
	ShouldRemovePad       bool
}

// String returns a human-readable representation of the balance delta
func (bd *BalanceDelta) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Balance for %s:\n", bd.AccountName))
	sb.WriteString(fmt.Sprintf("  Expected: %s %s\n", bd.ExpectedAmount.String(), bd.Currency))
	sb.WriteString(fmt.Sprintf("  Actual: %s %s\n", bd.ActualAmount.String(), bd.Currency))

	if bd.SyntheticTransaction != nil {
		sb.WriteString(fmt.Sprintf("  Padding from: %s\n", bd.PadAccountName))
	}

	return sb.String()
}

// PadDelta represents storing a pad directive for later use.
// Pad directives are stored and applied when the next balance assertion is encountered.
type PadDelta struct {
	Pad         *ast.Pad // Original pad directive
	AccountName string   // Account name (for map key)
}

// String returns a human-readable representation of the pad delta
func (pd *PadDelta) String() string {
	return fmt.Sprintf("Store pad for %s (will pad from %s)", pd.Pad.Account, pd.Pad.AccountPad)
}

// OpenDelta represents opening an account. Validation computes these fields
// directly (rather than pre-building an *Account) so applyOpen can construct
// the account and its graph node in one step.
type OpenDelta struct {
	AccountName          string
	AccountType          ast.AccountType
	OpenDate             *ast.Date
	ConstraintCurrencies []string
	BookingMethod        string
	Metadata             []*ast.Metadata
}

// String returns a human-readable representation of the open delta
func (od *OpenDelta) String() string {
	return fmt.Sprintf("Open account %s on %s", od.AccountName, od.OpenDate.Format("2006-01-02"))
}

// CloseDelta represents closing an account.
type CloseDelta struct {
	Close       *ast.Close // Original close directive
	AccountName string     // Account name (for map lookup)
}

// String returns a human-readable representation of the close delta
func (cd *CloseDelta) String() string {
	return fmt.Sprintf("Close account %s on %s", cd.Close.Account, cd.Close.Date.Format("2006-01-02"))
}

// CommodityDelta represents declaring or upgrading a commodity node.
type CommodityDelta struct {
	CommodityID string
	Date        *ast.Date
	Metadata    []*ast.Metadata
}

// String returns a human-readable representation of the commodity delta
func (cd *CommodityDelta) String() string {
	return fmt.Sprintf("Commodity %s declared on %s", cd.CommodityID, cd.Date.Format("2006-01-02"))
}

// NoteDelta represents a note directive.
// Notes have no state mutations - they're for documentation only.
type NoteDelta struct {
	Note *ast.Note // Original note directive
}

// String returns a human-readable representation of the note delta
func (nd *NoteDelta) String() string {
	return fmt.Sprintf("Note for %s: %s", nd.Note.Account, nd.Note.Description)
}

// DocumentDelta represents a document directive.
// Documents have no state mutations - they're for documentation only.
type DocumentDelta struct {
	Document *ast.Document // Original document directive
}

// String returns a human-readable representation of the document delta
func (dd *DocumentDelta) String() string {
	return fmt.Sprintf("Document for %s: %s", dd.Document.Account, dd.Document.PathToDocument)
}

// BudgetDelta represents declaring a new budget.
type BudgetDelta struct {
	Name     string
	Currency string
	Date     *ast.Date
	Metadata []*ast.Metadata
}

// String returns a human-readable representation of the budget delta
func (bd *BudgetDelta) String() string {
	return fmt.Sprintf("Budget %s (%s) declared on %s", bd.Name, bd.Currency, bd.Date.Format("2006-01-02"))
}

// BudgetAddDelta represents assigning additional amount to a budget's current interval.
type BudgetAddDelta struct {
	Name      string
	Date      *ast.Date
	Amount    decimal.Decimal
	EventType BudgetEventType
}

// String returns a human-readable representation of the budget-add delta
func (bad *BudgetAddDelta) String() string {
	return fmt.Sprintf("Budget %s assigned %s on %s", bad.Name, bad.Amount, bad.Date.Format("2006-01-02"))
}

// BudgetTransferDelta represents moving assigned amount between two budgets.
type BudgetTransferDelta struct {
	Date   *ast.Date
	From   string
	To     string
	Amount decimal.Decimal
}

// String returns a human-readable representation of the budget-transfer delta
func (btd *BudgetTransferDelta) String() string {
	return fmt.Sprintf("Transfer %s from %s to %s on %s", btd.Amount, btd.From, btd.To, btd.Date.Format("2006-01-02"))
}

// BudgetCloseDelta represents closing a budget.
type BudgetCloseDelta struct {
	Name string
	Date *ast.Date
}

// String returns a human-readable representation of the budget-close delta
func (bcd *BudgetCloseDelta) String() string {
	return fmt.Sprintf("Budget %s closed on %s", bcd.Name, bcd.Date.Format("2006-01-02"))
}
