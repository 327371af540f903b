package ledger

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/zhang-accounting/ledger/ast"
	"github.com/zhang-accounting/ledger/formatter"
)

// ErrorKind identifies the category of a recoverable ledger error without a
// type switch, used by callers (the CLI, operations.Errors) that need to
// group or filter errors programmatically rather than pattern-match on Go types.
type ErrorKind string

const (
	KindUnbalancedTransaction               ErrorKind = "unbalanced-transaction"
	KindTransactionCannotInferTradeAmount    ErrorKind = "cannot-infer-trade-amount"
	KindTransactionHasMultipleImplicitPosting ErrorKind = "multiple-implicit-posting"
	KindTransactionExplicitPostingHaveMultipleCommodity ErrorKind = "multiple-commodity-posting"
	KindAccountBalanceCheckError             ErrorKind = "account-balance-check"
	KindAccountDoesNotExist                  ErrorKind = "account-does-not-exist"
	KindAccountClosed                        ErrorKind = "account-closed"
	KindCommodityDoesNotDefine               ErrorKind = "commodity-does-not-define"
	KindNoEnoughCommodityLot                 ErrorKind = "no-enough-commodity-lot"
	KindCloseNonZeroAccount                  ErrorKind = "close-non-zero-account"
	KindBudgetDoesNotExist                   ErrorKind = "budget-does-not-exist"
	KindDefineDuplicatedBudget                ErrorKind = "define-duplicated-budget"
	KindMultipleOperatingCurrencyDetect       ErrorKind = "multiple-operating-currency"
	KindParseInvalidMeta                     ErrorKind = "parse-invalid-meta"
	KindInvalidOptionValue                   ErrorKind = "invalid-option-value"
)

// LedgerError is implemented by every recoverable error the processor can raise.
// Recoverable errors are collected and attached to the directive that produced
// them rather than aborting the load (§7); Kind lets callers group them without
// a type switch and GetPosition/GetDirective let callers render source context.
type LedgerError interface {
	error
	Kind() ErrorKind
	GetPosition() ast.Position
	GetDirective() ast.Directive
}

// locationOrDate formats a filename:line location, falling back to the
// directive's date when no filename is available (constructed ASTs, tests).
func locationOrDate(pos ast.Position, date *ast.Date) string {
	if pos.Filename == "" {
		return date.Format("2006-01-02")
	}
	return fmt.Sprintf("%s:%d", pos.Filename, pos.Line)
}

// AccountNotOpenError is returned when a directive references an account that
// hasn't been opened, or is referenced before its open date / after its close date.
type AccountNotOpenError struct {
	Account   ast.Account
	Date      *ast.Date
	Pos       ast.Position
	Directive ast.Directive
}

func (e *AccountNotOpenError) Kind() ErrorKind          { return KindAccountDoesNotExist }
func (e *AccountNotOpenError) GetPosition() ast.Position { return e.Pos }
func (e *AccountNotOpenError) GetDirective() ast.Directive { return e.Directive }
func (e *AccountNotOpenError) GetAccount() ast.Account   { return e.Account }
func (e *AccountNotOpenError) GetDate() *ast.Date        { return e.Date }

func (e *AccountNotOpenError) Error() string {
	return fmt.Sprintf("%s: Invalid reference to unknown account '%s'", locationOrDate(e.Pos, e.Date), e.Account)
}

// FormatWithContext formats the full error message including the directive context.
func (e *AccountNotOpenError) FormatWithContext(f *formatter.Formatter) string {
	var buf bytes.Buffer
	buf.WriteString(e.Error())
	buf.WriteString("\n\n")

	if txn, ok := e.Directive.(*ast.Transaction); ok {
		var txnBuf bytes.Buffer
		directiveFormatter := formatter.New()
		if f != nil && f.CurrencyColumn > 0 {
			directiveFormatter = formatter.New(formatter.WithCurrencyColumn(f.CurrencyColumn))
		}
		if err := directiveFormatter.FormatTransaction(txn, &txnBuf); err == nil {
			indentLines(&buf, txnBuf.Bytes())
		}
	} else {
		buf.WriteString("   ")
		switch d := e.Directive.(type) {
		case *ast.Balance:
			fmt.Fprintf(&buf, "%s balance %s", d.Date.Format("2006-01-02"), d.Account)
			if d.Amount != nil {
				fmt.Fprintf(&buf, "  %s %s", d.Amount.Value, d.Amount.Currency)
			}
		case *ast.Pad:
			fmt.Fprintf(&buf, "%s pad %s %s", d.Date.Format("2006-01-02"), d.Account, d.AccountPad)
		case *ast.Note:
			fmt.Fprintf(&buf, "%s note %s %q", d.Date.Format("2006-01-02"), d.Account, d.Description)
		case *ast.Document:
			fmt.Fprintf(&buf, "%s document %s %q", d.Date.Format("2006-01-02"), d.Account, d.PathToDocument)
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}

func indentLines(buf *bytes.Buffer, data []byte) {
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(line) > 0 {
			buf.WriteString("   ")
			buf.Write(line)
			buf.WriteByte('\n')
		}
	}
}

func NewAccountNotOpenError(txn *ast.Transaction, account ast.Account) *AccountNotOpenError {
	return &AccountNotOpenError{Account: account, Date: txn.Date, Pos: txn.Pos, Directive: txn}
}

func NewAccountNotOpenErrorFromBalance(b *ast.Balance) *AccountNotOpenError {
	return &AccountNotOpenError{Account: b.Account, Date: b.Date, Pos: b.Pos, Directive: b}
}

func NewAccountNotOpenErrorFromPad(p *ast.Pad, account ast.Account) *AccountNotOpenError {
	return &AccountNotOpenError{Account: account, Date: p.Date, Pos: p.Pos, Directive: p}
}

func NewAccountNotOpenErrorFromNote(n *ast.Note) *AccountNotOpenError {
	return &AccountNotOpenError{Account: n.Account, Date: n.Date, Pos: n.Pos, Directive: n}
}

func NewAccountNotOpenErrorFromDocument(d *ast.Document) *AccountNotOpenError {
	return &AccountNotOpenError{Account: d.Account, Date: d.Date, Pos: d.Pos, Directive: d}
}

// AccountAlreadyOpenError is returned when trying to open an account that's already open.
type AccountAlreadyOpenError struct {
	Account    ast.Account
	Date       *ast.Date
	OpenedDate *ast.Date
	Directive  ast.Directive
}

func (e *AccountAlreadyOpenError) Kind() ErrorKind            { return KindAccountDoesNotExist }
func (e *AccountAlreadyOpenError) GetPosition() ast.Position   { return e.Directive.Position() }
func (e *AccountAlreadyOpenError) GetDirective() ast.Directive { return e.Directive }

func (e *AccountAlreadyOpenError) Error() string {
	return fmt.Sprintf("%s: Account %s is already open (opened on %s)",
		e.Date.Format("2006-01-02"), e.Account, e.OpenedDate.Format("2006-01-02"))
}

func NewAccountAlreadyOpenError(open *ast.Open, openedDate *ast.Date) *AccountAlreadyOpenError {
	return &AccountAlreadyOpenError{Account: open.Account, Date: open.Date, OpenedDate: openedDate, Directive: open}
}

// AccountAlreadyClosedError is returned when trying to use or close an account that's already closed.
type AccountAlreadyClosedError struct {
	Account    ast.Account
	Date       *ast.Date
	ClosedDate *ast.Date
	Directive  ast.Directive
}

func (e *AccountAlreadyClosedError) Kind() ErrorKind            { return KindAccountClosed }
func (e *AccountAlreadyClosedError) GetPosition() ast.Position   { return e.Directive.Position() }
func (e *AccountAlreadyClosedError) GetDirective() ast.Directive { return e.Directive }

func (e *AccountAlreadyClosedError) Error() string {
	return fmt.Sprintf("%s: Account %s is already closed (closed on %s)",
		e.Date.Format("2006-01-02"), e.Account, e.ClosedDate.Format("2006-01-02"))
}

func NewAccountAlreadyClosedError(close *ast.Close, closedDate *ast.Date) *AccountAlreadyClosedError {
	return &AccountAlreadyClosedError{Account: close.Account, Date: close.Date, ClosedDate: closedDate, Directive: close}
}

// AccountNotClosedError is returned when trying to close an account that was never opened.
type AccountNotClosedError struct {
	Account   ast.Account
	Date      *ast.Date
	Directive ast.Directive
}

func (e *AccountNotClosedError) Kind() ErrorKind            { return KindAccountDoesNotExist }
func (e *AccountNotClosedError) GetPosition() ast.Position   { return e.Directive.Position() }
func (e *AccountNotClosedError) GetDirective() ast.Directive { return e.Directive }

func (e *AccountNotClosedError) Error() string {
	return fmt.Sprintf("%s: Cannot close account %s that was never opened",
		e.Date.Format("2006-01-02"), e.Account)
}

func NewAccountNotClosedError(close *ast.Close) *AccountNotClosedError {
	return &AccountNotClosedError{Account: close.Account, Date: close.Date, Directive: close}
}

// CloseNonZeroAccountError is returned when a close directive is applied to an
// account that still carries a non-zero inventory balance. The close still
// proceeds (beancount convention), but the discrepancy is surfaced.
type CloseNonZeroAccountError struct {
	Account   ast.Account
	Date      *ast.Date
	Residuals map[string]string // currency -> remaining amount
	Directive ast.Directive
}

func (e *CloseNonZeroAccountError) Kind() ErrorKind            { return KindCloseNonZeroAccount }
func (e *CloseNonZeroAccountError) GetPosition() ast.Position   { return e.Directive.Position() }
func (e *CloseNonZeroAccountError) GetDirective() ast.Directive { return e.Directive }

func (e *CloseNonZeroAccountError) Error() string {
	currencies := make([]string, 0, len(e.Residuals))
	for c := range e.Residuals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	var parts bytes.Buffer
	for i, c := range currencies {
		if i > 0 {
			parts.WriteString(", ")
		}
		fmt.Fprintf(&parts, "%s %s", e.Residuals[c], c)
	}

	return fmt.Sprintf("%s: Account %s closed with non-zero balance (%s)",
		e.Date.Format("2006-01-02"), e.Account, parts.String())
}

func NewCloseNonZeroAccountError(close *ast.Close, residuals map[string]string) *CloseNonZeroAccountError {
	return &CloseNonZeroAccountError{Account: close.Account, Date: close.Date, Residuals: residuals, Directive: close}
}

// TransactionNotBalancedError is returned when a transaction doesn't balance.
type TransactionNotBalancedError struct {
	Date        *ast.Date
	Narration   string
	Residuals   map[string]string
	Transaction *ast.Transaction
}

func (e *TransactionNotBalancedError) Kind() ErrorKind            { return KindUnbalancedTransaction }
func (e *TransactionNotBalancedError) GetPosition() ast.Position   { return e.Transaction.Pos }
func (e *TransactionNotBalancedError) GetDirective() ast.Directive { return e.Transaction }

func (e *TransactionNotBalancedError) Error() string {
	return fmt.Sprintf("%s: Transaction does not balance: %s",
		locationOrDate(e.Transaction.Pos, e.Date), e.formatResiduals())
}

func (e *TransactionNotBalancedError) formatResiduals() string {
	if len(e.Residuals) == 0 {
		return ""
	}
	currencies := make([]string, 0, len(e.Residuals))
	for currency := range e.Residuals {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	result := "("
	for i, currency := range currencies {
		if i > 0 {
			result += ", "
		}
		result += fmt.Sprintf("%s %s", e.Residuals[currency], currency)
	}
	result += ")"
	return result
}

// FormatWithContext formats the full error message including the transaction context.
func (e *TransactionNotBalancedError) FormatWithContext(f *formatter.Formatter) string {
	var buf bytes.Buffer
	buf.WriteString(e.Error())
	buf.WriteString("\n\n")

	if e.Transaction != nil {
		txnFormatter := formatter.New()
		if f != nil && f.CurrencyColumn > 0 {
			txnFormatter = formatter.New(formatter.WithCurrencyColumn(f.CurrencyColumn))
		}
		var txnBuf bytes.Buffer
		if err := txnFormatter.FormatTransaction(e.Transaction, &txnBuf); err == nil {
			indentLines(&buf, txnBuf.Bytes())
		}
	}

	return buf.String()
}

func NewTransactionNotBalancedError(txn *ast.Transaction, residuals map[string]string) *TransactionNotBalancedError {
	return &TransactionNotBalancedError{Date: txn.Date, Narration: txn.Narration.Value, Residuals: residuals, Transaction: txn}
}

// TransactionHasMultipleImplicitPosting is returned when a transaction has
// more than one posting without an amount, making amount inference ambiguous.
type TransactionHasMultipleImplicitPosting struct {
	Date        *ast.Date
	Transaction *ast.Transaction
	Accounts    []ast.Account
}

func (e *TransactionHasMultipleImplicitPosting) Kind() ErrorKind {
	return KindTransactionHasMultipleImplicitPosting
}
func (e *TransactionHasMultipleImplicitPosting) GetPosition() ast.Position   { return e.Transaction.Pos }
func (e *TransactionHasMultipleImplicitPosting) GetDirective() ast.Directive { return e.Transaction }

func (e *TransactionHasMultipleImplicitPosting) Error() string {
	return fmt.Sprintf("%s: Transaction has %d postings without an amount; at most one is allowed",
		locationOrDate(e.Transaction.Pos, e.Date), len(e.Accounts))
}

func NewTransactionHasMultipleImplicitPosting(txn *ast.Transaction, accounts []ast.Account) *TransactionHasMultipleImplicitPosting {
	return &TransactionHasMultipleImplicitPosting{Date: txn.Date, Transaction: txn, Accounts: accounts}
}

// TransactionCannotInferTradeAmount is returned when a transaction has a
// single implicit posting but more than one residual currency, so the amount
// to infer for that posting is ambiguous.
type TransactionCannotInferTradeAmount struct {
	Date        *ast.Date
	Transaction *ast.Transaction
	Currencies  []string
}

func (e *TransactionCannotInferTradeAmount) Kind() ErrorKind {
	return KindTransactionCannotInferTradeAmount
}
func (e *TransactionCannotInferTradeAmount) GetPosition() ast.Position   { return e.Transaction.Pos }
func (e *TransactionCannotInferTradeAmount) GetDirective() ast.Directive { return e.Transaction }

func (e *TransactionCannotInferTradeAmount) Error() string {
	return fmt.Sprintf("%s: Cannot infer amount for implicit posting: residual spans %d currencies (%v)",
		locationOrDate(e.Transaction.Pos, e.Date), len(e.Currencies), e.Currencies)
}

func NewTransactionCannotInferTradeAmount(txn *ast.Transaction, currencies []string) *TransactionCannotInferTradeAmount {
	return &TransactionCannotInferTradeAmount{Date: txn.Date, Transaction: txn, Currencies: currencies}
}

// InvalidAmountError is returned when an amount cannot be parsed.
type InvalidAmountError struct {
	Date       *ast.Date
	Account    ast.Account
	Value      string
	Underlying error
	Directive  ast.Directive
}

func (e *InvalidAmountError) Kind() ErrorKind            { return KindParseInvalidMeta }
func (e *InvalidAmountError) GetPosition() ast.Position   { return e.Directive.Position() }
func (e *InvalidAmountError) GetDirective() ast.Directive { return e.Directive }

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("%s: Invalid amount %q for account %s: %v",
		e.Date.Format("2006-01-02"), e.Value, e.Account, e.Underlying)
}

func NewInvalidAmountError(txn *ast.Transaction, account ast.Account, value string, underlying error) *InvalidAmountError {
	return &InvalidAmountError{Date: txn.Date, Account: account, Value: value, Underlying: underlying, Directive: txn}
}

func NewInvalidAmountErrorFromBalance(b *ast.Balance, underlying error) *InvalidAmountError {
	return &InvalidAmountError{Date: b.Date, Account: b.Account, Value: b.Amount.Value, Underlying: underlying, Directive: b}
}

// BalanceMismatchError is returned when a balance assertion fails.
type BalanceMismatchError struct {
	Date      *ast.Date
	Account   ast.Account
	Expected  string
	Actual    string
	Currency  string
	Directive ast.Directive
}

func (e *BalanceMismatchError) Kind() ErrorKind            { return KindAccountBalanceCheckError }
func (e *BalanceMismatchError) GetPosition() ast.Position   { return e.Directive.Position() }
func (e *BalanceMismatchError) GetDirective() ast.Directive { return e.Directive }

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("%s: Balance mismatch for %s:\n  Expected: %s %s\n  Actual:   %s %s",
		e.Date.Format("2006-01-02"), e.Account,
		e.Expected, e.Currency,
		e.Actual, e.Currency)
}

func NewBalanceMismatchError(b *ast.Balance, expected, actual, currency string) *BalanceMismatchError {
	return &BalanceMismatchError{Date: b.Date, Account: b.Account, Expected: expected, Actual: actual, Currency: currency, Directive: b}
}

// InsufficientInventoryError is returned when a posting tries to reduce a lot
// by more than the account currently holds for that commodity/cost.
type InsufficientInventoryError struct {
	Payee     string
	Account   ast.Account
	Details   error
	Pos       ast.Position
	Date      *ast.Date
	Directive ast.Directive
}

func (e *InsufficientInventoryError) Kind() ErrorKind            { return KindNoEnoughCommodityLot }
func (e *InsufficientInventoryError) GetPosition() ast.Position   { return e.Pos }
func (e *InsufficientInventoryError) GetDirective() ast.Directive { return e.Directive }
func (e *InsufficientInventoryError) GetAccount() ast.Account     { return e.Account }
func (e *InsufficientInventoryError) GetDate() *ast.Date          { return e.Date }

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("%s: Insufficient inventory in %s: %v", locationOrDate(e.Pos, e.Date), e.Account, e.Details)
}

func NewInsufficientInventoryError(txn *ast.Transaction, account ast.Account, details error) *InsufficientInventoryError {
	return &InsufficientInventoryError{
		Payee:     txn.Payee.Value,
		Account:   account,
		Details:   details,
		Pos:       txn.Pos,
		Date:      txn.Date,
		Directive: txn,
	}
}

// CurrencyConstraintError is returned when a posting's currency isn't among
// the account's declared constraint currencies (the currencies listed on its open).
type CurrencyConstraintError struct {
	Payee             string
	Account           ast.Account
	Currency          string
	AllowedCurrencies []string
	Pos               ast.Position
	Date              *ast.Date
	Directive         ast.Directive
}

func (e *CurrencyConstraintError) Kind() ErrorKind            { return KindCommodityDoesNotDefine }
func (e *CurrencyConstraintError) GetPosition() ast.Position   { return e.Pos }
func (e *CurrencyConstraintError) GetDirective() ast.Directive { return e.Directive }
func (e *CurrencyConstraintError) GetAccount() ast.Account     { return e.Account }
func (e *CurrencyConstraintError) GetDate() *ast.Date          { return e.Date }

func (e *CurrencyConstraintError) Error() string {
	return fmt.Sprintf("%s: Currency %s not allowed in %s (allowed: %v)",
		locationOrDate(e.Pos, e.Date), e.Currency, e.Account, e.AllowedCurrencies)
}

func NewCurrencyConstraintError(txn *ast.Transaction, account ast.Account, currency string, allowed []string) *CurrencyConstraintError {
	return &CurrencyConstraintError{
		Payee:             txn.Payee.Value,
		Account:           account,
		Currency:          currency,
		AllowedCurrencies: allowed,
		Pos:               txn.Pos,
		Date:              txn.Date,
		Directive:         txn,
	}
}

// InvalidCostError is returned when a posting's cost specification is malformed
// (bad date, empty label, etc).
type InvalidCostError struct {
	Date        *ast.Date
	Account     ast.Account
	PostingIdx  int
	CostSpec    string
	Underlying  error
	Transaction *ast.Transaction
}

func (e *InvalidCostError) Kind() ErrorKind            { return KindParseInvalidMeta }
func (e *InvalidCostError) GetPosition() ast.Position   { return e.Transaction.Pos }
func (e *InvalidCostError) GetDirective() ast.Directive { return e.Transaction }

func (e *InvalidCostError) Error() string {
	return fmt.Sprintf("%s: Invalid cost %s for account %s (posting %d): %v",
		e.Date.Format("2006-01-02"), e.CostSpec, e.Account, e.PostingIdx, e.Underlying)
}

func NewInvalidCostError(txn *ast.Transaction, account ast.Account, postingIdx int, costSpec string, underlying error) *InvalidCostError {
	return &InvalidCostError{Date: txn.Date, Account: account, PostingIdx: postingIdx, CostSpec: costSpec, Underlying: underlying, Transaction: txn}
}

// InvalidPriceError is returned when a posting's price annotation is malformed.
type InvalidPriceError struct {
	Date        *ast.Date
	Account     ast.Account
	PostingIdx  int
	PriceSpec   string
	Underlying  error
	Transaction *ast.Transaction
}

func (e *InvalidPriceError) Kind() ErrorKind            { return KindParseInvalidMeta }
func (e *InvalidPriceError) GetPosition() ast.Position   { return e.Transaction.Pos }
func (e *InvalidPriceError) GetDirective() ast.Directive { return e.Transaction }

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("%s: Invalid price %s for account %s (posting %d): %v",
		e.Date.Format("2006-01-02"), e.PriceSpec, e.Account, e.PostingIdx, e.Underlying)
}

func NewInvalidPriceError(txn *ast.Transaction, account ast.Account, postingIdx int, priceSpec string, underlying error) *InvalidPriceError {
	return &InvalidPriceError{Date: txn.Date, Account: account, PostingIdx: postingIdx, PriceSpec: priceSpec, Underlying: underlying, Transaction: txn}
}

// InvalidMetadataError is returned for duplicate keys or empty values on a
// metadata entry attached to a transaction or one of its postings.
type InvalidMetadataError struct {
	Date        *ast.Date
	Account     ast.Account // empty when the metadata is on the transaction itself
	Key         string
	Value       *ast.MetadataValue
	Reason      string
	Transaction *ast.Transaction
}

func (e *InvalidMetadataError) Kind() ErrorKind            { return KindParseInvalidMeta }
func (e *InvalidMetadataError) GetPosition() ast.Position   { return e.Transaction.Pos }
func (e *InvalidMetadataError) GetDirective() ast.Directive { return e.Transaction }

func (e *InvalidMetadataError) Error() string {
	where := "transaction"
	if e.Account != "" {
		where = string(e.Account)
	}
	return fmt.Sprintf("%s: Invalid metadata key %q on %s: %s",
		e.Date.Format("2006-01-02"), e.Key, where, e.Reason)
}

func NewInvalidMetadataError(txn *ast.Transaction, account ast.Account, key string, value *ast.MetadataValue, reason string) *InvalidMetadataError {
	return &InvalidMetadataError{Date: txn.Date, Account: account, Key: key, Value: value, Reason: reason, Transaction: txn}
}

// UnusedPadWarning is returned when a pad directive was never consumed by a
// subsequent balance assertion on the same account.
type UnusedPadWarning struct {
	Pad *ast.Pad
}

func (e *UnusedPadWarning) Kind() ErrorKind            { return KindAccountBalanceCheckError }
func (e *UnusedPadWarning) GetPosition() ast.Position   { return e.Pad.Pos }
func (e *UnusedPadWarning) GetDirective() ast.Directive { return e.Pad }

func (e *UnusedPadWarning) Error() string {
	return fmt.Sprintf("%s: Pad for %s from %s was never used by a balance assertion",
		e.Pad.Date.Format("2006-01-02"), e.Pad.Account, e.Pad.AccountPad)
}

func NewUnusedPadWarning(pad *ast.Pad) *UnusedPadWarning {
	return &UnusedPadWarning{Pad: pad}
}

// BudgetDoesNotExistError is returned when a budget operation references a
// budget name that was never declared with a budget directive.
type BudgetDoesNotExistError struct {
	Name      string
	Date      *ast.Date
	Directive ast.Directive
}

func (e *BudgetDoesNotExistError) Kind() ErrorKind            { return KindBudgetDoesNotExist }
func (e *BudgetDoesNotExistError) GetPosition() ast.Position   { return e.Directive.Position() }
func (e *BudgetDoesNotExistError) GetDirective() ast.Directive { return e.Directive }

func (e *BudgetDoesNotExistError) Error() string {
	return fmt.Sprintf("%s: Budget %q does not exist", e.Date.Format("2006-01-02"), e.Name)
}

func NewBudgetDoesNotExistError(date *ast.Date, name string, directive ast.Directive) *BudgetDoesNotExistError {
	return &BudgetDoesNotExistError{Name: name, Date: date, Directive: directive}
}

// DefineDuplicatedBudgetError is returned when a budget directive redeclares
// a budget name that is already active.
type DefineDuplicatedBudgetError struct {
	Name      string
	Date      *ast.Date
	FirstDate *ast.Date
	Directive ast.Directive
}

func (e *DefineDuplicatedBudgetError) Kind() ErrorKind            { return KindDefineDuplicatedBudget }
func (e *DefineDuplicatedBudgetError) GetPosition() ast.Position   { return e.Directive.Position() }
func (e *DefineDuplicatedBudgetError) GetDirective() ast.Directive { return e.Directive }

func (e *DefineDuplicatedBudgetError) Error() string {
	return fmt.Sprintf("%s: Budget %q already defined (first declared on %s)",
		e.Date.Format("2006-01-02"), e.Name, e.FirstDate.Format("2006-01-02"))
}

func NewDefineDuplicatedBudgetError(date *ast.Date, name string, firstDate *ast.Date, directive ast.Directive) *DefineDuplicatedBudgetError {
	return &DefineDuplicatedBudgetError{Name: name, Date: date, FirstDate: firstDate, Directive: directive}
}

// MultipleOperatingCurrencyDetectError is returned when an option directive
// declares "operating_currency" more than once. Option isn't itself an
// ast.Directive (it carries no date or metadata), so this error tracks its
// own position rather than borrowing GetPosition from a Directive.
type MultipleOperatingCurrencyDetectError struct {
	Currencies []string
	Pos        ast.Position
}

func (e *MultipleOperatingCurrencyDetectError) Kind() ErrorKind { return KindMultipleOperatingCurrencyDetect }
func (e *MultipleOperatingCurrencyDetectError) GetPosition() ast.Position { return e.Pos }

// GetDirective always returns nil: the offending option directive has no
// Directive representation. Formatters that type-switch on it already
// handle a nil directive by falling back to the bare message.
func (e *MultipleOperatingCurrencyDetectError) GetDirective() ast.Directive { return nil }

func (e *MultipleOperatingCurrencyDetectError) Error() string {
	return fmt.Sprintf("operating_currency declared multiple times: %v", e.Currencies)
}

func NewMultipleOperatingCurrencyDetectError(currencies []string, pos ast.Position) *MultipleOperatingCurrencyDetectError {
	return &MultipleOperatingCurrencyDetectError{Currencies: currencies, Pos: pos}
}

// InvalidOptionValueError is returned by operations.Option when the stored
// string value for a key can't be parsed into the type the caller asked for.
type InvalidOptionValueError struct {
	Key   string
	Value string
	Err   error
}

func (e *InvalidOptionValueError) Kind() ErrorKind            { return KindInvalidOptionValue }
func (e *InvalidOptionValueError) GetPosition() ast.Position   { return ast.Position{} }
func (e *InvalidOptionValueError) GetDirective() ast.Directive { return nil }

func (e *InvalidOptionValueError) Error() string {
	return fmt.Sprintf("option %q: cannot parse value %q: %v", e.Key, e.Value, e.Err)
}

func NewInvalidOptionValueError(key, value string, err error) *InvalidOptionValueError {
	return &InvalidOptionValueError{Key: key, Value: value, Err: err}
}
