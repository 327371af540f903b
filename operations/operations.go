// Package operations is the read-only query API over a processed ledger.
//
// Every method is a snapshot read against the *ledger.Ledger it wraps: no
// method mutates the ledger, and none of them re-walk the source AST — they
// all read back state the ledger package already accumulated while
// processing directives (account postings, budgets, prices, errors).
// Callers that also reload the ledger concurrently are responsible for
// guarding the swap (see the top-level reload facade); Queries itself holds
// no lock of its own.
package operations

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/zhang-accounting/ledger/ast"
	"github.com/zhang-accounting/ledger/ledger"
	"github.com/shopspring/decimal"
)

// Queries is a read handle over a single processed ledger.
type Queries struct {
	ledger *ledger.Ledger
}

// New wraps l for querying.
func New(l *ledger.Ledger) *Queries {
	return &Queries{ledger: l}
}

// Option parses the stored string value of key into T. Supported T are
// string, bool, int, and decimal.Decimal; anything else panics, since that's
// a programmer error (a type the option schema was never meant to carry),
// not a data error.
func Option[T any](q *Queries, key string) (T, error) {
	var zero T

	raw, ok := q.ledger.Config().OptionValue(key)
	if !ok {
		return zero, nil
	}

	switch any(zero).(type) {
	case string:
		return any(raw).(T), nil
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, ledger.NewInvalidOptionValueError(key, raw, err)
		}
		return any(v).(T), nil
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, ledger.NewInvalidOptionValueError(key, raw, err)
		}
		return any(v).(T), nil
	case decimal.Decimal:
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return zero, ledger.NewInvalidOptionValueError(key, raw, err)
		}
		return any(v).(T), nil
	default:
		panic(fmt.Sprintf("operations.Option: unsupported type %T for key %q", zero, key))
	}
}

// Account looks up a single account by name.
func (q *Queries) Account(name string) (*ledger.Account, bool) {
	return q.ledger.GetAccount(name)
}

// AllOpenAccounts returns every account with no close date, sorted by name.
func (q *Queries) AllOpenAccounts() []*ledger.Account {
	all := q.ledger.Accounts()
	names := make([]string, 0, len(all))
	for name, acct := range all {
		if !acct.IsClosed() {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]*ledger.Account, 0, len(names))
	for _, name := range names {
		out = append(out, all[name])
	}
	return out
}

// AllAccounts returns every account in the ledger, sorted by name.
func (q *Queries) AllAccounts() []*ledger.Account {
	all := q.ledger.Accounts()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*ledger.Account, 0, len(names))
	for _, name := range names {
		out = append(out, all[name])
	}
	return out
}

// SingleAccountLatestBalances returns, per commodity ever seen on the
// account, its current balance. An account with no postings yet returns an
// empty (not nil) Balance, since every commodity query resolves to a
// concrete zero rather than an absent value.
func (q *Queries) SingleAccountLatestBalances(account string) *ledger.Balance {
	acct, ok := q.ledger.GetAccount(account)
	if !ok {
		return ledger.NewBalance()
	}
	return ledger.NewBalanceFromMap(acct.GetBalance())
}

// AccountTargetDateBalance returns the account's balance as of at
// (inclusive), per commodity. Accounts with no posting at-or-before at
// return a zero Balance rather than an error.
func (q *Queries) AccountTargetDateBalance(account string, at *ast.Date) (*ledger.Balance, error) {
	acct, ok := q.ledger.GetAccount(account)
	if !ok {
		return nil, fmt.Errorf("account %q does not exist", account)
	}
	return acct.GetBalanceInPeriod(*at, *at), nil
}

// GetPrice returns the latest price observation at-or-before at for the
// from->to pair.
func (q *Queries) GetPrice(at *ast.Date, from, to string) (decimal.Decimal, bool) {
	return q.ledger.GetPrice(at, from, to)
}

// CommodityLots returns every per-account lot held for commodity.
func (q *Queries) CommodityLots(commodity string) []*ledger.LotSnapshot {
	return q.ledger.CommodityLots(commodity)
}

// AccountJournals returns all postings on account, most recent first. Ties
// (same transaction date) are broken by application order, since
// Account.Postings already records postings in the order their owning
// transactions were applied.
func (q *Queries) AccountJournals(account string) []*ledger.AccountPosting {
	acct, ok := q.ledger.GetAccount(account)
	if !ok {
		return nil
	}

	n := len(acct.Postings)
	out := make([]*ledger.AccountPosting, n)
	for i, p := range acct.Postings {
		out[n-1-i] = p
	}
	return out
}

// StaticDurationPoint is one (date, account type, commodity) sample of
// StaticDuration's output.
type StaticDurationPoint struct {
	Date        ast.Date
	AccountType ast.AccountType
	Currency    string
	Amount      decimal.Decimal
}

// StaticDuration buckets every balance-affecting transaction date in
// [from, to] into per-account-type, per-commodity cumulative balances,
// replaying the same per-account point-in-time calculation GetBalanceTree
// uses for its snapshots, once per distinct date in range.
func (q *Queries) StaticDuration(from, to *ast.Date) []*StaticDurationPoint {
	dateSet := make(map[string]*ast.Date)
	for _, txn := range q.ledger.Transactions() {
		if txn.Date.Before(from.Time) || txn.Date.After(to.Time) {
			continue
		}
		dateSet[txn.Date.String()] = txn.Date
	}

	dateKeys := make([]string, 0, len(dateSet))
	for k := range dateSet {
		dateKeys = append(dateKeys, k)
	}
	sort.Strings(dateKeys)

	accounts := q.ledger.Accounts()

	var points []*StaticDurationPoint
	for _, key := range dateKeys {
		at := dateSet[key]

		type bucketKey struct {
			accountType ast.AccountType
			currency    string
		}
		sums := make(map[bucketKey]decimal.Decimal)

		for _, acct := range accounts {
			balance := acct.GetBalanceInPeriod(*at, *at)
			for _, currency := range balance.Currencies() {
				bk := bucketKey{accountType: acct.Type, currency: currency}
				sums[bk] = sums[bk].Add(balance.Get(currency))
			}
		}

		bks := make([]bucketKey, 0, len(sums))
		for bk := range sums {
			bks = append(bks, bk)
		}
		sort.Slice(bks, func(i, j int) bool {
			if bks[i].accountType != bks[j].accountType {
				return bks[i].accountType < bks[j].accountType
			}
			return bks[i].currency < bks[j].currency
		})

		for _, bk := range bks {
			points = append(points, &StaticDurationPoint{
				Date:        *at,
				AccountType: bk.accountType,
				Currency:    bk.currency,
				Amount:      sums[bk],
			})
		}
	}

	return points
}

// TransactionCounts returns the number of successfully applied transactions.
func (q *Queries) TransactionCounts() int {
	return len(q.ledger.Transactions())
}

// SingleTransaction retrieves one transaction by its 1-based application
// sequence number. Sequence numbers are stable for a given processed
// ledger snapshot but are not carried across a reload, since the
// underlying slice is rebuilt from scratch each time the source is
// reprocessed.
func (q *Queries) SingleTransaction(id int) (*ast.Transaction, bool) {
	txns := q.ledger.Transactions()
	if id < 1 || id > len(txns) {
		return nil, false
	}
	return txns[id-1], true
}

// TransactionSpan is the source range a transaction occupies, for file
// editing tools that need to replace or highlight it in place.
type TransactionSpan struct {
	Start ast.Position
	End   ast.Position
}

// TransactionSpan returns the source span of the transaction with the given
// sequence number (see SingleTransaction). The span's end is the position
// of its last posting, or the transaction's own position if it has none.
func (q *Queries) TransactionSpan(id int) (*TransactionSpan, bool) {
	txn, ok := q.SingleTransaction(id)
	if !ok {
		return nil, false
	}

	end := txn.Pos
	if n := len(txn.Postings); n > 0 {
		end = txn.Postings[n-1].Pos
	}

	return &TransactionSpan{Start: txn.Pos, End: end}, true
}

// Errors returns the accumulated list of recoverable errors from the last
// Process call.
func (q *Queries) Errors() []error {
	return q.ledger.Errors()
}

// ErrorsByMeta filters Errors to those whose directive carries metadata key
// k with value v. Errors whose directive is nil (ledger-wide errors with no
// single offending directive, such as MultipleOperatingCurrencyDetect) never
// match.
func (q *Queries) ErrorsByMeta(k, v string) []error {
	var out []error
	for _, err := range q.ledger.Errors() {
		le, ok := err.(interface{ GetDirective() ast.Directive })
		if !ok {
			continue
		}
		directive := le.GetDirective()
		if directive == nil {
			continue
		}
		for _, m := range directive.GetMetadata() {
			if m.Key != k {
				continue
			}
			if metadataValueString(m.Value) == v {
				out = append(out, err)
			}
			break
		}
	}
	return out
}

// metadataValueString extracts the comparable string form of a metadata
// value, matching whichever alternative the parser populated.
func metadataValueString(v *ast.MetadataValue) string {
	if v == nil {
		return ""
	}
	switch {
	case v.StringValue != nil:
		return v.StringValue.Value
	case v.Currency != nil:
		return *v.Currency
	case v.Number != nil:
		return *v.Number
	case v.Account != nil:
		return string(*v.Account)
	}
	return ""
}
