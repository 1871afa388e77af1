package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the serialized form of a calendar date in every table.
const DateLayout = "2006-01-02"

const (
	Expense Direction = "Expense"
	Income  Direction = "Income"
)

const (
	KindBool ValueKind = iota + 1
	KindNumber
	KindChoice
)

type (
	Direction string

	ValueKind int

	// Date is a calendar day at midnight UTC.
	Date struct {
		time.Time
	}

	// Value holds one field of a DailyRecord. Only the member matching Kind
	// is meaningful.
	Value struct {
		Kind   ValueKind
		Bool   bool
		Number float64
		Choice string
	}

	// DailyRecord is the row for one calendar date. Values is keyed by
	// objective key.
	DailyRecord struct {
		Date   Date
		Values map[string]Value
	}

	Transaction struct {
		Date        Date            `json:"date"`
		Type        Direction       `json:"type"`
		Category    string          `json:"category"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDirection = errors.New("invalid transaction type")
	ErrNotFound         = errors.New("not found")
	ErrUnknownObjective = errors.New("unknown objective")
	ErrKindMismatch     = errors.New("value kind does not match objective")
	ErrInvalidOption    = errors.New("invalid option")
)

// ExpenseCategories and IncomeCategories are the category lists offered for
// each direction.
var (
	ExpenseCategories = []string{"Housing", "Food", "Transport", "Health", "Leisure", "Education", "Other"}
	IncomeCategories  = []string{"Salary", "Overtime", "Freelance", "Gift", "Other"}
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses the YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// Equal reports whether both dates name the same day.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

// MonthStart returns the first day of d's month.
func (d Date) MonthStart() Date {
	return NewDate(d.Year(), int(d.Month()), 1)
}

// NextMonthStart returns the first day of the month after d's.
func (d Date) NextMonthStart() Date {
	return Date{Time: d.MonthStart().Time.AddDate(0, 1, 0)}
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrInvalidDate)
	}
	return nil
}

// MarshalJSON overrides the promoted time.Time encoding so dates travel as
// YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

func NumberValue(n float64) Value {
	return Value{Kind: KindNumber, Number: n}
}

func ChoiceValue(s string) Value {
	return Value{Kind: KindChoice, Choice: s}
}

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// NewDailyRecord returns an empty record for date.
func NewDailyRecord(date Date) DailyRecord {
	return DailyRecord{Date: date, Values: map[string]Value{}}
}

// Bool returns the flag stored under key, false when absent.
func (r DailyRecord) Bool(key string) bool {
	return r.Values[key].Bool
}

// Number returns the quantity stored under key, 0 when absent.
func (r DailyRecord) Number(key string) float64 {
	return r.Values[key].Number
}

// Choice returns the option stored under key, "" when absent.
func (r DailyRecord) Choice(key string) string {
	return r.Values[key].Choice
}

// Clone returns a deep copy so callers cannot mutate store state.
func (r DailyRecord) Clone() DailyRecord {
	out := DailyRecord{Date: r.Date, Values: make(map[string]Value, len(r.Values))}
	for k, v := range r.Values {
		out.Values[k] = v
	}
	return out
}

// ParseDirection accepts the literal Expense or Income tokens, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense":
		return Expense, nil
	case "income":
		return Income, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

func (d Direction) Valid() bool {
	return d == Expense || d == Income
}

// Validate only checks the amount; ledger entries carry no other rules.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
