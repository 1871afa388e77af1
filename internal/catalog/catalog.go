// Package catalog is the static registry of tracked objectives: what each
// field of a daily record means, how it is validated and how it is scored.
package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"planner/internal/core"
)

const (
	GroupDaily   Group = "daily"
	GroupHealth  Group = "health"
	GroupProject Group = "project"
	GroupFinance Group = "finance"
)

const (
	NoGoal GoalShape = iota
	MonthlyTotal
	DailyAverage
)

type (
	Group string

	GoalShape int

	// Goal is the numeric target attached to a quantity.
	Goal struct {
		Shape  GoalShape
		Target float64
	}

	// Kind is the closed set of objective kinds: Flag, Quantity and Choice.
	Kind interface {
		valueKind() core.ValueKind
	}

	// Flag is a boolean objective. Snapshot flags describe a standing state
	// and are scored from a single record instead of averaged.
	Flag struct {
		Snapshot bool
	}

	// Quantity is a non-negative number. Integer quantities drop fractions.
	Quantity struct {
		Min     float64
		Step    float64
		Integer bool
		Goal    Goal
	}

	// Choice is an enum. Options[0] is the default and Terminal is the option
	// counted as done. Aliases map legacy tokens onto options when loading.
	Choice struct {
		Options  []string
		Terminal string
		Aliases  map[string]string
	}

	Objective struct {
		Key   string
		Label string
		Group Group
		Kind  Kind
	}

	// Catalog is an ordered, immutable set of objectives.
	Catalog struct {
		objectives []Objective
		index      map[string]int
	}
)

func (Flag) valueKind() core.ValueKind     { return core.KindBool }
func (Quantity) valueKind() core.ValueKind { return core.KindNumber }
func (Choice) valueKind() core.ValueKind   { return core.KindChoice }

func (s GoalShape) String() string {
	switch s {
	case MonthlyTotal:
		return "monthly_total"
	case DailyAverage:
		return "daily_average"
	default:
		return "none"
	}
}

// New builds a catalog. Keys must be unique and non-empty, "date" is reserved
// for the table key column.
func New(objectives ...Objective) (*Catalog, error) {
	c := &Catalog{
		objectives: make([]Objective, 0, len(objectives)),
		index:      make(map[string]int, len(objectives)),
	}
	for _, o := range objectives {
		key := strings.TrimSpace(o.Key)
		if key == "" || key == "date" {
			return nil, fmt.Errorf("invalid objective key %q", o.Key)
		}
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("duplicate objective key %q", key)
		}
		if o.Kind == nil {
			return nil, fmt.Errorf("objective %q has no kind", key)
		}
		if ch, ok := o.Kind.(Choice); ok && len(ch.Options) == 0 {
			return nil, fmt.Errorf("choice objective %q has no options", key)
		}
		o.Key = key
		c.index[key] = len(c.objectives)
		c.objectives = append(c.objectives, o)
	}
	return c, nil
}

// MustNew is New for static catalogs.
func MustNew(objectives ...Objective) *Catalog {
	c, err := New(objectives...)
	if err != nil {
		panic(err)
	}
	return c
}

// Objectives returns a copy of every objective in declaration order.
func (c *Catalog) Objectives() []Objective {
	return append([]Objective(nil), c.objectives...)
}

// Keys returns objective keys in declaration order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.objectives))
	for i, o := range c.objectives {
		keys[i] = o.Key
	}
	return keys
}

func (c *Catalog) Lookup(key string) (Objective, bool) {
	i, ok := c.index[key]
	if !ok {
		return Objective{}, false
	}
	return c.objectives[i], true
}

func (c *Catalog) ByGroup(g Group) []Objective {
	var out []Objective
	for _, o := range c.objectives {
		if o.Group == g {
			out = append(out, o)
		}
	}
	return out
}

// NewRecord returns a record for date with every field at its default.
func (c *Catalog) NewRecord(date core.Date) core.DailyRecord {
	r := core.NewDailyRecord(date)
	for _, o := range c.objectives {
		r.Values[o.Key] = o.Default()
	}
	return r
}

// Normalize returns a copy of r carrying exactly the catalog's fields:
// missing fields are backfilled, unknown ones dropped and invalid values
// coerced or reset to the default.
func (c *Catalog) Normalize(r core.DailyRecord) core.DailyRecord {
	out := core.NewDailyRecord(r.Date)
	for _, o := range c.objectives {
		v, ok := r.Values[o.Key]
		if !ok {
			out.Values[o.Key] = o.Default()
			continue
		}
		coerced, err := o.Coerce(v)
		if err != nil {
			coerced = o.Default()
		}
		out.Values[o.Key] = coerced
	}
	return out
}

// Default is the type default a new record carries for this objective.
func (o Objective) Default() core.Value {
	switch k := o.Kind.(type) {
	case Flag:
		return core.BoolValue(false)
	case Quantity:
		return core.NumberValue(k.Min)
	case Choice:
		return core.ChoiceValue(k.Options[0])
	default:
		panic(fmt.Sprintf("catalog: unhandled kind %T", o.Kind))
	}
}

// Coerce validates v against the objective. Numbers below the minimum are
// clamped to it and integer quantities are truncated.
func (o Objective) Coerce(v core.Value) (core.Value, error) {
	if v.Kind != o.Kind.valueKind() {
		return core.Value{}, fmt.Errorf("%w: %s expects %s, got %s", core.ErrKindMismatch, o.Key, o.Kind.valueKind(), v.Kind)
	}
	switch k := o.Kind.(type) {
	case Flag:
		return core.BoolValue(v.Bool), nil
	case Quantity:
		n := v.Number
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return core.Value{}, fmt.Errorf("%w: %s is not a finite number", core.ErrKindMismatch, o.Key)
		}
		if k.Integer {
			n = math.Trunc(n)
		}
		if n < k.Min {
			n = k.Min
		}
		return core.NumberValue(n), nil
	case Choice:
		if opt, ok := k.option(v.Choice); ok {
			return core.ChoiceValue(opt), nil
		}
		return core.Value{}, fmt.Errorf("%w: %q for %s", core.ErrInvalidOption, v.Choice, o.Key)
	default:
		panic(fmt.Sprintf("catalog: unhandled kind %T", o.Kind))
	}
}

// Parse reads a table cell. Unparseable text yields the default.
func (o Objective) Parse(s string) core.Value {
	s = strings.TrimSpace(s)
	var v core.Value
	switch o.Kind.(type) {
	case Flag:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return o.Default()
		}
		v = core.BoolValue(b)
	case Quantity:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return o.Default()
		}
		v = core.NumberValue(n)
	case Choice:
		v = core.ChoiceValue(s)
	default:
		panic(fmt.Sprintf("catalog: unhandled kind %T", o.Kind))
	}
	coerced, err := o.Coerce(v)
	if err != nil {
		return o.Default()
	}
	return coerced
}

// Format renders v as a table cell: true/false, decimal text or the option.
func (o Objective) Format(v core.Value) string {
	switch k := o.Kind.(type) {
	case Flag:
		return strconv.FormatBool(v.Bool)
	case Quantity:
		if k.Integer {
			return strconv.FormatInt(int64(v.Number), 10)
		}
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case Choice:
		return v.Choice
	default:
		panic(fmt.Sprintf("catalog: unhandled kind %T", o.Kind))
	}
}

// Snapshot reports whether the objective is scored from a single record.
func (o Objective) Snapshot() bool {
	switch k := o.Kind.(type) {
	case Flag:
		return k.Snapshot
	case Quantity:
		return false
	case Choice:
		return true
	default:
		panic(fmt.Sprintf("catalog: unhandled kind %T", o.Kind))
	}
}

func (c Choice) option(s string) (string, bool) {
	for _, opt := range c.Options {
		if opt == s {
			return opt, true
		}
	}
	if opt, ok := c.Aliases[s]; ok {
		return opt, true
	}
	return "", false
}
