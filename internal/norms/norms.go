package norms

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction indicates which way a raw measurement improves. Times and
// error counts improve downward, sequence counts improve upward. It is
// only consulted by the load-time monotonicity check; lookup itself is
// direction-agnostic.
type Direction int

const (
	HigherBetter Direction = iota
	LowerBetter
)

// ParseDirection converts the YAML direction tag.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "higher_better":
		return HigherBetter, nil
	case "lower_better":
		return LowerBetter, nil
	default:
		return HigherBetter, fmt.Errorf("unknown direction %q", s)
	}
}

// Row maps an inclusive raw-value interval to either a standard score
// (mean 100, SD 15) or a percentile (number or range code), depending
// on the test's scoring model.
type Row struct {
	RawMin     float64 `yaml:"min"`
	RawMax     float64 `yaml:"max"`
	Standard   *float64 `yaml:"standard,omitempty"`
	Percentile string   `yaml:"percentile,omitempty"`
}

// Stratum is one normative subgroup: a closed age band, optionally
// narrowed by education level.
type Stratum struct {
	AgeMin    int    `yaml:"age_min"`
	AgeMax    int    `yaml:"age_max"`
	Education string `yaml:"education,omitempty"`
	Rows      []Row  `yaml:"rows"`
}

// Table holds all strata for one (test, subscore) pair. Tables are
// static reference data: loaded once at startup, validated, and never
// mutated by scoring operations.
type Table struct {
	Strata []Stratum `yaml:"strata"`
}

// Lookup resolves the stratum matching (age, education) and then the
// row covering raw. Returns nil when no stratum or row matches; the
// caller must treat nil as "unscored", never as zero.
func (t *Table) Lookup(age int, education string, raw float64) *Row {
	for i := range t.Strata {
		s := &t.Strata[i]
		if age < s.AgeMin || age > s.AgeMax {
			continue
		}
		if s.Education != "" && s.Education != education {
			continue
		}
		for j := range s.Rows {
			r := &s.Rows[j]
			if raw >= r.RawMin && raw <= r.RawMax {
				return r
			}
		}
		return nil
	}
	return nil
}

// Validate checks the data-authoring invariants once at load time so
// the hot scoring path never has to: age bands must not overlap and
// must cover the test's full valid age range, raw intervals within a
// stratum must not overlap, and scores must be monotone in the
// subscore's improvement direction.
func (t *Table) Validate(ageMin, ageMax int, dir Direction) error {
	if len(t.Strata) == 0 {
		return fmt.Errorf("table has no strata")
	}

	covered := make(map[string][]Stratum)
	for _, s := range t.Strata {
		if s.AgeMin > s.AgeMax {
			return fmt.Errorf("inverted age band %d-%d", s.AgeMin, s.AgeMax)
		}
		covered[s.Education] = append(covered[s.Education], s)
	}

	for edu, strata := range covered {
		for age := ageMin; age <= ageMax; age++ {
			matches := 0
			for _, s := range strata {
				if age >= s.AgeMin && age <= s.AgeMax {
					matches++
				}
			}
			if matches == 0 {
				return fmt.Errorf("age %d not covered (education %q)", age, edu)
			}
			if matches > 1 {
				return fmt.Errorf("age %d covered by overlapping bands (education %q)", age, edu)
			}
		}
	}

	for _, s := range t.Strata {
		if err := validateRows(s.Rows, dir); err != nil {
			return fmt.Errorf("age band %d-%d: %w", s.AgeMin, s.AgeMax, err)
		}
	}
	return nil
}

func validateRows(rows []Row, dir Direction) error {
	if len(rows) == 0 {
		return fmt.Errorf("stratum has no rows")
	}
	for i, r := range rows {
		if r.RawMin > r.RawMax {
			return fmt.Errorf("inverted raw interval [%v, %v]", r.RawMin, r.RawMax)
		}
		if r.Standard == nil && r.Percentile == "" {
			return fmt.Errorf("row %d maps to neither standard score nor percentile", i)
		}
		for j := i + 1; j < len(rows); j++ {
			o := rows[j]
			if r.RawMin <= o.RawMax && o.RawMin <= r.RawMax {
				return fmt.Errorf("overlapping raw intervals [%v, %v] and [%v, %v]",
					r.RawMin, r.RawMax, o.RawMin, o.RawMax)
			}
		}
	}

	// Monotonicity: walk rows in raw order and require the mapped score
	// to follow the improvement direction.
	ordered := make([]Row, len(rows))
	copy(ordered, rows)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].RawMin < ordered[i].RawMin {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}
	for i := 1; i < len(ordered); i++ {
		prev, err := rowRank(ordered[i-1])
		if err != nil {
			return err
		}
		cur, err := rowRank(ordered[i])
		if err != nil {
			return err
		}
		if dir == HigherBetter && cur < prev {
			return fmt.Errorf("score decreases as raw value increases at interval [%v, %v]",
				ordered[i].RawMin, ordered[i].RawMax)
		}
		if dir == LowerBetter && cur > prev {
			return fmt.Errorf("score increases as raw value increases at interval [%v, %v]",
				ordered[i].RawMin, ordered[i].RawMax)
		}
	}
	return nil
}

// rowRank reduces a row's mapped score to a comparable number: the
// standard score itself, or a representative value of the percentile
// code.
func rowRank(r Row) (float64, error) {
	if r.Standard != nil {
		return *r.Standard, nil
	}
	lo, hi, ok := ParsePercentileCode(r.Percentile)
	if !ok {
		return 0, fmt.Errorf("unparseable percentile code %q", r.Percentile)
	}
	return (lo + hi) / 2, nil
}

// ParsePercentileCode interprets a percentile entry as a numeric
// interval. Accepted forms: a plain number ("50"), a range ("50-75"),
// and open-ended codes ("<5", "≤5", ">95", "≥95", "95+").
func ParsePercentileCode(code string) (lo, hi float64, ok bool) {
	c := strings.TrimSpace(code)
	if c == "" {
		return 0, 0, false
	}

	switch {
	case strings.HasPrefix(c, "<") || strings.HasPrefix(c, "≤"):
		v, err := parseBound(strings.TrimLeft(c, "<≤"))
		if err != nil {
			return 0, 0, false
		}
		return 0, v, true
	case strings.HasPrefix(c, ">") || strings.HasPrefix(c, "≥"):
		v, err := parseBound(strings.TrimLeft(c, ">≥"))
		if err != nil {
			return 0, 0, false
		}
		return v, 100, true
	case strings.HasSuffix(c, "+"):
		v, err := parseBound(strings.TrimSuffix(c, "+"))
		if err != nil {
			return 0, 0, false
		}
		return v, 100, true
	}

	if i := strings.IndexByte(c, '-'); i > 0 {
		a, errA := parseBound(c[:i])
		b, errB := parseBound(c[i+1:])
		if errA != nil || errB != nil || a > b {
			return 0, 0, false
		}
		return a, b, true
	}

	v, err := parseBound(c)
	if err != nil {
		return 0, 0, false
	}
	return v, v, true
}

func parseBound(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}
