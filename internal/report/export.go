package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/models"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/scoring"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/utils"
)

const (
	rule     = "================================================================"
	thinRule = "----------------------------------------------------------------"
	absent   = "-"
)

// CanonicalText renders a persisted result as the fixed-width block
// pasted into clinical reports. The output is deterministic: stable
// subscore order, fixed date layout, '.' decimal separator. def may be
// nil for historical codes no longer in the catalog; subscores then
// render in alphabetical order.
func CanonicalText(res *models.TestResult, def *models.TestDefinition, appliedBy string) string {
	raw := decodeStringMap(res.RawScores)
	scores := decodeScoreMap(res.CalculatedScores)
	percentiles := decodeStringPtrMap(res.Percentiles)
	classifications := decodeStringMap(res.Classifications)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(strings.ToUpper(res.TestName) + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Paciente: %d    Idade: %d anos\n", res.ClientID, res.PatientAge)
	fmt.Fprintf(&b, "Aplicado em: %s\n", res.AppliedAt.Format("02/01/2006 15:04"))
	if appliedBy != "" {
		fmt.Fprintf(&b, "Aplicador: %s\n", appliedBy)
	}
	b.WriteString(thinRule + "\n")
	fmt.Fprintf(&b, "%-20s %10s %10s %10s  %s\n", "Subteste", "Bruto", "Escore", "Percentil", "Classificação")

	for _, name := range subscoreOrder(def, classifications) {
		label := name
		if def != nil {
			if sub, ok := def.SubscoreByName(name); ok && sub.Label != "" {
				label = sub.Label
			}
		}

		score := absent
		if v, ok := scores[name]; ok && v != nil {
			score = utils.FormatScore(*v)
		}
		percentile := absent
		if v, ok := percentiles[name]; ok && v != nil {
			percentile = *v
		}
		rawValue := absent
		if v, ok := raw[name]; ok && v != "" {
			rawValue = v
		}
		classification := classifications[name]
		if classification == "" {
			classification = scoring.NotClassified
		}

		fmt.Fprintf(&b, "%-20s %10s %10s %10s  %s\n", label, rawValue, score, percentile, classification)
	}

	if res.Notes != nil && *res.Notes != "" {
		b.WriteString(thinRule + "\n")
		b.WriteString("Observações:\n")
		b.WriteString(*res.Notes + "\n")
	}
	b.WriteString(rule + "\n")
	return b.String()
}

// subscoreOrder follows the catalog's subscore order when the
// definition is known and appends any stored subscore the definition
// no longer lists; unknown tests fall back to alphabetical order. The
// stored maps of each result stay self-contained, so results from
// different instruments never leak subscores into each other.
func subscoreOrder(def *models.TestDefinition, classifications map[string]string) []string {
	seen := make(map[string]bool)
	var order []string
	if def != nil {
		for _, s := range def.Subscores {
			if _, ok := classifications[s.Name]; ok {
				order = append(order, s.Name)
				seen[s.Name] = true
			}
		}
	}
	var rest []string
	for name := range classifications {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func decodeStringMap(data json.RawMessage) map[string]string {
	m := make(map[string]string)
	if len(data) > 0 {
		_ = json.Unmarshal(data, &m)
	}
	return m
}

func decodeScoreMap(data json.RawMessage) map[string]*float64 {
	m := make(map[string]*float64)
	if len(data) > 0 {
		_ = json.Unmarshal(data, &m)
	}
	return m
}

func decodeStringPtrMap(data json.RawMessage) map[string]*string {
	m := make(map[string]*string)
	if len(data) > 0 {
		_ = json.Unmarshal(data, &m)
	}
	return m
}
