package scoring

import (
	"strings"

	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/models"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/utils"
)

// Field suffixes for Z-score tests, whose forms take the reference
// mean and standard deviation alongside each raw pontuação.
const (
	mediaSuffix  = "_media"
	desvioSuffix = "_desvio"
)

// Calculate runs the whole scoring pipeline for one test: completeness
// check, derived raw scores, per-subscore normative lookup and
// classification. It returns nil while any required field is still
// empty; the caller re-invokes once the form is complete. The function
// is pure and cheap enough to run on every keystroke.
func Calculate(def *models.TestDefinition, in *models.RawScoreInput) *models.CalculatedResult {
	if !isComplete(def, in) {
		return nil
	}

	raw := make(map[string]float64)
	rawOK := make(map[string]bool)
	for _, field := range requiredFields(def) {
		v, ok := utils.ParseDecimal(in.Values[field])
		raw[field] = v
		rawOK[field] = ok
	}

	// Derived raw values are computed before any lookup and are normed
	// in their own right.
	for _, s := range def.Subscores {
		if s.Derived == nil {
			continue
		}
		if rawOK[s.Derived.Minuend] && rawOK[s.Derived.Subtrahend] {
			raw[s.Name] = raw[s.Derived.Minuend] - raw[s.Derived.Subtrahend]
			rawOK[s.Name] = true
		}
	}

	result := &models.CalculatedResult{
		RawScores:        make(map[string]string),
		CalculatedScores: make(map[string]*float64),
		Percentiles:      make(map[string]*string),
		Classifications:  make(map[string]string),
		Notes:            in.Notes,
	}

	for _, field := range append(requiredFields(def), derivedNames(def)...) {
		if rawOK[field] {
			result.RawScores[field] = utils.FormatScore(raw[field])
		} else {
			result.RawScores[field] = strings.TrimSpace(in.Values[field])
		}
	}

	for _, s := range def.Subscores {
		result.CalculatedScores[s.Name] = nil
		result.Percentiles[s.Name] = nil
		result.Classifications[s.Name] = NotClassified

		switch def.Model {
		case models.ModelNormativeTable:
			scoreTableSubscore(def, s, in, raw, rawOK, result)
		case models.ModelPercentile:
			scorePercentileSubscore(def, s, in, raw, rawOK, result)
		case models.ModelZScore:
			scoreZSubscore(s, raw, rawOK, result)
		}
	}

	return result
}

// isComplete reports whether every required field holds a non-blank
// value. Blank means "still typing"; a filled but malformed value is
// handled later as a per-subscore unscored state.
func isComplete(def *models.TestDefinition, in *models.RawScoreInput) bool {
	for _, field := range requiredFields(def) {
		if utils.IsBlank(in.Values[field]) {
			return false
		}
	}
	return true
}

// requiredFields lists the input fields a test's form must fill:
// every non-derived subscore, plus the media/desvio companions on
// Z-score tests (including for derived subscores, whose reference
// values are still entered manually).
func requiredFields(def *models.TestDefinition) []string {
	var fields []string
	for _, s := range def.Subscores {
		if s.Derived == nil {
			fields = append(fields, s.Name)
		}
		if def.Model == models.ModelZScore {
			fields = append(fields, s.Name+mediaSuffix, s.Name+desvioSuffix)
		}
	}
	return fields
}

func derivedNames(def *models.TestDefinition) []string {
	var names []string
	for _, s := range def.Subscores {
		if s.Derived != nil {
			names = append(names, s.Name)
		}
	}
	return names
}

// scoreTableSubscore resolves a standard score (mean 100, SD 15)
// through the age/education-stratified table.
func scoreTableSubscore(def *models.TestDefinition, s models.Subscore, in *models.RawScoreInput, raw map[string]float64, rawOK map[string]bool, result *models.CalculatedResult) {
	if !rawOK[s.Name] {
		return
	}
	table := def.Norms[s.Name]
	if table == nil {
		return
	}
	row := table.Lookup(in.PatientAge, in.EducationLevel, raw[s.Name])
	if row == nil || row.Standard == nil {
		return
	}
	score := *row.Standard
	result.CalculatedScores[s.Name] = &score
	result.Classifications[s.Name] = ClassifyStandard(score)
}

// scorePercentileSubscore resolves a percentile either through the
// subscore's table or, when the test has none, by passing the entered
// value through directly (the measurement already is a percentile or
// range code).
func scorePercentileSubscore(def *models.TestDefinition, s models.Subscore, in *models.RawScoreInput, raw map[string]float64, rawOK map[string]bool, result *models.CalculatedResult) {
	if table := def.Norms[s.Name]; table != nil {
		if !rawOK[s.Name] {
			return
		}
		row := table.Lookup(in.PatientAge, in.EducationLevel, raw[s.Name])
		if row == nil || row.Percentile == "" {
			return
		}
		p := row.Percentile
		result.Percentiles[s.Name] = &p
		result.Classifications[s.Name] = ClassifyPercentileValue(p)
		return
	}

	// Pass-through: numeric entries band numerically, known range codes
	// band by the code table, anything else stays unscored.
	if rawOK[s.Name] {
		p := utils.FormatScore(raw[s.Name])
		result.Percentiles[s.Name] = &p
		result.Classifications[s.Name] = ClassifyPercentile(raw[s.Name])
		return
	}
	code := strings.TrimSpace(in.Values[s.Name])
	if s.Derived == nil && KnownPercentileCode(code) {
		result.Percentiles[s.Name] = &code
		result.Classifications[s.Name] = ClassifyPercentileValue(code)
	}
}

// scoreZSubscore computes z = (raw - media) / desvio rounded to two
// decimals. A zero desvio leaves the subscore undefined rather than
// propagating infinity; siblings still compute.
func scoreZSubscore(s models.Subscore, raw map[string]float64, rawOK map[string]bool, result *models.CalculatedResult) {
	if !rawOK[s.Name] || !rawOK[s.Name+mediaSuffix] || !rawOK[s.Name+desvioSuffix] {
		return
	}
	desvio := raw[s.Name+desvioSuffix]
	if desvio == 0 {
		return
	}
	z := utils.Round2((raw[s.Name] - raw[s.Name+mediaSuffix]) / desvio)
	result.CalculatedScores[s.Name] = &z
	result.Classifications[s.Name] = ClassifyZ(z)
}
