package scoring

import (
	"strings"

	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/utils"
)

// NotClassified is the sentinel for an unscored subscore. A missing
// score must never degrade to a mid-range label, since that would
// silently imply normalcy.
const NotClassified = "Não classificado"

// Percentile-model labels. Inferior, Média and Superior are shared
// with the Z-score policy, which adds the masculine Médio variants.
const (
	Inferior      = "Inferior"
	MediaInferior = "Média Inferior"
	Media         = "Média"
	MediaSuperior = "Média Superior"
	Superior      = "Superior"

	MedioInferior = "Médio Inferior"
	Medio         = "Médio"
	MedioSuperior = "Médio Superior"
)

// Standard-score labels (mean 100, SD 15); Média is shared.
const (
	MuitoBaixa = "Muito Baixa"
	Baixa      = "Baixa"
	Alta       = "Alta"
	MuitoAlta  = "Muito Alta"
)

// ClassifyPercentile bands an exact percentile. Boundary values belong
// to the lower-severity side of the cut: exactly 25 is Média Inferior,
// exactly 75 is Média, exactly 95 is Superior.
func ClassifyPercentile(p float64) string {
	switch {
	case p <= 5:
		return Inferior
	case p <= 25:
		return MediaInferior
	case p <= 75:
		return Media
	case p < 95:
		return MediaSuperior
	default:
		return Superior
	}
}

// percentileCodes maps the discrete range codes used on the paper
// norms to their category. Codes are classified by this table, never
// re-derived numerically, so a midpoint code like "50-75" lands in
// Média as the norms intend.
var percentileCodes = map[string]string{
	"<5":    Inferior,
	"≤5":    Inferior,
	"5":     Inferior,
	"5-10":  MediaInferior,
	"10-25": MediaInferior,
	"25":    MediaInferior,
	"25-50": Media,
	"50":    Media,
	"50-75": Media,
	"75":    Media,
	"75-90": MediaSuperior,
	"90":    MediaSuperior,
	"90-95": MediaSuperior,
	"95":    Superior,
	"≥95":   Superior,
	">95":   Superior,
	"95+":   Superior,
}

// ClassifyPercentileValue bands a percentile that may arrive either as
// a number or as a discrete range code. A numeric value takes the
// numeric banding; only non-numeric strings consult the code table.
// Unknown codes are not classifiable.
func ClassifyPercentileValue(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return NotClassified
	}
	if p, ok := utils.ParseDecimal(v); ok {
		return ClassifyPercentile(p)
	}
	if label, ok := percentileCodes[v]; ok {
		return label
	}
	return NotClassified
}

// KnownPercentileCode reports whether a non-numeric percentile entry is
// one of the recognized range codes.
func KnownPercentileCode(value string) bool {
	_, ok := percentileCodes[strings.TrimSpace(value)]
	return ok
}

// ClassifyZ bands a Z-score already rounded to two decimals.
func ClassifyZ(z float64) string {
	switch {
	case z <= -1.32:
		return Inferior
	case z <= -0.70:
		return MedioInferior
	case z <= 0.65:
		return Medio
	case z <= 1.36:
		return MedioSuperior
	default:
		return Superior
	}
}

// ClassifyStandard bands a standard score (mean 100, SD 15).
func ClassifyStandard(score float64) string {
	switch {
	case score < 70:
		return MuitoBaixa
	case score < 85:
		return Baixa
	case score < 115:
		return Media
	case score < 130:
		return Alta
	default:
		return MuitoAlta
	}
}
