package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const miniCatalog = `
tests:
  - code: TESTE_A
    name: "Teste A"
    scoring_model: NORMATIVE_TABLE
    age_range: {min: 6, max: 10}
    subscores:
      - name: acertos
        direction: higher_better
    norms:
      acertos:
        strata:
          - age_min: 6
            age_max: 10
            rows:
              - {min: 0, max: 10, standard: 85}
              - {min: 11, max: 20, standard: 110}
  - code: TESTE_B
    name: "Teste B"
    scoring_model: ZSCORE
    age_range: {min: 18, max: 80}
    subscores:
      - name: pontuacao
`

func parseCatalog(t *testing.T, raw string) *Catalog {
	t.Helper()
	var catalog Catalog
	require.NoError(t, yaml.Unmarshal([]byte(raw), &catalog))
	return &catalog
}

func TestCatalogInitIndexesByCode(t *testing.T) {
	catalog := parseCatalog(t, miniCatalog)
	require.NoError(t, catalog.Init())

	def, ok := catalog.Get("TESTE_A")
	require.True(t, ok)
	assert.Equal(t, "Teste A", def.Name)
	assert.Equal(t, ModelNormativeTable, def.Model)
	require.NotNil(t, def.Norms["acertos"])

	_, ok = catalog.Get("TESTE_X")
	assert.False(t, ok)
}

func TestCatalogInitRejectsDuplicateCodes(t *testing.T) {
	catalog := parseCatalog(t, miniCatalog)
	catalog.Tests = append(catalog.Tests, catalog.Tests[0])
	err := catalog.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestCatalogInitRejectsUnknownModel(t *testing.T) {
	catalog := parseCatalog(t, miniCatalog)
	catalog.Tests[0].Model = "TSCORE"
	err := catalog.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scoring model")
}

func TestCatalogInitRejectsMissingTableForNormedTest(t *testing.T) {
	catalog := parseCatalog(t, miniCatalog)
	delete(catalog.Tests[0].Norms, "acertos")
	err := catalog.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing its normative table")
}

func TestCatalogInitRejectsDerivedFromUnknownSubscore(t *testing.T) {
	catalog := parseCatalog(t, miniCatalog)
	catalog.Tests[1].Subscores = append(catalog.Tests[1].Subscores, Subscore{
		Name:    "derivado",
		Derived: &Derived{Minuend: "inexistente", Subtrahend: "pontuacao"},
	})
	err := catalog.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown subscore")
}

func TestCatalogInitRejectsNonMonotoneTable(t *testing.T) {
	catalog := parseCatalog(t, miniCatalog)
	badScore := 60.0
	catalog.Tests[0].Norms["acertos"].Strata[0].Rows[1].Standard = &badScore
	err := catalog.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decreases")
}

// The shipped catalog must always pass its own validation.
func TestLoadShippedCatalog(t *testing.T) {
	catalog, err := LoadCatalog("../../config/tests.yaml")
	require.NoError(t, err)

	for _, code := range []string{"HAYLING_ADULTO", "TRILHAS", "CALC_BNTBR", "CALC_PERCENTIL"} {
		_, ok := catalog.Get(code)
		assert.True(t, ok, "catalog is missing %s", code)
	}

	hayling, _ := catalog.Get("HAYLING_ADULTO")
	assert.Equal(t, 19, hayling.AgeRange.Min)
	assert.Equal(t, 75, hayling.AgeRange.Max)
	assert.Equal(t, ModelPercentile, hayling.Model)
}
