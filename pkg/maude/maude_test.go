package maude

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/maude/pkg/maude/config"
	"github.com/cognicore/maude/pkg/maude/report"
	"github.com/cognicore/maude/pkg/maude/sentiment"
)

func defaultPipeline(t *testing.T) *Pipeline {
	t.Helper()
	comp, err := (&config.Loader{}).Load()
	require.NoError(t, err)
	return FromComponents(comp, nil)
}

func testReports() []report.Report {
	return []report.Report{
		{
			Manufacturer: "SIEMENS HEALTHCARE DIAGNOSTICS INC.",
			ProductCode:  "CDQ",
			BrandName:    "RAPIDPOINT 500 BLOOD GAS ANALYZER",
			EventText:    "Customer reported erroneous Na measurements. Power supply was replaced. There were no reports of serious injury or death.",
		},
		{
			Manufacturer: "ABBOTT POINT OF CARE INC",
			ProductCode:  "cdq",
			BrandName:    "I-STAT 1 ANALYZER",
			EventText:    "The patient suffered a serious injury after falsely low potassium results.",
		},
		{
			Manufacturer: "ROCHE DIAGNOSTICS / SIEMENS HEALTHCARE DIAGNOSTICS INC.",
			ProductCode:  "JJE",
			BrandName:    "OMNI Advia 1800",
			EventText:    "Sample clot caused high K+ and leak; glucose result delayed.",
		},
		{
			Manufacturer: "NOVA BIOMEDICAL CORP.",
			ProductCode:  "CHL",
			BrandName:    "",
			EventText:    "Patient injury reported.",
		},
		{
			Manufacturer: "EPOCAL INC.",
			ProductCode:  "JFL",
			BrandName:    "epoc reader",
			EventText:    "The display froze.",
		},
		{
			Manufacturer: "Radiometer Medical ApS",
			ProductCode:  "CHL",
			BrandName:    "ABL90 FLEX",
			EventText:    "Patient injury occurred due to erroneous pO2 result.",
		},
	}
}

func TestRunDefaultConfiguration(t *testing.T) {
	p := defaultPipeline(t)

	got, err := p.Run(testReports())
	require.NoError(t, err)
	require.Len(t, got, 4)

	// catalog order, then input order; record 2 matches two manufacturers
	assert.Equal(t, "SIEMENS HEALTHCARE DIAGNOSTICS INC.", got[0].Manufacturer)
	assert.Equal(t, "CDQ", got[0].ProductCode)
	assert.InDelta(t, 0.8, got[0].Score, 1e-12)
	assert.True(t, got[0].Scored)
	assert.Equal(t, []string{"na"}, got[0].Causes)
	assert.True(t, got[0].DictionaryHit)
	assert.Equal(t, "unknown", got[0].RootCause)

	assert.Equal(t, "SIEMENS HEALTHCARE DIAGNOSTICS INC.", got[1].Manufacturer)
	assert.Equal(t, "OMNI Advia 1800", got[1].BrandName)
	assert.InDelta(t, 0.8, got[1].Score, 1e-12)
	assert.Equal(t, []string{"k+", "glucose"}, got[1].Causes)
	assert.Equal(t, "leak", got[1].RootCause)

	assert.Equal(t, "radiometer medical aps", got[2].Manufacturer)
	assert.Equal(t, 1.0, got[2].Score)
	assert.Equal(t, []string{"injury", "po2"}, got[2].Causes)
	assert.Equal(t, "", got[2].RootCause)

	assert.Equal(t, "ROCHE DIAGNOSTICS", got[3].Manufacturer)
	assert.Equal(t, "OMNI Advia 1800", got[3].BrandName)
	assert.Equal(t, 0.5, got[3].Score)
	assert.Equal(t, got[1].Causes, got[3].Causes)
}

func TestSelectRequiresExactProductCodeAfterRelabel(t *testing.T) {
	p := defaultPipeline(t)
	records := p.Tokenize(testReports()[1:2])

	// the filter itself accepts "cdq" ...
	matches := p.filter.Select("ABBOTT Point of Care", []string{"I-STAT"}, []string{"CDQ"}, records)
	require.Len(t, matches, 1)

	// ... but the relabeled selection keeps only exact codes
	assert.Empty(t, p.Select(records))
}

func TestSelectDoesNotModifyInput(t *testing.T) {
	p := defaultPipeline(t)
	records := p.Tokenize(testReports())
	before := make([]report.Record, len(records))
	for i, r := range records {
		before[i] = r.Clone()
	}

	selected := p.Select(records)
	require.NotEmpty(t, selected)
	assert.Equal(t, before, records)

	selected[0].Tokens[0] = "changed"
	assert.Equal(t, before[0].Tokens[0], records[0].Tokens[0])
}

func TestRunEmptyBatch(t *testing.T) {
	got, err := defaultPipeline(t).Run(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRunScorerFailureAborts(t *testing.T) {
	boom := errors.New("sentiment service down")
	comp := config.Build(config.Default(), sentiment.ScorerFunc(func(string) (float64, error) {
		return 0, boom
	}))
	p := FromComponents(comp, nil)

	_, err := p.Run(testReports())
	assert.ErrorIs(t, err, boom)
}
