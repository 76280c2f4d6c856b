package kinds

import (
	"context"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

// Laboratory defaults.
const (
	DefaultCollector  = "Default Collector"
	DefaultSampleType = "Blood"
)

var (
	// sampleCodeAliases also accepts the generic serial columns.
	sampleCodeAliases = core.Aliases(
		"sampleCode", "Sample Code", "sample_code", "رمز العينة",
	).With(core.SerialAliases...)

	labLocationAliases = core.Aliases(
		"location", "Location", "farmLocation", "Farm Location", "الموقع", "موقع المزرعة",
	)
	collectorAliases = core.Aliases(
		"collector", "Collector", "Sample Collector", "sample_collector", "جامع العينة",
	)
	sampleTypeAliases = core.Aliases(
		"sampleType", "Sample Type", "sample_type", "نوع العينة",
	)
	sampleNumberAliases = core.Aliases(
		"sampleNumber", "Samples Number", "Sample Number", "sample_number", "رقم العينة", "عدد العينات",
	)
	otherSpeciesAliases = core.Aliases(
		"otherSpecies", "Other (Species)", "Other", "other_species", "أنواع أخرى",
	)
	positiveCasesAliases = core.Aliases(
		"positiveCases", "Positive Cases", "positive_cases", "الحالات الإيجابية",
	)
	negativeCasesAliases = core.Aliases(
		"negativeCases", "Negative Cases", "negative_cases", "الحالات السلبية",
	)
	testResultsAliases = core.Aliases(
		"testResults", "Test Results", "test_results", "نتائج الفحص",
	)
)

var laboratoryExportFields = []string{
	"sampleCode", "date", "client", "client.nationalId", "client.phone", "client.village",
	"location", "coordinates.latitude", "coordinates.longitude",
	"speciesCounts.sheep", "speciesCounts.goats", "speciesCounts.camel", "speciesCounts.horse",
	"speciesCounts.cattle", "speciesCounts.other",
	"collector", "sampleType", "sampleNumber", "positiveCases", "negativeCases",
	"testResults", "remarks",
}

var laboratoryTemplateHeaders = []string{
	"Serial", "Date", "Sample Code", "Name", "ID", "Phone", "Location", "N", "E",
	"Sheep", "Goats", "Camel", "Horse", "Cattle", "Other (Species)",
	"Sample Collector", "Sample Type", "Samples Number",
	"Positive Cases", "Negative Cases", "Remarks",
}

var laboratoryTemplateRow = map[string]string{
	"Serial":           "1",
	"Date":             "2025-08-24",
	"Sample Code":      "LAB-001",
	"Name":             "ناصر عبدالرحمن المطيري",
	"ID":               "1066778899",
	"Phone":            "0567788990",
	"Location":         "المزاحمية",
	"N":                "24.4700",
	"E":                "46.2600",
	"Sheep":            "5",
	"Goats":            "3",
	"Camel":            "0",
	"Horse":            "0",
	"Cattle":           "0",
	"Other (Species)":  "Poultry",
	"Sample Collector": "د. علي حسن",
	"Sample Type":      "Blood",
	"Samples Number":   "S001",
	"Positive Cases":   "1",
	"Negative Cases":   "7",
	"Remarks":          "",
}

func init() {
	core.Register(core.KindDefinition{
		Info: core.KindInfo{
			Key:         core.KindLaboratory,
			Label:       "Laboratory",
			LabelAr:     "المختبر",
			SerialField: "sampleCode",
		},
		NewRecord:       func() core.Record { return &core.Laboratory{} },
		Process:         processLaboratory,
		ExportFields:    laboratoryExportFields,
		TemplateHeaders: laboratoryTemplateHeaders,
		TemplateRow:     laboratoryTemplateRow,
	})
}

func processLaboratory(ctx context.Context, env *core.RowEnv, row core.RawRow) (core.Record, error) {
	base, err := baseFromRow(ctx, env, row)
	if err != nil {
		return nil, err
	}

	counts := animalCountsFromRow(row, "speciesCounts")
	counts.Other = core.StringOr(row, otherSpeciesAliases, "")

	l := &core.Laboratory{
		RecordBase:    base,
		Location:      core.StringOr(row, labLocationAliases, DefaultFarmLocation),
		Coordinates:   core.CoordinatesFromRow(row),
		Collector:     core.StringOr(row, collectorAliases, DefaultCollector),
		SampleType:    core.StringOr(row, sampleTypeAliases, DefaultSampleType),
		SampleNumber:  core.StringOr(row, sampleNumberAliases, ""),
		SpeciesCounts: counts,
		PositiveCases: core.ToInt(core.Value(row, positiveCasesAliases)),
		NegativeCases: core.ToInt(core.Value(row, negativeCasesAliases)),
		TestResults:   core.StringOr(row, testResultsAliases, ""),
	}
	l.SampleCode = serialFromRow(ctx, env, core.KindLaboratory, row, sampleCodeAliases)
	return l, nil
}
