package kinds

import (
	"context"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

// Defaults applied when a vaccination sheet leaves a column blank.
const (
	DefaultFarmLocation = "N/A"
	DefaultSupervisor   = "Default Supervisor"
	DefaultTeam         = "Default Team"
	DefaultVehicleNo    = "V1"
	DefaultVaccineType  = "PPR"
)

var (
	teamAliases = core.Aliases(
		"team", "Team", "team_name", "الفريق",
	)
	vaccineTypeAliases = core.Aliases(
		"vaccineType", "Vaccine", "Vaccine Type", "vaccine_type", "vaccine", "نوع اللقاح", "اللقاح",
	)
	vaccineCategoryAliases = core.Aliases(
		"vaccineCategory", "Category", "vaccine_category", "category", "فئة اللقاح",
	)
	herdHealthAliases = core.Aliases(
		"herdHealth", "Herd Health", "herd_health", "صحة القطيع",
	)
	animalsHandlingAliases = core.Aliases(
		"animalsHandling", "Animals Handling", "animals_handling", "التعامل مع الحيوانات",
	)
	laboursAliases = core.Aliases(
		"labours", "Labours", "labors", "Labors", "العمالة",
	)
	reachableLocationAliases = core.Aliases(
		"reachableLocation", "Reachable Location", "reachable_location", "سهولة الوصول",
	)
)

var vaccinationExportFields = []string{
	"serialNo", "date", "client", "client.nationalId", "client.phone", "client.village",
	"farmLocation", "coordinates.latitude", "coordinates.longitude",
	"supervisor", "team", "vehicleNo", "vaccineType", "vaccineCategory",
	"herdCounts.sheep.total", "herdCounts.sheep.female", "herdCounts.sheep.vaccinated",
	"herdCounts.goats.total", "herdCounts.goats.female", "herdCounts.goats.vaccinated",
	"herdCounts.camel.total", "herdCounts.camel.female", "herdCounts.camel.vaccinated",
	"herdCounts.cattle.total", "herdCounts.cattle.female", "herdCounts.cattle.vaccinated",
	"herdCounts.total", "herdCounts.vaccinated",
	"herdHealth", "animalsHandling", "labours", "reachableLocation",
	"request.date", "request.situation", "request.fulfillingDate", "remarks",
}

var vaccinationTemplateHeaders = []string{
	"Serial No", "Date", "Name", "ID", "Birth Date", "Phone", "Location",
	"N Coordinate", "E Coordinate", "Supervisor", "Team",
	"Sheep", "F. Sheep", "Vaccinated Sheep",
	"Goats", "F. Goats", "Vaccinated Goats",
	"Camel", "F. Camel", "Vaccinated Camels",
	"Cattle", "F. Cattle", "Vaccinated Cattle",
	"Herd Health", "Animals Handling", "Labours", "Reachable Location",
	"Request Date", "Situation", "Request Fulfilling Date",
	"Vaccine", "Category", "Remarks",
}

var vaccinationTemplateRow = map[string]string{
	"Serial No":               "VAC-001",
	"Date":                    "24-Aug",
	"Name":                    "محمد أحمد الشمري",
	"ID":                      "1234567890",
	"Birth Date":              "1980-01-15",
	"Phone":                   "0501234567",
	"Location":                "الرياض",
	"N Coordinate":            "24.7136",
	"E Coordinate":            "46.6753",
	"Supervisor":              "د. أحمد محمد",
	"Team":                    "فريق التحصين الأول",
	"Sheep":                   "10",
	"F. Sheep":                "6",
	"Vaccinated Sheep":        "10",
	"Goats":                   "5",
	"F. Goats":                "3",
	"Vaccinated Goats":        "5",
	"Camel":                   "2",
	"F. Camel":                "1",
	"Vaccinated Camels":       "2",
	"Cattle":                  "0",
	"F. Cattle":               "0",
	"Vaccinated Cattle":       "0",
	"Herd Health":             "Healthy",
	"Animals Handling":        "Easy",
	"Labours":                 "Available",
	"Reachable Location":      "Easy",
	"Request Date":            "8/24/2025",
	"Situation":               "Closed",
	"Request Fulfilling Date": "8/24/2025",
	"Vaccine":                 "PPR",
	"Category":                "Preventive",
	"Remarks":                 "تم التحصين بنجاح",
}

func init() {
	core.Register(core.KindDefinition{
		Info: core.KindInfo{
			Key:     core.KindVaccination,
			Label:   "Vaccination",
			LabelAr: "التحصين",
		},
		NewRecord:       func() core.Record { return &core.Vaccination{} },
		Process:         processVaccination,
		ExportFields:    vaccinationExportFields,
		TemplateHeaders: vaccinationTemplateHeaders,
		TemplateRow:     vaccinationTemplateRow,
	})
}

func processVaccination(ctx context.Context, env *core.RowEnv, row core.RawRow) (core.Record, error) {
	base, err := baseFromRow(ctx, env, row)
	if err != nil {
		return nil, err
	}

	v := &core.Vaccination{
		RecordBase:        base,
		FarmLocation:      core.StringOr(row, core.FarmLocationAliases, DefaultFarmLocation),
		Coordinates:       core.CoordinatesFromRow(row),
		Supervisor:        core.StringOr(row, core.SupervisorAliases, DefaultSupervisor),
		Team:              core.StringOr(row, teamAliases, DefaultTeam),
		VehicleNo:         core.StringOr(row, core.VehicleAliases, DefaultVehicleNo),
		VaccineType:       core.StringOr(row, vaccineTypeAliases, DefaultVaccineType),
		VaccineCategory:   core.NormalizeEnum(core.Value(row, vaccineCategoryAliases), vaccineCategoryMap, Preventive),
		HerdCounts:        herdCountsFromRow(row),
		HerdHealth:        core.NormalizeEnum(core.Value(row, herdHealthAliases), herdHealthMap, Healthy),
		AnimalsHandling:   core.NormalizeEnum(core.Value(row, animalsHandlingAliases), animalsHandlingMap, Easy),
		Labours:           core.NormalizeEnum(core.Value(row, laboursAliases), laboursMap, Available),
		ReachableLocation: core.NormalizeEnum(core.Value(row, reachableLocationAliases), reachableLocationMap, Easy),
		Request:           core.RequestFromRow(row, base.Date, env.Now),
	}
	v.SerialNo = serialFromRow(ctx, env, core.KindVaccination, row, core.SerialAliases)
	return v, nil
}
