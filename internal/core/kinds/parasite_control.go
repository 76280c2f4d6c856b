package kinds

import (
	"context"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

// Parasite control defaults.
const (
	DefaultInsecticideType     = "Default Insecticide"
	DefaultInsecticideMethod   = "Spray"
	DefaultInsecticideCategory = "General"
	DefaultBreedingSites       = "N/A"
	DefaultControlStatus       = "Completed"
)

var (
	herdLocationAliases = core.Aliases(
		"herdLocation", "Herd Location", "herd_location", "Location", "location",
		"موقع القطيع", "الموقع", "farmLocation",
	)
	insecticideTypeAliases = core.Aliases(
		"insecticideType", "Insecticide Used", "Insecticide", "insecticide", "insecticide_type",
		"نوع المبيد", "المبيد المستخدم", "المبيد",
	)
	insecticideMethodAliases = core.Aliases(
		"insecticideMethod", "Type", "Method", "insecticide_method", "طريقة الرش", "النوع",
	)
	insecticideVolumeAliases = core.Aliases(
		"insecticideVolume", "Volume (ml)", "Volume", "insecticide_volume",
		"الحجم (مل)", "الحجم", "حجم المبيد (مل)",
	)
	insecticideStatusAliases = core.Aliases(
		"insecticideStatus", "Status", "insecticide_status", "حالة المبيد", "حالة الرش",
	)
	insecticideCategoryAliases = core.Aliases(
		"insecticideCategory", "Category", "insecticide_category", "فئة المبيد",
	)
	barnSizeAliases = core.Aliases(
		"animalBarnSizeSqM", "animalBarnSize", "Size (sqM)", "Barn Size", "animal_barn_size",
		"مساحة الحظيرة",
	)
	breedingSitesAliases = core.Aliases(
		"breedingSites", "Breeding Sites", "breeding_sites", "مواقع التكاثر",
	)
	controlVolumeAliases = core.Aliases(
		"parasiteControlVolume", "Parasite Control Volume", "parasite_control_volume",
		"حجم مكافحة الطفيليات",
	)
	controlStatusAliases = core.Aliases(
		"parasiteControlStatus", "Parasite Control Status", "parasite_control_status",
		"حالة مكافحة الطفيليات",
	)
	herdHealthStatusAliases = core.Aliases(
		"herdHealthStatus", "Herd Health Status", "herd_health_status", "Herd Health",
		"حالة صحة القطيع", "صحة القطيع",
	)
	complianceAliases = core.Aliases(
		"complyingToInstructions", "Complying to instructions", "ownerCompliance",
		"Owner Compliance", "complying_to_instructions", "الالتزام بالتعليمات", "التزام المالك",
	)
)

var parasiteControlExportFields = []string{
	"serialNo", "date", "client", "client.nationalId", "client.phone", "client.village",
	"herdLocation", "coordinates.latitude", "coordinates.longitude",
	"supervisor", "vehicleNo",
	"herdCounts.sheep.total", "herdCounts.sheep.young", "herdCounts.sheep.female", "herdCounts.sheep.treated",
	"herdCounts.goats.total", "herdCounts.goats.young", "herdCounts.goats.female", "herdCounts.goats.treated",
	"herdCounts.camel.total", "herdCounts.camel.young", "herdCounts.camel.female", "herdCounts.camel.treated",
	"herdCounts.cattle.total", "herdCounts.cattle.young", "herdCounts.cattle.female", "herdCounts.cattle.treated",
	"herdCounts.total", "herdCounts.treated",
	"insecticide.type", "insecticide.method", "insecticide.volumeMl", "insecticide.category", "insecticide.status",
	"animalBarnSizeSqM", "breedingSites", "parasiteControlVolume", "parasiteControlStatus",
	"herdHealthStatus", "complyingToInstructions",
	"request.date", "request.situation", "request.fulfillingDate", "remarks",
}

var parasiteControlTemplateHeaders = []string{
	"Serial No", "Date", "Name", "ID", "Phone", "E", "N", "Supervisor", "Vehicle No.",
	"Total Sheep", "Young Sheep", "Female Sheep", "Treated Sheep",
	"Total Goats", "Young Goats", "Female Goats", "Treated Goats",
	"Total Camels", "Young Camels", "Female Camels", "Treated Camels",
	"Total Cattle", "Young Cattle", "Female Cattle", "Treated Cattle",
	"Insecticide Used", "Type", "Volume (ml)", "Category", "Status", "Size (sqM)",
	"Herd Health Status", "Complying to instructions",
	"Request Date", "Request Situation", "Request Fulfilling Date", "Remarks",
}

var parasiteControlTemplateRow = map[string]string{
	"Serial No":                 "PAR-001",
	"Date":                      "22-Jun",
	"Name":                      "سعد محمد العتيبي",
	"ID":                        "1098765432",
	"Phone":                     "0559876543",
	"E":                         "46.6753",
	"N":                         "24.7136",
	"Supervisor":                "د. خالد علي",
	"Vehicle No.":               "P1",
	"Total Sheep":               "50",
	"Young Sheep":               "10",
	"Female Sheep":              "30",
	"Treated Sheep":             "50",
	"Total Goats":               "20",
	"Young Goats":               "5",
	"Female Goats":              "12",
	"Treated Goats":             "20",
	"Total Camels":              "0",
	"Young Camels":              "0",
	"Female Camels":             "0",
	"Treated Camels":            "0",
	"Total Cattle":              "0",
	"Young Cattle":              "0",
	"Female Cattle":             "0",
	"Treated Cattle":            "0",
	"Insecticide Used":          "Cypermethrin 10%",
	"Type":                      "Spraying",
	"Volume (ml)":               "370",
	"Category":                  "Insecticide",
	"Status":                    "Sprayed",
	"Size (sqM)":                "150",
	"Herd Health Status":        "Healthy",
	"Complying to instructions": "true",
	"Request Date":              "19-Jun",
	"Request Situation":         "Closed",
	"Request Fulfilling Date":   "22-Jun",
	"Remarks":                   "",
}

func init() {
	core.Register(core.KindDefinition{
		Info: core.KindInfo{
			Key:     core.KindParasiteControl,
			Label:   "Parasite Control",
			LabelAr: "مكافحة الطفيليات",
		},
		NewRecord:       func() core.Record { return &core.ParasiteControl{} },
		Process:         processParasiteControl,
		ExportFields:    parasiteControlExportFields,
		TemplateHeaders: parasiteControlTemplateHeaders,
		TemplateRow:     parasiteControlTemplateRow,
	})
}

func processParasiteControl(ctx context.Context, env *core.RowEnv, row core.RawRow) (core.Record, error) {
	base, err := baseFromRow(ctx, env, row)
	if err != nil {
		return nil, err
	}

	insecticide := core.Insecticide{
		Type:     core.StringOr(row, insecticideTypeAliases, DefaultInsecticideType),
		Method:   core.StringOr(row, insecticideMethodAliases, DefaultInsecticideMethod),
		VolumeML: core.ToInt(core.Value(row, insecticideVolumeAliases)),
		Status:   core.NormalizeEnum(core.Value(row, insecticideStatusAliases), insecticideStatusMap, Sprayed),
		Category: core.StringOr(row, insecticideCategoryAliases, DefaultInsecticideCategory),
	}

	// The control volume follows the insecticide volume unless given.
	controlVolume := insecticide.VolumeML
	if v, ok := core.Resolve(row, controlVolumeAliases); ok {
		controlVolume = core.ToInt(v)
	}

	p := &core.ParasiteControl{
		RecordBase:              base,
		HerdLocation:            core.StringOr(row, herdLocationAliases, DefaultFarmLocation),
		Coordinates:             core.CoordinatesFromRow(row),
		Supervisor:              core.StringOr(row, core.SupervisorAliases, DefaultSupervisor),
		VehicleNo:               core.StringOr(row, core.VehicleAliases, DefaultVehicleNo),
		HerdCounts:              herdCountsFromRow(row),
		Insecticide:             insecticide,
		AnimalBarnSizeSqM:       core.ToFloat(core.Value(row, barnSizeAliases)),
		BreedingSites:           core.StringOr(row, breedingSitesAliases, DefaultBreedingSites),
		ParasiteControlVolume:   controlVolume,
		ParasiteControlStatus:   core.StringOr(row, controlStatusAliases, DefaultControlStatus),
		HerdHealthStatus:        core.NormalizeEnum(core.Value(row, herdHealthStatusAliases), herdHealthMap, Healthy),
		ComplyingToInstructions: core.NormalizeEnum(core.Value(row, complianceAliases), complianceMap, Comply),
		Request:                 core.RequestFromRow(row, base.Date, env.Now),
	}
	p.SerialNo = serialFromRow(ctx, env, core.KindParasiteControl, row, core.SerialAliases)
	return p, nil
}
