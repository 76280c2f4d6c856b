package kinds

import (
	"context"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

var (
	horseTotalAliases = core.Aliases(
		"horseTotal", "horse", "Horse Total", "total_horses", "Total Horses",
		"عدد الخيول", "إجمالي الخيول",
	)
	horseMaleAliases = core.Aliases(
		"horseMale", "Horse Male", "male_horses", "Male Horses", "الخيول الذكور", "ذكور الخيول", "ذكور",
	)
	horseFemaleAliases = core.Aliases(
		"horseFemale", "Horse Female", "female_horses", "Female Horses", "الخيول الإناث", "إناث الخيول", "إناث",
	)
	horseYoungAliases = core.Aliases(
		"horseYoung", "Horse Young", "young_horses", "Young Horses", "المهور", "صغار الخيول",
	)
	healthStatusAliases = core.Aliases(
		"healthStatus", "Health Status", "health_status", "الحالة الصحية",
	)
	serviceTypeAliases = core.Aliases(
		"serviceType", "Service Type", "service_type", "نوع الخدمة",
	)
	vaccinesGivenAliases = core.Aliases(
		"vaccinesGiven", "Vaccines Given", "vaccines_given", "Vaccines", "اللقاحات المعطاة",
	)
)

var equineHealthExportFields = []string{
	"serialNo", "date", "client", "client.nationalId", "client.phone", "client.village",
	"farmLocation", "coordinates.latitude", "coordinates.longitude",
	"supervisor", "vehicleNo",
	"horseDetails.totalCount", "horseDetails.maleCount", "horseDetails.femaleCount", "horseDetails.youngCount",
	"healthStatus", "serviceType", "interventionCategory",
	"diagnosis", "treatment", "medicationsUsed", "vaccinesGiven",
	"followUpRequired", "followUpDate",
	"request.date", "request.situation", "request.fulfillingDate", "remarks",
}

var equineHealthTemplateHeaders = []string{
	"Serial No", "Date", "Name", "ID", "Phone", "Location",
	"N Coordinate", "E Coordinate", "Supervisor", "Vehicle No.",
	"Horse Total", "Horse Male", "Horse Female", "Horse Young",
	"Health Status", "Service Type",
	"Diagnosis", "Intervention Category", "Treatment", "Vaccines Given",
	"Follow Up Required", "Request Date", "Request Status", "Request Fulfilling Date",
	"category", "Remarks",
}

var equineHealthTemplateRow = map[string]string{
	"Serial No":               "EH-001",
	"Date":                    "2025-08-24",
	"Name":                    "فهد ناصر الدوسري",
	"ID":                      "1055667788",
	"Phone":                   "0533445566",
	"Location":                "الدرعية",
	"N Coordinate":            "24.7370",
	"E Coordinate":            "46.5750",
	"Supervisor":              "د. ماجد سعيد",
	"Vehicle No.":             "E1",
	"Horse Total":             "4",
	"Horse Male":              "2",
	"Horse Female":            "1",
	"Horse Young":             "1",
	"Health Status":           "Healthy",
	"Service Type":            "Checkup",
	"Diagnosis":               "فحص دوري",
	"Intervention Category":   "Routine",
	"Treatment":               "Vitamin B12",
	"Vaccines Given":          "Tetanus, Influenza",
	"Follow Up Required":      "no",
	"Request Date":            "2025-08-20",
	"Request Status":          "Closed",
	"Request Fulfilling Date": "2025-08-24",
	"category":                "Routine",
	"Remarks":                 "",
}

func init() {
	core.Register(core.KindDefinition{
		Info: core.KindInfo{
			Key:     core.KindEquineHealth,
			Label:   "Equine Health",
			LabelAr: "صحة الخيول",
		},
		NewRecord:       func() core.Record { return &core.EquineHealth{} },
		Process:         processEquineHealth,
		ExportFields:    equineHealthExportFields,
		TemplateHeaders: equineHealthTemplateHeaders,
		TemplateRow:     equineHealthTemplateRow,
	})
}

func processEquineHealth(ctx context.Context, env *core.RowEnv, row core.RawRow) (core.Record, error) {
	base, err := baseFromRow(ctx, env, row)
	if err != nil {
		return nil, err
	}

	treatment := core.StringOr(row, treatmentAliases, "")
	e := &core.EquineHealth{
		RecordBase:   base,
		FarmLocation: core.StringOr(row, core.FarmLocationAliases, DefaultFarmLocation),
		Coordinates:  core.CoordinatesFromRow(row),
		Supervisor:   core.StringOr(row, core.SupervisorAliases, DefaultSupervisor),
		VehicleNo:    core.StringOr(row, core.VehicleAliases, DefaultVehicleNo),
		HorseDetails: core.HorseDetails{
			Total:  core.ToInt(core.Value(row, horseTotalAliases)),
			Male:   core.ToInt(core.Value(row, horseMaleAliases)),
			Female: core.ToInt(core.Value(row, horseFemaleAliases)),
			Young:  core.ToInt(core.Value(row, horseYoungAliases)),
		},
		HealthStatus:         core.NormalizeEnum(core.Value(row, healthStatusAliases), equineHealthMap, Healthy),
		ServiceType:          core.NormalizeEnum(core.Value(row, serviceTypeAliases), serviceTypeMap, ServiceCheckup),
		InterventionCategory: core.NormalizeEnum(core.Value(row, interventionCategoryAliases), interventionCategoryMap, Routine),
		Diagnosis:            core.StringOr(row, diagnosisAliases, ""),
		Treatment:            treatment,
		MedicationsUsed:      medicationsFromRow(row, treatment),
		VaccinesGiven:        listFromRow(row, vaccinesGivenAliases),
		FollowUpRequired:     core.NormalizeBool(core.Value(row, followUpRequiredAliases)),
		Request:              core.RequestFromRow(row, base.Date, env.Now),
	}
	e.FollowUpDate = followUpDate(row, e.FollowUpRequired, e.Request, env)
	e.SerialNo = serialFromRow(ctx, env, core.KindEquineHealth, row, core.SerialAliases)
	return e, nil
}
