package kinds

import (
	"context"
	"time"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

var (
	holdingCodeAliases = core.Aliases(
		"holdingCode", "Holding Code", "holding_code", "رمز الحيازة",
	)
	diagnosisAliases = core.Aliases(
		"diagnosis", "Diagnosis", "التشخيص",
	)
	interventionCategoryAliases = core.Aliases(
		"interventionCategory", "Intervention Category", "intervention_category",
		"فئة التدخل", "category",
	)
	treatmentAliases = core.Aliases(
		"treatment", "Treatment", "العلاج",
	)
	medicationsAliases = core.Aliases(
		"medicationsUsed", "Medications Used", "medications_used", "Medications",
		"الأدوية المستخدمة", "الأدوية",
	)
	followUpRequiredAliases = core.Aliases(
		"followUpRequired", "Follow Up Required", "follow_up_required", "متابعة مطلوبة", "مطلوب متابعة",
	)
	followUpDateAliases = core.Aliases(
		"followUpDate", "Follow Up Date", "follow_up_date", "تاريخ المتابعة",
	)
)

var mobileClinicExportFields = []string{
	"serialNo", "date", "client", "client.nationalId", "client.phone", "client.village",
	"farmLocation", "holdingCode", "coordinates.latitude", "coordinates.longitude",
	"supervisor", "vehicleNo",
	"animalCounts.sheep", "animalCounts.goats", "animalCounts.camel", "animalCounts.horse", "animalCounts.cattle",
	"animalCounts",
	"diagnosis", "interventionCategory", "treatment", "medicationsUsed",
	"followUpRequired", "followUpDate",
	"request.date", "request.situation", "request.fulfillingDate", "remarks",
}

var mobileClinicTemplateHeaders = []string{
	"Serial No", "Date", "Name", "ID", "Phone", "Holding Code", "Location",
	"N Coordinate", "E Coordinate", "Supervisor", "Vehicle No.",
	"Sheep", "Goats", "Camel", "Horse", "Cattle",
	"Diagnosis", "Intervention Category", "Treatment",
	"Request Date", "Request Status", "Request Fulfilling Date", "category", "Remarks",
}

var mobileClinicTemplateRow = map[string]string{
	"Serial No":               "MC-001",
	"Date":                    "2025-08-24",
	"Name":                    "عبدالله سالم القحطاني",
	"ID":                      "1122334455",
	"Phone":                   "0541122334",
	"Holding Code":            "HC001",
	"Location":                "الخرج",
	"N Coordinate":            "24.1500",
	"E Coordinate":            "47.3000",
	"Supervisor":              "د. سامي حسن",
	"Vehicle No.":             "C2",
	"Sheep":                   "15",
	"Goats":                   "8",
	"Camel":                   "0",
	"Horse":                   "0",
	"Cattle":                  "2",
	"Diagnosis":               "التهاب رئوي",
	"Intervention Category":   "Clinical Examination",
	"Treatment":               "Zuprevo , Meloxicam",
	"Request Date":            "2025-08-23",
	"Request Status":          "Closed",
	"Request Fulfilling Date": "2025-08-24",
	"category":                "Emergency",
	"Remarks":                 "",
}

func init() {
	core.Register(core.KindDefinition{
		Info: core.KindInfo{
			Key:     core.KindMobileClinic,
			Label:   "Mobile Clinic",
			LabelAr: "العيادة المتنقلة",
		},
		NewRecord:       func() core.Record { return &core.MobileClinic{} },
		Process:         processMobileClinic,
		ExportFields:    mobileClinicExportFields,
		TemplateHeaders: mobileClinicTemplateHeaders,
		TemplateRow:     mobileClinicTemplateRow,
	})
}

func processMobileClinic(ctx context.Context, env *core.RowEnv, row core.RawRow) (core.Record, error) {
	base, err := baseFromRow(ctx, env, row)
	if err != nil {
		return nil, err
	}

	treatment := core.StringOr(row, treatmentAliases, "")
	c := &core.MobileClinic{
		RecordBase:           base,
		FarmLocation:         core.StringOr(row, core.FarmLocationAliases, DefaultFarmLocation),
		HoldingCode:          core.StringOr(row, holdingCodeAliases, ""),
		Coordinates:          core.CoordinatesFromRow(row),
		Supervisor:           core.StringOr(row, core.SupervisorAliases, DefaultSupervisor),
		VehicleNo:            core.StringOr(row, core.VehicleAliases, DefaultVehicleNo),
		AnimalCounts:         animalCountsFromRow(row, "animalCounts"),
		Diagnosis:            core.StringOr(row, diagnosisAliases, ""),
		InterventionCategory: core.NormalizeEnum(core.Value(row, interventionCategoryAliases), interventionCategoryMap, Routine),
		Treatment:            treatment,
		MedicationsUsed:      medicationsFromRow(row, treatment),
		FollowUpRequired:     core.NormalizeBool(core.Value(row, followUpRequiredAliases)),
		Request:              core.RequestFromRow(row, base.Date, env.Now),
	}
	c.FollowUpDate = followUpDate(row, c.FollowUpRequired, c.Request, env)
	c.SerialNo = serialFromRow(ctx, env, core.KindMobileClinic, row, core.SerialAliases)
	return c, nil
}

// medicationsFromRow reads the medication list, falling back to the
// comma-separated treatment text.
func medicationsFromRow(row core.RawRow, treatment string) []string {
	if meds := listFromRow(row, medicationsAliases); len(meds) > 0 {
		return meds
	}
	return core.SplitList(treatment)
}

// followUpDate returns an explicit follow-up date, else the request's
// fulfilling date when a follow-up is required.
func followUpDate(row core.RawRow, required bool, req core.Request, env *core.RowEnv) time.Time {
	if t, ok := core.ParseDate(core.Value(row, followUpDateAliases), env.Now); ok {
		return t
	}
	if required {
		return req.FulfillingDate
	}
	return time.Time{}
}
