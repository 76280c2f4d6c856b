package kinds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/vetrecords/internal/core"
	"github.com/JonMunkholm/vetrecords/internal/store/memory"
)

var testNow = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newEnv(t *testing.T) (*core.RowEnv, *memory.Store) {
	t.Helper()
	st := memory.New()
	return &core.RowEnv{
		Actor:   "tester",
		Now:     testNow,
		Clients: core.NewClientResolver(st),
		Serials: core.NewSerialAllocator(st),
	}, st
}

// templateRow returns the kind's sample template row as raw input.
func templateRow(t *testing.T, kind core.Kind) core.RawRow {
	t.Helper()
	def, ok := core.Get(kind)
	require.True(t, ok, "kind %s not registered", kind)
	row := core.RawRow{}
	for _, h := range def.TemplateHeaders {
		row[h] = def.TemplateRow[h]
	}
	return row
}

func process(t *testing.T, kind core.Kind, env *core.RowEnv, row core.RawRow) (core.Record, error) {
	t.Helper()
	def, ok := core.Get(kind)
	require.True(t, ok)
	return def.Process(context.Background(), env, row)
}

func TestRegisteredKinds(t *testing.T) {
	tests := []struct {
		kind        core.Kind
		prefix      string
		serialField string
	}{
		{core.KindVaccination, "VAC", "serialNo"},
		{core.KindParasiteControl, "PAR", "serialNo"},
		{core.KindMobileClinic, "MC", "serialNo"},
		{core.KindEquineHealth, "EH", "serialNo"},
		{core.KindLaboratory, "LAB", "sampleCode"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			def, ok := core.Get(tt.kind)
			require.True(t, ok)
			assert.Equal(t, tt.prefix, def.Info.SerialPrefix)
			assert.Equal(t, tt.serialField, def.Info.SerialField)
			assert.NotEmpty(t, def.Info.LabelAr)
			assert.NotEmpty(t, def.ExportFields)
			assert.Equal(t, len(def.TemplateHeaders), len(def.TemplateRow),
				"every template header needs a sample value")
			for _, h := range def.TemplateHeaders {
				_, ok := def.TemplateRow[h]
				assert.True(t, ok, "template row missing %q", h)
			}
		})
	}
}

func TestExportFieldsHaveValues(t *testing.T) {
	for _, def := range core.All() {
		t.Run(string(def.Info.Key), func(t *testing.T) {
			values := def.NewRecord().Values()
			for _, f := range def.ExportFields {
				_, ok := values[f]
				assert.True(t, ok, "export field %q has no value key", f)
			}
		})
	}
}

func TestVaccination_TemplateRow(t *testing.T) {
	env, _ := newEnv(t)

	rec, err := process(t, core.KindVaccination, env, templateRow(t, core.KindVaccination))
	require.NoError(t, err)
	v := rec.(*core.Vaccination)

	assert.Equal(t, "VAC-001", v.SerialNo)
	assert.Equal(t, day(2025, time.August, 24), v.Date)
	assert.Equal(t, "محمد أحمد الشمري", v.Client.Name)
	assert.Equal(t, "1234567890", v.Client.NationalID)
	assert.Equal(t, "الرياض", v.Client.Village)
	assert.Equal(t, "الرياض", v.FarmLocation)
	assert.Equal(t, 24.7136, v.Coordinates.Latitude)
	assert.Equal(t, 46.6753, v.Coordinates.Longitude)
	assert.Equal(t, "فريق التحصين الأول", v.Team)
	assert.Equal(t, DefaultVehicleNo, v.VehicleNo)
	assert.Equal(t, "PPR", v.VaccineType)
	assert.Equal(t, Preventive, v.VaccineCategory)

	assert.Equal(t, core.SpeciesCount{Total: 10, Female: 6, Vaccinated: 10}, v.HerdCounts.Sheep)
	assert.Equal(t, core.SpeciesCount{Total: 5, Female: 3, Vaccinated: 5}, v.HerdCounts.Goats)
	assert.Equal(t, core.SpeciesCount{Total: 2, Female: 1, Vaccinated: 2}, v.HerdCounts.Camel)
	assert.Equal(t, 17, v.HerdCounts.Totals().Total)

	assert.Equal(t, Healthy, v.HerdHealth)
	assert.Equal(t, Easy, v.AnimalsHandling)
	assert.Equal(t, Available, v.Labours)
	assert.Equal(t, Easy, v.ReachableLocation)
	assert.Equal(t, core.Request{
		Date:           day(2025, time.August, 24),
		FulfillingDate: day(2025, time.August, 24),
		Situation:      core.SituationClosed,
	}, v.Request)
	assert.Equal(t, "tester", v.CreatedBy)
	require.NoError(t, v.Validate())
}

func TestVaccination_DayMonthDate(t *testing.T) {
	env, st := newEnv(t)

	rec, err := process(t, core.KindVaccination, env, core.RawRow{
		"Date":             "24-Aug",
		"Name":             "أحمد",
		"ID":               "123",
		"Sheep":            "10",
		"Vaccinated Sheep": "8",
	})
	require.NoError(t, err)
	v := rec.(*core.Vaccination)

	assert.Equal(t, day(testNow.Year(), time.August, 24), v.Date)
	assert.Equal(t, "0000000123", v.Client.NationalID)
	assert.Equal(t, core.DefaultVillage, v.Client.Village)
	assert.Equal(t, core.DefaultClientStatus, v.Client.Status)
	assert.Regexp(t, `^VAC-\d+-[0-9a-f]{9}$`, v.SerialNo)
	assert.Equal(t, 10, v.HerdCounts.Sheep.Total)
	assert.Equal(t, 8, v.HerdCounts.Sheep.Vaccinated)
	assert.Equal(t, core.SituationClosed, v.Request.Situation)
	assert.Equal(t, v.Date, v.Request.Date)
	assert.Equal(t, DefaultFarmLocation, v.FarmLocation)
	assert.Equal(t, DefaultSupervisor, v.Supervisor)
	assert.Equal(t, DefaultTeam, v.Team)

	assert.Len(t, st.Clients(), 1)
}

func TestVaccination_DateErrors(t *testing.T) {
	tests := []struct {
		name string
		date any
		want error
	}{
		{"missing", nil, core.ErrFieldMissing},
		{"blank", "  ", core.ErrFieldMissing},
		{"unparseable", "not a date", core.ErrInvalidDate},
		{"feb 29 in a common year", "29-Feb", core.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, st := newEnv(t)
			row := core.RawRow{"Name": "سالم", "ID": "1000000001"}
			if tt.date != nil {
				row["Date"] = tt.date
			}

			_, err := process(t, core.KindVaccination, env, row)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var fe *core.FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "date", fe.Field)

			assert.Empty(t, st.Clients(), "no client is created for a row without a date")
		})
	}
}

func TestVaccination_ArabicHeadersAndEnums(t *testing.T) {
	env, _ := newEnv(t)

	rec, err := process(t, core.KindVaccination, env, core.RawRow{
		"التاريخ":              "2025-03-01",
		"اسم العميل":           "خالد",
		"رقم الهوية":           "٢٢٣٣٤٤٥٥٦٦",
		"صحة القطيع":           "مريض",
		"التعامل مع الحيوانات": "صعب",
		"العمالة":              "غير متوفر",
		"سهولة الوصول":         "صعب الوصول",
		"فئة اللقاح":           "عاجل",
		"الأغنام":              "٥",
		"حالة الطلب":           "مفتوح",
	})
	require.NoError(t, err)
	v := rec.(*core.Vaccination)

	assert.Equal(t, day(2025, time.March, 1), v.Date)
	assert.Equal(t, "2233445566", v.Client.NationalID)
	assert.Equal(t, Sick, v.HerdHealth)
	assert.Equal(t, Difficult, v.AnimalsHandling)
	assert.Equal(t, NotAvailable, v.Labours)
	assert.Equal(t, HardToReach, v.ReachableLocation)
	assert.Equal(t, Emergency, v.VaccineCategory)
	assert.Equal(t, 5, v.HerdCounts.Sheep.Total)
	assert.Equal(t, core.SituationOpen, v.Request.Situation)
}

func TestVaccination_UnknownEnumFallsBack(t *testing.T) {
	env, _ := newEnv(t)

	rec, err := process(t, core.KindVaccination, env, core.RawRow{
		"date":       "2025-01-05",
		"name":       "Omar",
		"herdHealth": "excellent",
		"Labours":    "maybe",
	})
	require.NoError(t, err)
	v := rec.(*core.Vaccination)
	assert.Equal(t, Healthy, v.HerdHealth)
	assert.Equal(t, Available, v.Labours)
}

func TestVaccination_ClientIdentityMissing(t *testing.T) {
	env, _ := newEnv(t)

	_, err := process(t, core.KindVaccination, env, core.RawRow{
		"Date":  "2025-01-05",
		"Sheep": "4",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrClientIdentityMissing)
}

func TestParasiteControl_TemplateRow(t *testing.T) {
	env, _ := newEnv(t)

	rec, err := process(t, core.KindParasiteControl, env, templateRow(t, core.KindParasiteControl))
	require.NoError(t, err)
	p := rec.(*core.ParasiteControl)

	assert.Equal(t, "PAR-001", p.SerialNo)
	assert.Equal(t, day(2025, time.June, 22), p.Date)
	assert.Equal(t, "P1", p.VehicleNo)
	assert.Equal(t, 46.6753, p.Coordinates.Longitude)
	assert.Equal(t, 24.7136, p.Coordinates.Latitude)
	assert.Equal(t, core.SpeciesCount{Total: 50, Female: 30, Young: 10, Treated: 50}, p.HerdCounts.Sheep)
	assert.Equal(t, core.SpeciesCount{Total: 20, Female: 12, Young: 5, Treated: 20}, p.HerdCounts.Goats)
	assert.Equal(t, core.Insecticide{
		Type:     "Cypermethrin 10%",
		Method:   "Spraying",
		VolumeML: 370,
		Status:   Sprayed,
		Category: "Insecticide",
	}, p.Insecticide)
	assert.Equal(t, 150.0, p.AnimalBarnSizeSqM)
	assert.Equal(t, 370, p.ParasiteControlVolume)
	assert.Equal(t, DefaultControlStatus, p.ParasiteControlStatus)
	assert.Equal(t, DefaultBreedingSites, p.BreedingSites)
	assert.Equal(t, Healthy, p.HerdHealthStatus)
	assert.Equal(t, Comply, p.ComplyingToInstructions)
	assert.Equal(t, day(2025, time.June, 19), p.Request.Date)
	assert.Equal(t, day(2025, time.June, 22), p.Request.FulfillingDate)
	require.NoError(t, p.Validate())
}

func TestParasiteControl_Defaults(t *testing.T) {
	env, _ := newEnv(t)

	rec, err := process(t, core.KindParasiteControl, env, core.RawRow{
		"date":                    "2025-02-10",
		"name":                    "Fahad",
		"complyingToInstructions": "غير ملتزم",
		"insecticideStatus":       "not sprayed",
	})
	require.NoError(t, err)
	p := rec.(*core.ParasiteControl)

	assert.Equal(t, DefaultInsecticideType, p.Insecticide.Type)
	assert.Equal(t, DefaultInsecticideMethod, p.Insecticide.Method)
	assert.Equal(t, DefaultInsecticideCategory, p.Insecticide.Category)
	assert.Equal(t, NotSprayed, p.Insecticide.Status)
	assert.Equal(t, NotComply, p.ComplyingToInstructions)
	assert.Equal(t, DefaultFarmLocation, p.HerdLocation)
	assert.Regexp(t, `^PAR-`, p.SerialNo)
}

func TestMobileClinic_TemplateRow(t *testing.T) {
	env, _ := newEnv(t)

	rec, err := process(t, core.KindMobileClinic, env, templateRow(t, core.KindMobileClinic))
	require.NoError(t, err)
	c := rec.(*core.MobileClinic)

	assert.Equal(t, "MC-001", c.SerialNo)
	assert.Equal(t, "HC001", c.HoldingCode)
	assert.Equal(t, "C2", c.VehicleNo)
	assert.Equal(t, core.AnimalCounts{Sheep: 15, Goats: 8, Cattle: 2}, c.AnimalCounts)
	assert.Equal(t, "التهاب رئوي", c.Diagnosis)
	assert.Equal(t, Routine, c.InterventionCategory)
	assert.Equal(t, []string{"Zuprevo", "Meloxicam"}, c.MedicationsUsed)
	assert.False(t, c.FollowUpRequired)
	assert.True(t, c.FollowUpDate.IsZero())
	assert.Equal(t, day(2025, time.August, 23), c.Request.Date)
	require.NoError(t, c.Validate())
}

func TestMobileClinic_FollowUp(t *testing.T) {
	tests := []struct {
		name     string
		row      core.RawRow
		required bool
		want     time.Time
	}{
		{
			name: "explicit date",
			row: core.RawRow{
				"Follow Up Required": "نعم",
				"Follow Up Date":     "2025-09-15",
			},
			required: true,
			want:     day(2025, time.September, 15),
		},
		{
			name: "falls back to fulfilling date",
			row: core.RawRow{
				"followUpRequired":        true,
				"Request Fulfilling Date": "2025-08-30",
			},
			required: true,
			want:     day(2025, time.August, 30),
		},
		{
			name:     "not required",
			row:      core.RawRow{"followUpRequired": "no"},
			required: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newEnv(t)
			row := core.RawRow{"Date": "2025-08-20", "Name": "Saad"}
			for k, v := range tt.row {
				row[k] = v
			}

			rec, err := process(t, core.KindMobileClinic, env, row)
			require.NoError(t, err)
			c := rec.(*core.MobileClinic)
			assert.Equal(t, tt.required, c.FollowUpRequired)
			assert.Equal(t, tt.want, c.FollowUpDate)
		})
	}
}

func TestEquineHealth_TemplateRow(t *testing.T) {
	env, _ := newEnv(t)

	rec, err := process(t, core.KindEquineHealth, env, templateRow(t, core.KindEquineHealth))
	require.NoError(t, err)
	e := rec.(*core.EquineHealth)

	assert.Equal(t, "EH-001", e.SerialNo)
	assert.Equal(t, core.HorseDetails{Total: 4, Male: 2, Female: 1, Young: 1}, e.HorseDetails)
	assert.Equal(t, Healthy, e.HealthStatus)
	assert.Equal(t, ServiceCheckup, e.ServiceType)
	assert.Equal(t, Routine, e.InterventionCategory)
	assert.Equal(t, []string{"Tetanus", "Influenza"}, e.VaccinesGiven)
	assert.Equal(t, []string{"Vitamin B12"}, e.MedicationsUsed)
	assert.False(t, e.FollowUpRequired)
	require.NoError(t, e.Validate())
}

func TestEquineHealth_ArabicEnums(t *testing.T) {
	env, _ := newEnv(t)

	rec, err := process(t, core.KindEquineHealth, env, core.RawRow{
		"التاريخ":          "2025-05-05",
		"الاسم":            "بدر",
		"الحالة الصحية":    "حجر صحي",
		"نوع الخدمة":       "تطعيم",
		"عدد الخيول":       "3",
		"اللقاحات المعطاة": "انفلونزا، كزاز",
	})
	require.NoError(t, err)
	e := rec.(*core.EquineHealth)

	assert.Equal(t, Quarantine, e.HealthStatus)
	assert.Equal(t, ServiceVaccination, e.ServiceType)
	assert.Equal(t, 3, e.HorseDetails.Total)
	assert.Equal(t, []string{"انفلونزا", "كزاز"}, e.VaccinesGiven)
	assert.Empty(t, e.MedicationsUsed)
}

func TestLaboratory_TemplateRow(t *testing.T) {
	env, _ := newEnv(t)

	rec, err := process(t, core.KindLaboratory, env, templateRow(t, core.KindLaboratory))
	require.NoError(t, err)
	l := rec.(*core.Laboratory)

	assert.Equal(t, "LAB-001", l.SampleCode)
	assert.Equal(t, "LAB-001", l.Serial())
	assert.Equal(t, core.AnimalCounts{Sheep: 5, Goats: 3, Other: "Poultry"}, l.SpeciesCounts)
	assert.Equal(t, "د. علي حسن", l.Collector)
	assert.Equal(t, "Blood", l.SampleType)
	assert.Equal(t, "S001", l.SampleNumber)
	assert.Equal(t, 1, l.PositiveCases)
	assert.Equal(t, 7, l.NegativeCases)
	assert.Equal(t, "المزاحمية", l.Location)
	require.NoError(t, l.Validate())
}

func TestLaboratory_GeneratedSampleCode(t *testing.T) {
	env, _ := newEnv(t)

	rec, err := process(t, core.KindLaboratory, env, core.RawRow{
		"date": "2025-04-01",
		"name": "Nasser",
	})
	require.NoError(t, err)
	l := rec.(*core.Laboratory)
	assert.Regexp(t, `^LAB-\d+-[0-9a-f]{9}$`, l.SampleCode)
	assert.Equal(t, DefaultCollector, l.Collector)
	assert.Equal(t, DefaultSampleType, l.SampleType)
}

func TestEnumMaps(t *testing.T) {
	tests := []struct {
		name  string
		m     core.EnumMap
		input string
		want  string
	}{
		{"vaccine category english", vaccineCategoryMap, "Vaccination", Preventive},
		{"vaccine category arabic", vaccineCategoryMap, "وقائي", Preventive},
		{"herd health sporadic", herdHealthMap, "Sporadic", Sick},
		{"herd health arabic", herdHealthMap, "تحت العلاج", UnderTreatment},
		{"handling phrase", animalsHandlingMap, "Easy handling", Easy},
		{"labours unavailable", laboursMap, "UNAVAILABLE", NotAvailable},
		{"reachable hard", reachableLocationMap, "hard", HardToReach},
		{"insecticide arabic", insecticideStatusMap, "غير مرشوش", NotSprayed},
		{"compliance true", complianceMap, "true", Comply},
		{"intervention follow up", interventionCategoryMap, "Follow-up", FollowUp},
		{"intervention arabic", interventionCategoryMap, "طارئ", Emergency},
		{"service checkup arabic", serviceTypeMap, "فحص", ServiceCheckup},
		{"equine quarantine", equineHealthMap, "Quarantine", Quarantine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.NormalizeEnum(tt.input, tt.m, "DEFAULT")
			assert.Equal(t, tt.want, got)
		})
	}
}
