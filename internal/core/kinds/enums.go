package kinds

import "github.com/JonMunkholm/vetrecords/internal/core"

// Canonical enum values.
const (
	Healthy        = "Healthy"
	Sick           = "Sick"
	UnderTreatment = "Under Treatment"
	Quarantine     = "Quarantine"

	Preventive = "Preventive"
	Emergency  = "Emergency"

	Easy        = "Easy"
	Difficult   = "Difficult"
	HardToReach = "Hard to reach"

	Available    = "Available"
	NotAvailable = "Not Available"

	Sprayed    = "Sprayed"
	NotSprayed = "Not Sprayed"

	Comply    = "Comply"
	NotComply = "Not Comply"

	Routine  = "Routine"
	FollowUp = "Follow-up"

	ServiceVaccination = "Vaccination"
	ServiceTreatment   = "Treatment"
	ServiceCheckup     = "Checkup"
	ServiceEmergency   = "Emergency"
)

var vaccineCategoryMap = core.EnumMap{
	"vaccination": Preventive,
	"preventive":  Preventive,
	"prevention":  Preventive,
	"وقائي":       Preventive,
	"emergency":   Emergency,
	"urgent":      Emergency,
	"عاجل":        Emergency,
	"طارئ":        Emergency,
}

var herdHealthMap = core.EnumMap{
	"healthy":         Healthy,
	"صحي":             Healthy,
	"سليم":            Healthy,
	"sick":            Sick,
	"sporadic":        Sick,
	"مريض":            Sick,
	"under treatment": UnderTreatment,
	"تحت العلاج":      UnderTreatment,
}

// equineHealthMap extends herd health with quarantine.
var equineHealthMap = core.EnumMap{
	"healthy":         Healthy,
	"صحي":             Healthy,
	"sick":            Sick,
	"مريض":            Sick,
	"under treatment": UnderTreatment,
	"تحت العلاج":      UnderTreatment,
	"quarantine":      Quarantine,
	"حجر صحي":         Quarantine,
}

var animalsHandlingMap = core.EnumMap{
	"easy":          Easy,
	"easy handling": Easy,
	"سهل":           Easy,
	"difficult":     Difficult,
	"hard":          Difficult,
	"صعب":           Difficult,
}

var laboursMap = core.EnumMap{
	"available":     Available,
	"متوفر":         Available,
	"not available": NotAvailable,
	"unavailable":   NotAvailable,
	"غير متوفر":     NotAvailable,
}

var reachableLocationMap = core.EnumMap{
	"easy":          Easy,
	"سهل":           Easy,
	"hard to reach": HardToReach,
	"difficult":     HardToReach,
	"hard":          HardToReach,
	"صعب الوصول":    HardToReach,
}

var insecticideStatusMap = core.EnumMap{
	"sprayed":     Sprayed,
	"مرشوش":       Sprayed,
	"not sprayed": NotSprayed,
	"غير مرشوش":   NotSprayed,
}

var complianceMap = core.EnumMap{
	"comply":     Comply,
	"true":       Comply,
	"yes":        Comply,
	"ملتزم":      Comply,
	"نعم":        Comply,
	"not comply": NotComply,
	"false":      NotComply,
	"no":         NotComply,
	"غير ملتزم":  NotComply,
	"لا":         NotComply,
}

var interventionCategoryMap = core.EnumMap{
	"emergency":            Emergency,
	"طارئ":                 Emergency,
	"routine":              Routine,
	"روتيني":               Routine,
	"clinical examination": Routine,
	"follow-up":            FollowUp,
	"follow up":            FollowUp,
	"متابعة":               FollowUp,
}

var serviceTypeMap = core.EnumMap{
	"vaccination": ServiceVaccination,
	"تطعيم":       ServiceVaccination,
	"treatment":   ServiceTreatment,
	"علاج":        ServiceTreatment,
	"checkup":     ServiceCheckup,
	"فحص":         ServiceCheckup,
	"emergency":   ServiceEmergency,
	"طارئ":        ServiceEmergency,
}
