package core

// ArabicHeaders maps export field keys to their Arabic column labels.
// Keys without an entry are exported under the key itself.
var ArabicHeaders = map[string]string{
	// Clients
	"name":            "الاسم",
	"nationalId":      "رقم الهوية",
	"phone":           "رقم الهاتف",
	"email":           "البريد الإلكتروني",
	"village":         "القرية",
	"detailedAddress": "العنوان التفصيلي",
	"status":          "الحالة",

	// Shared
	"serialNo":              "الرقم التسلسلي",
	"date":                  "التاريخ",
	"client":                "العميل",
	"client.nationalId":     "رقم الهوية",
	"client.phone":          "رقم الهاتف",
	"client.village":        "القرية",
	"supervisor":            "المشرف",
	"vehicleNo":             "رقم المركبة",
	"remarks":               "ملاحظات",
	"createdAt":             "تاريخ الإنشاء",
	"coordinates.latitude":  "خط العرض",
	"coordinates.longitude": "خط الطول",

	// Request
	"request.date":           "تاريخ الطلب",
	"request.situation":      "حالة الطلب",
	"request.fulfillingDate": "تاريخ تنفيذ الطلب",

	// Vaccination
	"farmLocation":      "موقع المزرعة",
	"team":              "الفريق",
	"vaccineType":       "نوع اللقاح",
	"vaccineCategory":   "فئة اللقاح",
	"herdHealth":        "صحة القطيع",
	"animalsHandling":   "التعامل مع الحيوانات",
	"labours":           "العمالة",
	"reachableLocation": "سهولة الوصول",

	// Herd counts
	"herdCounts.sheep.total":       "الأغنام",
	"herdCounts.sheep.female":      "إناث الأغنام",
	"herdCounts.sheep.young":       "صغار الأغنام",
	"herdCounts.sheep.vaccinated":  "الأغنام المحصنة",
	"herdCounts.sheep.treated":     "الأغنام المعالجة",
	"herdCounts.goats.total":       "الماعز",
	"herdCounts.goats.female":      "إناث الماعز",
	"herdCounts.goats.young":       "صغار الماعز",
	"herdCounts.goats.vaccinated":  "الماعز المحصنة",
	"herdCounts.goats.treated":     "الماعز المعالجة",
	"herdCounts.camel.total":       "الإبل",
	"herdCounts.camel.female":      "إناث الإبل",
	"herdCounts.camel.young":       "صغار الإبل",
	"herdCounts.camel.vaccinated":  "الإبل المحصنة",
	"herdCounts.camel.treated":     "الإبل المعالجة",
	"herdCounts.cattle.total":      "الأبقار",
	"herdCounts.cattle.female":     "إناث الأبقار",
	"herdCounts.cattle.young":      "صغار الأبقار",
	"herdCounts.cattle.vaccinated": "الأبقار المحصنة",
	"herdCounts.cattle.treated":    "الأبقار المعالجة",
	"herdCounts.horse.total":       "الخيول",
	"herdCounts.horse.female":      "إناث الخيول",
	"herdCounts.horse.young":       "صغار الخيول",
	"herdCounts.horse.vaccinated":  "الخيول المحصنة",
	"herdCounts.horse.treated":     "الخيول المعالجة",
	"herdCounts.total":             "إجمالي القطيع",
	"herdCounts.female":            "إجمالي الإناث",
	"herdCounts.young":             "إجمالي الصغار",
	"herdCounts.vaccinated":        "إجمالي المحصن",
	"herdCounts.treated":           "إجمالي المعالج",

	// Parasite control
	"herdLocation":            "موقع القطيع",
	"insecticide":             "المبيد",
	"insecticide.type":        "نوع المبيد",
	"insecticide.method":      "طريقة الرش",
	"insecticide.volumeMl":    "حجم المبيد (مل)",
	"insecticide.status":      "حالة الرش",
	"insecticide.category":    "فئة المبيد",
	"animalBarnSizeSqM":       "مساحة الحظيرة",
	"breedingSites":           "مواقع التكاثر",
	"parasiteControlVolume":   "حجم مكافحة الطفيليات",
	"parasiteControlStatus":   "حالة مكافحة الطفيليات",
	"herdHealthStatus":        "حالة صحة القطيع",
	"complyingToInstructions": "الالتزام بالتعليمات",

	// Mobile clinics
	"holdingCode":          "رمز الحيازة",
	"animalCounts":         "عدد الحيوانات",
	"animalCounts.sheep":   "الأغنام",
	"animalCounts.goats":   "الماعز",
	"animalCounts.camel":   "الإبل",
	"animalCounts.cattle":  "الأبقار",
	"animalCounts.horse":   "الخيول",
	"diagnosis":            "التشخيص",
	"interventionCategory": "فئة التدخل",
	"treatment":            "العلاج",
	"medicationsUsed":      "الأدوية المستخدمة",
	"followUpRequired":     "مطلوب متابعة",
	"followUpDate":         "تاريخ المتابعة",

	// Equine health
	"horseDetails.totalCount":  "عدد الخيول",
	"horseDetails.maleCount":   "ذكور الخيول",
	"horseDetails.femaleCount": "إناث الخيول",
	"horseDetails.youngCount":  "صغار الخيول",
	"healthStatus":             "الحالة الصحية",
	"serviceType":              "نوع الخدمة",
	"vaccinesGiven":            "اللقاحات المعطاة",

	// Laboratories
	"sampleCode":           "رمز العينة",
	"location":             "الموقع",
	"speciesCounts":        "عدد الأنواع",
	"speciesCounts.sheep":  "الأغنام",
	"speciesCounts.goats":  "الماعز",
	"speciesCounts.camel":  "الإبل",
	"speciesCounts.cattle": "الأبقار",
	"speciesCounts.horse":  "الخيول",
	"speciesCounts.other":  "أنواع أخرى",
	"collector":            "جامع العينة",
	"sampleType":           "نوع العينة",
	"sampleNumber":         "رقم العينة",
	"positiveCases":        "الحالات الإيجابية",
	"negativeCases":        "الحالات السلبية",
	"testResults":          "نتائج الفحص",

	// Holding codes
	"code":        "الرمز",
	"description": "الوصف",
	"isActive":    "نشط",

	// Import history
	"action":      "الإجراء",
	"kind":        "النوع",
	"actor":       "المستخدم",
	"batchId":     "رقم الدفعة",
	"source":      "المصدر",
	"fileName":    "اسم الملف",
	"totalRows":   "إجمالي الصفوف",
	"successRows": "الصفوف الناجحة",
	"errorRows":   "الصفوف الفاشلة",
	"ipAddress":   "عنوان IP",
}

// HeaderLabel returns the Arabic label for key, or key itself.
func HeaderLabel(key string) string {
	if l, ok := ArabicHeaders[key]; ok {
		return l
	}
	return key
}
