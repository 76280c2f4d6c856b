package core

import "time"

// Alias sets shared by every record kind. Kind-specific sets live with the
// kind's processor.
//
// "ID" and "id" identify the client, never the record serial: uploaded
// sheets use the ID column for the owner's national ID.
var (
	ClientNameAliases = Aliases(
		"Name", "name", "clientName", "Client Name", "client_name", "client",
		"owner", "Owner", "farmer", "Farmer",
		"الاسم", "اسم العميل", "اسم المربي", "المالك", "العميل",
	)
	ClientIDAliases = Aliases(
		"ID", "id", "clientId", "Client ID", "clientNationalId", "client_id",
		"nationalId", "National ID", "ownerId", "Owner ID", "identity", "Identity",
		"رقم الهوية", "الهوية", "هوية",
	)
	ClientPhoneAliases = Aliases(
		"Phone", "phone", "clientPhone", "Client Phone", "client_phone",
		"Mobile", "mobile", "phoneNumber", "Phone Number",
		"tel", "Tel", "telephone", "Telephone",
		"رقم الهاتف", "الهاتف", "جوال", "موبايل",
	)
	ClientVillageAliases = Aliases(
		"Location", "location", "Village", "village", "clientVillage", "client_village",
		"Farm Location", "farmLocation", "address",
		"القرية", "الموقع", "موقع المزرعة", "العنوان",
	)

	DateAliases = Aliases(
		"date", "Date", "DATE", "تاريخ", "التاريخ",
	)
	SerialAliases = Aliases(
		"serialNo", "Serial No", "serial_no", "Serial", "serial", "الرقم التسلسلي",
	)
	RemarksAliases = Aliases(
		"remarks", "Remarks", "notes", "Notes", "ملاحظات",
	)
	SupervisorAliases = Aliases(
		"supervisor", "Supervisor", "المشرف",
	)
	VehicleAliases = Aliases(
		"vehicleNo", "Vehicle No.", "Vehicle No", "vehicle_no", "رقم المركبة",
	)
	FarmLocationAliases = Aliases(
		"farmLocation", "Location", "location", "Farm Location",
		"الموقع", "موقع المزرعة",
	)

	LatitudeAliases = Aliases(
		"latitude", "Latitude", "lat", "N Coordinate", "N", "خط العرض",
	)
	LongitudeAliases = Aliases(
		"longitude", "Longitude", "lng", "lon", "E Coordinate", "E", "خط الطول",
	)

	RequestDateAliases = Aliases(
		"requestDate", "Request Date", "request_date", "تاريخ الطلب",
	)
	RequestFulfillingDateAliases = Aliases(
		"requestFulfillingDate", "Request Fulfilling Date", "request_fulfilling_date",
		"تاريخ تنفيذ الطلب",
	)
	RequestSituationAliases = Aliases(
		"requestSituation", "Request Situation", "request_situation",
		"Situation", "Request Status", "حالة الطلب",
	)
)

// SituationMap normalizes request situations.
var SituationMap = EnumMap{
	"closed":  SituationClosed,
	"open":    SituationOpen,
	"pending": SituationPending,
	"مغلق":    SituationClosed,
	"مفتوح":   SituationOpen,
	"معلق":    SituationPending,
}

// ClientInputFromRow gathers the client identity fields of a row.
func ClientInputFromRow(row RawRow) ClientInput {
	return ClientInput{
		Name:       StringOr(row, ClientNameAliases, ""),
		NationalID: StringOr(row, ClientIDAliases, ""),
		Phone:      StringOr(row, ClientPhoneAliases, ""),
		Village:    StringOr(row, ClientVillageAliases, ""),
	}
}

// RequestFromRow builds the request sub-record. A missing request date
// falls back to the record's main date; a missing fulfilling date falls
// back to the request date.
func RequestFromRow(row RawRow, date, now time.Time) Request {
	req := Request{
		Date:      date,
		Situation: NormalizeEnum(Value(row, RequestSituationAliases), SituationMap, SituationClosed),
	}
	if t, ok := ParseDate(Value(row, RequestDateAliases), now); ok {
		req.Date = t
	}
	req.FulfillingDate = req.Date
	if t, ok := ParseDate(Value(row, RequestFulfillingDateAliases), now); ok {
		req.FulfillingDate = t
	}
	return req
}

// CoordinatesFromRow reads an optional GPS position.
func CoordinatesFromRow(row RawRow) Coordinates {
	return Coordinates{
		Latitude:  ToFloat(Value(row, LatitudeAliases)),
		Longitude: ToFloat(Value(row, LongitudeAliases)),
	}
}

// Value resolves a field and returns it, or nil when absent.
func Value(row RawRow, aliases FieldAliasSet) any {
	v, _ := Resolve(row, aliases)
	return v
}
