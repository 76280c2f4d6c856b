package core

// records.go defines the typed service records produced by the row processors.
//
// Each record embeds RecordBase for the fields every kind shares and exposes
// Values() as a flat map of export keys to typed values. Nested structures use
// dotted keys ("herdCounts.sheep.total", "request.date") so the export
// formatter never needs reflection.

import (
	"fmt"
	"strings"
	"time"
)

// Record is a persisted service record of one kind.
type Record interface {
	Kind() Kind
	Base() *RecordBase
	Serial() string
	SetSerial(serial string)
	Values() map[string]any
	Validate() error
}

// RecordBase holds the fields shared by every service record.
type RecordBase struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Client    ClientRef `json:"client"`
	Remarks   string    `json:"remarks"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Base returns the shared fields.
func (b *RecordBase) Base() *RecordBase { return b }

func (b *RecordBase) putValues(m map[string]any) {
	m["date"] = b.Date
	m["client"] = b.Client
	m["client.nationalId"] = b.Client.NationalID
	m["client.phone"] = b.Client.Phone
	m["client.village"] = b.Client.Village
	m["remarks"] = b.Remarks
	m["createdAt"] = b.CreatedAt
}

func (b *RecordBase) validate() error {
	if b.Date.IsZero() {
		return persistenceError("date", "date is required")
	}
	if b.Client.ID == "" {
		return persistenceError("client", "client reference is required")
	}
	if b.CreatedBy == "" {
		return persistenceError("createdBy", "acting user is required")
	}
	return checkLength("remarks", b.Remarks, 1000)
}

// SpeciesCount is the per-species breakdown of a herd.
type SpeciesCount struct {
	Total      int `json:"total"`
	Female     int `json:"female"`
	Young      int `json:"young"`
	Vaccinated int `json:"vaccinated,omitempty"`
	Treated    int `json:"treated,omitempty"`
}

// HerdCounts groups species counts for herd-based services.
type HerdCounts struct {
	Sheep  SpeciesCount `json:"sheep"`
	Goats  SpeciesCount `json:"goats"`
	Camel  SpeciesCount `json:"camel"`
	Cattle SpeciesCount `json:"cattle"`
	Horse  SpeciesCount `json:"horse"`
}

// NamedCount pairs a species name with its counts.
type NamedCount struct {
	Name  string
	Count SpeciesCount
}

// Species returns the counts keyed by species name in a stable order.
func (h HerdCounts) Species() []NamedCount {
	return []NamedCount{
		{"sheep", h.Sheep},
		{"goats", h.Goats},
		{"camel", h.Camel},
		{"cattle", h.Cattle},
		{"horse", h.Horse},
	}
}

// Totals sums every species.
func (h HerdCounts) Totals() SpeciesCount {
	var t SpeciesCount
	for _, s := range h.Species() {
		t.Total += s.Count.Total
		t.Female += s.Count.Female
		t.Young += s.Count.Young
		t.Vaccinated += s.Count.Vaccinated
		t.Treated += s.Count.Treated
	}
	return t
}

func (h HerdCounts) putValues(m map[string]any) {
	for _, s := range h.Species() {
		prefix := "herdCounts." + s.Name + "."
		m[prefix+"total"] = s.Count.Total
		m[prefix+"female"] = s.Count.Female
		m[prefix+"young"] = s.Count.Young
		m[prefix+"vaccinated"] = s.Count.Vaccinated
		m[prefix+"treated"] = s.Count.Treated
	}
	t := h.Totals()
	m["herdCounts.total"] = t.Total
	m["herdCounts.female"] = t.Female
	m["herdCounts.young"] = t.Young
	m["herdCounts.vaccinated"] = t.Vaccinated
	m["herdCounts.treated"] = t.Treated
}

func (h HerdCounts) validate() error {
	for _, s := range h.Species() {
		c := s.Count
		if c.Total < 0 || c.Female < 0 || c.Young < 0 || c.Vaccinated < 0 || c.Treated < 0 {
			return persistenceError("herdCounts."+s.Name, "counts cannot be negative")
		}
	}
	return nil
}

// AnimalCounts is a flat head count per species.
type AnimalCounts struct {
	Sheep  int    `json:"sheep"`
	Goats  int    `json:"goats"`
	Camel  int    `json:"camel"`
	Cattle int    `json:"cattle"`
	Horse  int    `json:"horse"`
	Other  string `json:"other,omitempty"`
}

func (a AnimalCounts) putValues(m map[string]any, prefix string) {
	m[prefix+".sheep"] = a.Sheep
	m[prefix+".goats"] = a.Goats
	m[prefix+".camel"] = a.Camel
	m[prefix+".cattle"] = a.Cattle
	m[prefix+".horse"] = a.Horse
	m[prefix+".other"] = a.Other
	m[prefix] = a.Sheep + a.Goats + a.Camel + a.Cattle + a.Horse
}

func (a AnimalCounts) validate(field string) error {
	if a.Sheep < 0 || a.Goats < 0 || a.Camel < 0 || a.Cattle < 0 || a.Horse < 0 {
		return persistenceError(field, "counts cannot be negative")
	}
	return nil
}

// Request situations.
const (
	SituationOpen    = "Open"
	SituationClosed  = "Closed"
	SituationPending = "Pending"
)

// Request is the service request a visit fulfils.
type Request struct {
	Date           time.Time `json:"date"`
	FulfillingDate time.Time `json:"fulfillingDate"`
	Situation      string    `json:"situation"`
}

func (r Request) putValues(m map[string]any) {
	m["request.date"] = r.Date
	m["request.fulfillingDate"] = r.FulfillingDate
	m["request.situation"] = r.Situation
}

func (r Request) validate() error {
	switch r.Situation {
	case SituationOpen, SituationClosed, SituationPending:
	default:
		return persistenceError("request.situation", fmt.Sprintf("invalid situation %q", r.Situation))
	}
	if !r.FulfillingDate.IsZero() && !r.Date.IsZero() && r.FulfillingDate.Before(r.Date) {
		return persistenceError("request.fulfillingDate", "fulfilling date is before request date")
	}
	return nil
}

// Coordinates is an optional GPS position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) putValues(m map[string]any) {
	m["coordinates.latitude"] = c.Latitude
	m["coordinates.longitude"] = c.Longitude
}

// Vaccination is a vaccination campaign visit.
type Vaccination struct {
	RecordBase
	SerialNo          string      `json:"serialNo"`
	FarmLocation      string      `json:"farmLocation"`
	Coordinates       Coordinates `json:"coordinates"`
	Supervisor        string      `json:"supervisor"`
	Team              string      `json:"team"`
	VehicleNo         string      `json:"vehicleNo"`
	VaccineType       string      `json:"vaccineType"`
	VaccineCategory   string      `json:"vaccineCategory"`
	HerdCounts        HerdCounts  `json:"herdCounts"`
	HerdHealth        string      `json:"herdHealth"`
	AnimalsHandling   string      `json:"animalsHandling"`
	Labours           string      `json:"labours"`
	ReachableLocation string      `json:"reachableLocation"`
	Request           Request     `json:"request"`
}

func (v *Vaccination) Kind() Kind { return KindVaccination }
func (v *Vaccination) Serial() string { return v.SerialNo }
func (v *Vaccination) SetSerial(s string) { v.SerialNo = s }

func (v *Vaccination) Values() map[string]any {
	m := map[string]any{
		"serialNo":          v.SerialNo,
		"farmLocation":      v.FarmLocation,
		"supervisor":        v.Supervisor,
		"team":              v.Team,
		"vehicleNo":         v.VehicleNo,
		"vaccineType":       v.VaccineType,
		"vaccineCategory":   v.VaccineCategory,
		"herdHealth":        v.HerdHealth,
		"animalsHandling":   v.AnimalsHandling,
		"labours":           v.Labours,
		"reachableLocation": v.ReachableLocation,
	}
	v.RecordBase.putValues(m)
	v.Coordinates.putValues(m)
	v.HerdCounts.putValues(m)
	v.Request.putValues(m)
	return m
}

func (v *Vaccination) Validate() error {
	if err := validateSerial("serialNo", v.SerialNo); err != nil {
		return err
	}
	if err := v.RecordBase.validate(); err != nil {
		return err
	}
	for _, s := range v.HerdCounts.Species() {
		if s.Count.Vaccinated > s.Count.Total && s.Count.Total > 0 {
			return persistenceError("herdCounts."+s.Name+".vaccinated", "vaccinated exceeds total")
		}
	}
	if err := v.HerdCounts.validate(); err != nil {
		return err
	}
	return v.Request.validate()
}

// Insecticide describes the product applied during parasite control.
type Insecticide struct {
	Type     string `json:"type"`
	Method   string `json:"method"`
	VolumeML int    `json:"volumeMl"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

// ParasiteControl is a spraying / parasite treatment visit.
type ParasiteControl struct {
	RecordBase
	SerialNo                string      `json:"serialNo"`
	HerdLocation            string      `json:"herdLocation"`
	Coordinates             Coordinates `json:"coordinates"`
	Supervisor              string      `json:"supervisor"`
	VehicleNo               string      `json:"vehicleNo"`
	HerdCounts              HerdCounts  `json:"herdCounts"`
	Insecticide             Insecticide `json:"insecticide"`
	AnimalBarnSizeSqM       float64     `json:"animalBarnSizeSqM"`
	BreedingSites           string      `json:"breedingSites"`
	ParasiteControlVolume   int         `json:"parasiteControlVolume"`
	ParasiteControlStatus   string      `json:"parasiteControlStatus"`
	HerdHealthStatus        string      `json:"herdHealthStatus"`
	ComplyingToInstructions string      `json:"complyingToInstructions"`
	Request                 Request     `json:"request"`
}

func (p *ParasiteControl) Kind() Kind { return KindParasiteControl }
func (p *ParasiteControl) Serial() string { return p.SerialNo }
func (p *ParasiteControl) SetSerial(s string) { p.SerialNo = s }

func (p *ParasiteControl) Values() map[string]any {
	m := map[string]any{
		"serialNo":                p.SerialNo,
		"herdLocation":            p.HerdLocation,
		"supervisor":              p.Supervisor,
		"vehicleNo":               p.VehicleNo,
		"insecticide":             p.Insecticide.Type,
		"insecticide.type":        p.Insecticide.Type,
		"insecticide.method":      p.Insecticide.Method,
		"insecticide.volumeMl":    p.Insecticide.VolumeML,
		"insecticide.status":      p.Insecticide.Status,
		"insecticide.category":    p.Insecticide.Category,
		"animalBarnSizeSqM":       p.AnimalBarnSizeSqM,
		"breedingSites":           p.BreedingSites,
		"parasiteControlVolume":   p.ParasiteControlVolume,
		"parasiteControlStatus":   p.ParasiteControlStatus,
		"herdHealthStatus":        p.HerdHealthStatus,
		"complyingToInstructions": p.ComplyingToInstructions,
	}
	p.RecordBase.putValues(m)
	p.Coordinates.putValues(m)
	p.HerdCounts.putValues(m)
	p.Request.putValues(m)
	return m
}

func (p *ParasiteControl) Validate() error {
	if err := validateSerial("serialNo", p.SerialNo); err != nil {
		return err
	}
	if err := p.RecordBase.validate(); err != nil {
		return err
	}
	if err := p.HerdCounts.validate(); err != nil {
		return err
	}
	if p.Insecticide.VolumeML < 0 || p.ParasiteControlVolume < 0 || p.AnimalBarnSizeSqM < 0 {
		return persistenceError("insecticide.volumeMl", "volumes cannot be negative")
	}
	return p.Request.validate()
}

// MobileClinic is a clinical visit by a mobile veterinary unit.
type MobileClinic struct {
	RecordBase
	SerialNo             string       `json:"serialNo"`
	FarmLocation         string       `json:"farmLocation"`
	HoldingCode          string       `json:"holdingCode,omitempty"`
	Coordinates          Coordinates  `json:"coordinates"`
	Supervisor           string       `json:"supervisor"`
	VehicleNo            string       `json:"vehicleNo"`
	AnimalCounts         AnimalCounts `json:"animalCounts"`
	Diagnosis            string       `json:"diagnosis"`
	InterventionCategory string       `json:"interventionCategory"`
	Treatment            string       `json:"treatment"`
	MedicationsUsed      []string     `json:"medicationsUsed"`
	FollowUpRequired     bool         `json:"followUpRequired"`
	FollowUpDate         time.Time    `json:"followUpDate"`
	Request              Request      `json:"request"`
}

func (c *MobileClinic) Kind() Kind { return KindMobileClinic }
func (c *MobileClinic) Serial() string { return c.SerialNo }
func (c *MobileClinic) SetSerial(s string) { c.SerialNo = s }

func (c *MobileClinic) Values() map[string]any {
	m := map[string]any{
		"serialNo":             c.SerialNo,
		"farmLocation":         c.FarmLocation,
		"holdingCode":          c.HoldingCode,
		"supervisor":           c.Supervisor,
		"vehicleNo":            c.VehicleNo,
		"diagnosis":            c.Diagnosis,
		"interventionCategory": c.InterventionCategory,
		"treatment":            c.Treatment,
		"medicationsUsed":      c.MedicationsUsed,
		"followUpRequired":     c.FollowUpRequired,
		"followUpDate":         c.FollowUpDate,
	}
	c.RecordBase.putValues(m)
	c.Coordinates.putValues(m)
	c.AnimalCounts.putValues(m, "animalCounts")
	c.Request.putValues(m)
	return m
}

func (c *MobileClinic) Validate() error {
	if err := validateSerial("serialNo", c.SerialNo); err != nil {
		return err
	}
	if err := c.RecordBase.validate(); err != nil {
		return err
	}
	if err := c.AnimalCounts.validate("animalCounts"); err != nil {
		return err
	}
	if err := checkLength("holdingCode", c.HoldingCode, 50); err != nil {
		return err
	}
	return c.Request.validate()
}

// HorseDetails counts the horses seen on an equine visit.
type HorseDetails struct {
	Total  int `json:"totalCount"`
	Male   int `json:"maleCount"`
	Female int `json:"femaleCount"`
	Young  int `json:"youngCount"`
}

// EquineHealth is an equine health service visit.
type EquineHealth struct {
	RecordBase
	SerialNo             string       `json:"serialNo"`
	FarmLocation         string       `json:"farmLocation"`
	Coordinates          Coordinates  `json:"coordinates"`
	Supervisor           string       `json:"supervisor"`
	VehicleNo            string       `json:"vehicleNo"`
	HorseDetails         HorseDetails `json:"horseDetails"`
	HealthStatus         string       `json:"healthStatus"`
	ServiceType          string       `json:"serviceType"`
	InterventionCategory string       `json:"interventionCategory"`
	Diagnosis            string       `json:"diagnosis"`
	Treatment            string       `json:"treatment"`
	MedicationsUsed      []string     `json:"medicationsUsed"`
	VaccinesGiven        []string     `json:"vaccinesGiven"`
	FollowUpRequired     bool         `json:"followUpRequired"`
	FollowUpDate         time.Time    `json:"followUpDate"`
	Request              Request      `json:"request"`
}

func (e *EquineHealth) Kind() Kind { return KindEquineHealth }
func (e *EquineHealth) Serial() string { return e.SerialNo }
func (e *EquineHealth) SetSerial(s string) { e.SerialNo = s }

func (e *EquineHealth) Values() map[string]any {
	m := map[string]any{
		"serialNo":                 e.SerialNo,
		"farmLocation":             e.FarmLocation,
		"supervisor":               e.Supervisor,
		"vehicleNo":                e.VehicleNo,
		"horseDetails.totalCount":  e.HorseDetails.Total,
		"horseDetails.maleCount":   e.HorseDetails.Male,
		"horseDetails.femaleCount": e.HorseDetails.Female,
		"horseDetails.youngCount":  e.HorseDetails.Young,
		"healthStatus":             e.HealthStatus,
		"serviceType":              e.ServiceType,
		"interventionCategory":     e.InterventionCategory,
		"diagnosis":                e.Diagnosis,
		"treatment":                e.Treatment,
		"medicationsUsed":          e.MedicationsUsed,
		"vaccinesGiven":            e.VaccinesGiven,
		"followUpRequired":         e.FollowUpRequired,
		"followUpDate":             e.FollowUpDate,
	}
	e.RecordBase.putValues(m)
	e.Coordinates.putValues(m)
	e.Request.putValues(m)
	return m
}

func (e *EquineHealth) Validate() error {
	if err := validateSerial("serialNo", e.SerialNo); err != nil {
		return err
	}
	if err := e.RecordBase.validate(); err != nil {
		return err
	}
	h := e.HorseDetails
	if h.Total < 0 || h.Male < 0 || h.Female < 0 || h.Young < 0 {
		return persistenceError("horseDetails", "counts cannot be negative")
	}
	return e.Request.validate()
}

// Laboratory is a sample collection and test result record.
type Laboratory struct {
	RecordBase
	SampleCode    string       `json:"sampleCode"`
	Location      string       `json:"location"`
	Coordinates   Coordinates  `json:"coordinates"`
	Collector     string       `json:"collector"`
	SampleType    string       `json:"sampleType"`
	SampleNumber  string       `json:"sampleNumber"`
	SpeciesCounts AnimalCounts `json:"speciesCounts"`
	PositiveCases int          `json:"positiveCases"`
	NegativeCases int          `json:"negativeCases"`
	TestResults   string       `json:"testResults"`
}

func (l *Laboratory) Kind() Kind { return KindLaboratory }
func (l *Laboratory) Serial() string { return l.SampleCode }
func (l *Laboratory) SetSerial(s string) { l.SampleCode = s }

func (l *Laboratory) Values() map[string]any {
	m := map[string]any{
		"sampleCode":    l.SampleCode,
		"location":      l.Location,
		"collector":     l.Collector,
		"sampleType":    l.SampleType,
		"sampleNumber":  l.SampleNumber,
		"positiveCases": l.PositiveCases,
		"negativeCases": l.NegativeCases,
		"testResults":   l.TestResults,
	}
	l.RecordBase.putValues(m)
	l.Coordinates.putValues(m)
	l.SpeciesCounts.putValues(m, "speciesCounts")
	return m
}

func (l *Laboratory) Validate() error {
	if err := validateSerial("sampleCode", l.SampleCode); err != nil {
		return err
	}
	if err := l.RecordBase.validate(); err != nil {
		return err
	}
	if err := l.SpeciesCounts.validate("speciesCounts"); err != nil {
		return err
	}
	if l.PositiveCases < 0 || l.NegativeCases < 0 {
		return persistenceError("positiveCases", "case counts cannot be negative")
	}
	return nil
}

func validateSerial(field, serial string) error {
	if strings.TrimSpace(serial) == "" {
		return persistenceError(field, "serial is required")
	}
	return checkLength(field, serial, 100)
}

func checkLength(field, value string, max int) error {
	if len([]rune(value)) > max {
		return persistenceError(field, fmt.Sprintf("cannot exceed %d characters", max))
	}
	return nil
}
