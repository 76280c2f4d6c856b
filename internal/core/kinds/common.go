package kinds

import (
	"context"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

// species names a herd species the way sheets spell it.
type species struct {
	key    string // camelCase key prefix, e.g. "camel"
	title  string // header form, e.g. "Camel"
	plural string // plural header form, e.g. "Camels"
}

var allSpecies = []species{
	{"sheep", "Sheep", "Sheep"},
	{"goats", "Goats", "Goats"},
	{"camel", "Camel", "Camels"},
	{"cattle", "Cattle", "Cattle"},
	{"horse", "Horse", "Horses"},
}

// speciesAliases holds per-species alias sets keyed by counter name.
var speciesAliases = buildSpeciesAliases()

func buildSpeciesAliases() map[string]map[string]core.FieldAliasSet {
	out := make(map[string]map[string]core.FieldAliasSet, len(allSpecies))
	for _, s := range allSpecies {
		label := func(counter string) string {
			return core.HeaderLabel("herdCounts." + s.key + "." + counter)
		}
		out[s.key] = map[string]core.FieldAliasSet{
			"total": core.Aliases(
				s.key+"Total", s.key, s.title+" Total", s.title,
				"Total "+s.title, "Total "+s.plural, s.plural, label("total"),
			),
			"female": core.Aliases(
				s.key+"Female", s.title+" Female", "F. "+s.title,
				"Female "+s.title, "Female "+s.plural, label("female"),
			),
			"young": core.Aliases(
				s.key+"Young", s.title+" Young", "Young "+s.title, "Young "+s.plural, label("young"),
			),
			"vaccinated": core.Aliases(
				s.key+"Vaccinated", s.title+" Vaccinated", "Vaccinated "+s.title,
				"Vaccinated "+s.plural, label("vaccinated"),
			),
			"treated": core.Aliases(
				s.key+"Treated", s.title+" Treated", "Treated "+s.title,
				"Treated "+s.plural, label("treated"),
			),
		}
	}
	return out
}

// herdCountsFromRow reads the per-species herd breakdown.
func herdCountsFromRow(row core.RawRow) core.HerdCounts {
	var h core.HerdCounts
	targets := []*core.SpeciesCount{&h.Sheep, &h.Goats, &h.Camel, &h.Cattle, &h.Horse}
	for i, s := range allSpecies {
		a := speciesAliases[s.key]
		*targets[i] = core.SpeciesCount{
			Total:      core.ToInt(core.Value(row, a["total"])),
			Female:     core.ToInt(core.Value(row, a["female"])),
			Young:      core.ToInt(core.Value(row, a["young"])),
			Vaccinated: core.ToInt(core.Value(row, a["vaccinated"])),
			Treated:    core.ToInt(core.Value(row, a["treated"])),
		}
	}
	return h
}

// animalCountsFromRow reads flat head counts per species. prefix selects
// the Arabic export labels to accept ("animalCounts" or "speciesCounts").
func animalCountsFromRow(row core.RawRow, prefix string) core.AnimalCounts {
	count := func(key string) int {
		aliases := speciesAliases[key]["total"].With(core.HeaderLabel(prefix + "." + key))
		return core.ToInt(core.Value(row, aliases))
	}
	return core.AnimalCounts{
		Sheep:  count("sheep"),
		Goats:  count("goats"),
		Camel:  count("camel"),
		Cattle: count("cattle"),
		Horse:  count("horse"),
	}
}

// baseFromRow runs the steps every kind shares: the required date, then
// the client. Nothing is created for a row whose date is missing or invalid.
func baseFromRow(ctx context.Context, env *core.RowEnv, row core.RawRow) (core.RecordBase, error) {
	date, err := core.RequiredDate("date", core.Value(row, core.DateAliases), env.Now)
	if err != nil {
		return core.RecordBase{}, err
	}

	client, err := env.Clients.Resolve(ctx, core.ClientInputFromRow(row), env.Actor)
	if err != nil {
		return core.RecordBase{}, err
	}

	return core.RecordBase{
		Date:      date,
		Client:    client,
		Remarks:   core.StringOr(row, core.RemarksAliases, ""),
		CreatedBy: env.Actor,
	}, nil
}

// serialFromRow allocates the record serial from the row's serial column.
func serialFromRow(ctx context.Context, env *core.RowEnv, kind core.Kind, row core.RawRow, aliases core.FieldAliasSet) string {
	return env.Serials.Allocate(ctx, kind, core.StringOr(row, aliases, ""))
}

// listFromRow splits a comma-separated cell into items.
func listFromRow(row core.RawRow, aliases core.FieldAliasSet) []string {
	return core.SplitList(core.Value(row, aliases))
}
