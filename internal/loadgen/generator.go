package loadgen

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// marketShape describes a catalogue market the generator can observe: its
// outcomes and how to draw valid specifiers for it.
type marketShape struct {
	id         int
	outcomes   []string
	specifiers func(r *rand.Rand) string
}

var handicaps = []string{"-2.5", "-1.5", "-0.5", "0", "0.5", "1.5", "2.5"} //nolint:gochecknoglobals // fixed draw table

func halfLine(r *rand.Rand) string {
	return strconv.Itoa(r.IntN(6)) + ".5"
}

// shapes covers markets of the embedded catalogue that the demo profiles
// can name.
var shapes = []marketShape{ //nolint:gochecknoglobals // fixed draw table
	{id: 1, outcomes: []string{"1", "2", "3"}},
	{id: 16, outcomes: []string{"1714", "1715"}, specifiers: func(r *rand.Rand) string {
		return "hcp=" + handicaps[r.IntN(len(handicaps))]
	}},
	{id: 18, outcomes: []string{"12", "13"}, specifiers: func(r *rand.Rand) string {
		return "total=" + halfLine(r)
	}},
	{id: 29, outcomes: []string{"74", "76"}},
	{id: 117, outcomes: []string{"1826", "1827"}, specifiers: func(r *rand.Rand) string {
		return "inningnr=" + strconv.Itoa(1+r.IntN(9)) + "|runnr=" + strconv.Itoa(1+r.IntN(20))
	}},
	{id: 155, outcomes: []string{"1714", "1715"}, specifiers: func(r *rand.Rand) string {
		return "hcp=" + handicaps[r.IntN(len(handicaps))] + "|quarternr=" + strconv.Itoa(1+r.IntN(4))
	}},
	{id: 888, outcomes: []string{"12", "13"}, specifiers: func(r *rand.Rand) string {
		return "player=sr:player:" + strconv.Itoa(1+r.IntN(3)) + "|total=" + halfLine(r)
	}},
}

// generateObservations draws n observations spread over eventIDs.
func generateObservations(n int, eventIDs []string, seed uint64) []Observation {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	out := make([]Observation, n)
	for i := range out {
		shape := shapes[r.IntN(len(shapes))]
		o := Observation{
			ObservationID: uuid.NewString(),
			EventID:       eventIDs[r.IntN(len(eventIDs))],
			MarketID:      shape.id,
			OutcomeIDs:    shape.outcomes,
		}
		if shape.specifiers != nil {
			o.Specifiers = shape.specifiers(r)
		}
		out[i] = o
	}
	return out
}

// nameKey matches the key the service stores names under.
func nameKey(eventID string, marketID int, specifiers, outcomeID, lang string) string {
	return eventID + "#" + strconv.Itoa(marketID) + "#" + specifiers + "#" + outcomeID + "#" + lang
}

// expectedNames lists every name the service should store for obs.
func expectedNames(obs []Observation, langs []string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, o := range obs {
		for _, lang := range langs {
			out[nameKey(o.EventID, o.MarketID, o.Specifiers, "", lang)] = struct{}{}
			for _, oc := range o.OutcomeIDs {
				out[nameKey(o.EventID, o.MarketID, o.Specifiers, oc, lang)] = struct{}{}
			}
		}
	}
	return out
}
