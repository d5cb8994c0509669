package ledger

import "ai-trip-planner/internal/trip"

// EmergencyNumbers is the static per-country emergency contact table.
var EmergencyNumbers = map[string][]trip.EmergencyContact{
	"Japan": {
		{Name: "POLICE", Number: "110", Note: "POLICE"},
		{Name: "FIRE/AMBULANCE", Number: "119", Note: "EMERGENCY"},
	},
	"South Korea": {
		{Name: "POLICE", Number: "112", Note: "POLICE"},
		{Name: "FIRE/AMBULANCE", Number: "119", Note: "EMERGENCY"},
	},
	"Taiwan": {
		{Name: "POLICE", Number: "110", Note: "POLICE"},
		{Name: "FIRE/AMBULANCE", Number: "119", Note: "EMERGENCY"},
	},
	"Thailand": {
		{Name: "TOURIST POLICE", Number: "1155", Note: "ENGLISH SPOKEN"},
		{Name: "AMBULANCE", Number: "1669", Note: "MEDICAL"},
	},
}

// SeedEmergencyContacts appends the country's standard numbers that are not
// already present, matched by phone number. Existing contacts are never
// overwritten. An unknown country returns the contacts unchanged.
func SeedEmergencyContacts(contacts []trip.EmergencyContact, country string) []trip.EmergencyContact {
	seeds, ok := EmergencyNumbers[country]
	if !ok {
		return contacts
	}

	known := make(map[string]bool, len(contacts))
	for _, c := range contacts {
		known[c.Number] = true
	}

	for _, seed := range seeds {
		if known[seed.Number] {
			continue
		}
		seed.ID = trip.NewID()
		contacts = append(contacts, seed)
		known[seed.Number] = true
	}
	return contacts
}
