package names

// DefaultCanonical is the built-in name to crest asset key table. The server
// wires it in as-is; hosts with their own asset packs inject a replacement.
func DefaultCanonical() map[string]string {
	return map[string]string{
		"København":            "fc-koebenhavn",
		"Bayern München":       "bayern-muenchen",
		"Borussia Dortmund":    "borussia-dortmund",
		"1. FC Köln":           "fc-koeln",
		"Real Madrid":          "real-madrid",
		"Atlético Madrid":      "atletico-madrid",
		"Barcelona":            "barcelona",
		"Manchester City":      "manchester-city",
		"Manchester United":    "manchester-united",
		"Arsenal":              "arsenal",
		"Liverpool":            "liverpool",
		"Chelsea":              "chelsea",
		"Tottenham Hotspur":    "tottenham",
		"Internazionale":       "inter",
		"Milan":                "milan",
		"Juventus":             "juventus",
		"Napoli":               "napoli",
		"Paris Saint-Germain":  "psg",
		"Olympique Marseille":  "marseille",
		"Ajax":                 "ajax",
		"PSV":                  "psv",
		"Feyenoord":            "feyenoord",
		"Galatasaray":          "galatasaray",
		"Fenerbahçe":           "fenerbahce",
		"Beşiktaş":             "besiktas",
		"Crvena zvezda":        "crvena-zvezda",
		"Malmö FF":             "malmoe",
		"Brøndby":              "broendby",
		"Germany":              "germany",
		"Denmark":              "denmark",
		"Netherlands":          "netherlands",
		"Spain":                "spain",
		"England":              "england",
		"France":               "france",
		"Italy":                "italy",
		"Portugal":             "portugal",
		"Türkiye":              "tuerkiye",
		"Czechia":              "czechia",
		"Switzerland":          "switzerland",
		"Austria":              "austria",
		"Croatia":              "croatia",
		"Serbia":               "serbia",
	}
}

// DefaultAliases covers well-known alternate spellings that survive
// normalization as distinct strings.
func DefaultAliases() map[string]string {
	return map[string]string{
		"Koebenhavn":        "fc-koebenhavn",
		"Copenhagen":        "fc-koebenhavn",
		"FC Copenhagen":     "fc-koebenhavn",
		"Bayern Munich":     "bayern-muenchen",
		"Cologne":           "fc-koeln",
		"Inter":             "inter",
		"Inter Milan":       "inter",
		"AC Milan":          "milan",
		"Spurs":             "tottenham",
		"Man City":          "manchester-city",
		"Man Utd":           "manchester-united",
		"Man United":        "manchester-united",
		"Red Star Belgrade": "crvena-zvezda",
		"Marseille":         "marseille",
		"Holland":           "netherlands",
		"Turkey":            "tuerkiye",
		"Czech Republic":    "czechia",
	}
}
