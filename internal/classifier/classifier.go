// Package classifier labels free-text expense descriptions with one of a
// fixed, closed set of spending categories. Classification is deterministic
// keyword matching, so the same description always yields the same label.
package classifier

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label is a spending category assigned by the classifier.
type Label string

const (
	LabelMakan          Label = "Makan"
	LabelTransportasi   Label = "Transportasi"
	LabelKebutuhanPokok Label = "Kebutuhan Pokok"
	LabelHiburan        Label = "Hiburan"
	LabelLainnya        Label = "Lainnya"
)

// Labels lists every category in classification priority order. The first
// label whose keyword list matches wins; LabelLainnya is the fallback and has
// no keywords of its own.
var Labels = []Label{
	LabelMakan,
	LabelTransportasi,
	LabelKebutuhanPokok,
	LabelHiburan,
	LabelLainnya,
}

// keywords maps each label to its curated term list. Terms are stored folded;
// matching is case-insensitive substring containment.
var keywords = map[Label][]string{
	LabelMakan: {
		"makan", "nasi", "ayam", "bakso", "mie", "sate", "soto", "gorengan",
		"sarapan", "kopi", "teh", "jajan", "snack", "warteg", "gofood",
		"grabfood", "shopeefood", "restoran", "warung", "minum",
	},
	LabelTransportasi: {
		"bensin", "pertalite", "pertamax", "ojek", "gojek", "grab", "angkot",
		"bus", "kereta", "krl", "mrt", "parkir", "tol", "transport", "motor",
		"servis motor", "tiket",
	},
	LabelKebutuhanPokok: {
		"listrik", "token", "pulsa", "kuota", "internet", "air", "galon",
		"sabun", "sampo", "odol", "deterjen", "laundry", "kos", "kost",
		"sewa", "beras", "minyak goreng", "telur", "belanja bulanan",
	},
	LabelHiburan: {
		"nonton", "bioskop", "film", "netflix", "spotify", "game", "top up",
		"konser", "karaoke", "liburan", "jalan-jalan", "mabar", "streaming",
	},
}

var fold = cases.Lower(language.Indonesian)

// Classify maps a free-text description to a category label. Empty or
// unmatched descriptions yield LabelLainnya; Classify never fails.
func Classify(description string) Label {
	text := fold.String(strings.TrimSpace(description))
	if text == "" {
		return LabelLainnya
	}
	for _, label := range Labels {
		for _, term := range keywords[label] {
			if strings.Contains(text, term) {
				return label
			}
		}
	}
	return LabelLainnya
}

// Valid reports whether a label belongs to the closed category set. Used to
// validate self-reported categories before they are stored as audit metadata.
func Valid(label Label) bool {
	for _, known := range Labels {
		if label == known {
			return true
		}
	}
	return false
}
