package models

// DefaultOptionNames is the list seeded when a management screen first finds
// its collection empty.
func DefaultOptionNames(collection Collection) []string {
	switch collection {
	case CollectionTriggers:
		return []string{"Stress", "Dehydration", "Bright Light", "Lack of Sleep", "Weather Change"}
	case CollectionMedications:
		return []string{"Ibuprofen", "Sumatriptan", "Excedrin", "Water", "Caffeine"}
	default:
		return nil
	}
}

// SuggestedOptionNames is the fixed list offered by the onboarding wizard.
func SuggestedOptionNames(collection Collection) []string {
	switch collection {
	case CollectionTriggers:
		return []string{
			"Stress",
			"Dehydration",
			"Bright Light",
			"Lack of Sleep",
			"Weather Change",
			"Alcohol",
			"Caffeine",
			"Screen Time",
			"Loud Noise",
			"Strong Smells",
		}
	case CollectionMedications:
		return []string{
			"Ibuprofen",
			"Sumatriptan",
			"Excedrin",
			"Water",
			"Sleep",
			"Dark Room",
			"Ice Pack",
			"Caffeine",
			"Massage",
			"Magnesium",
		}
	default:
		return nil
	}
}
