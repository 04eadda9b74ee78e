package inference

// UnknownCrop is returned for class ids outside the label table.
const UnknownCrop = "Unknown Crop"

var cropLabels = map[int]string{
	1: "Rice", 2: "Maize", 3: "Jute", 4: "Cotton", 5: "Coconut", 6: "Papaya", 7: "Orange",
	8: "Apple", 9: "Muskmelon", 10: "Watermelon", 11: "Grapes", 12: "Mango", 13: "Banana",
	14: "Pomegranate", 15: "Lentil", 16: "Blackgram", 17: "Mungbean", 18: "Mothbeans",
	19: "Pigeonpeas", 20: "Kidneybeans", 21: "Chickpea", 22: "Coffee",
}

// CropName resolves a classifier output. It never fails.
func CropName(id int) string {
	if name, ok := cropLabels[id]; ok {
		return name
	}
	return UnknownCrop
}

// CropNames lists every known crop, ordered by class id.
func CropNames() []string {
	names := make([]string, 0, len(cropLabels))
	for id := 1; id <= len(cropLabels); id++ {
		names = append(names, cropLabels[id])
	}
	return names
}
