package mood

// Definition describes one selectable mood and its display strings.
type Definition struct {
	ID    string `json:"id"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

// Catalog provides the fixed mood set offered by the dashboard.
func Catalog() []Definition {
	return []Definition{
		{ID: "happy", Emoji: "😊", Label: "开心"},
		{ID: "love", Emoji: "🥰", Label: "爱意"},
		{ID: "excited", Emoji: "🤗", Label: "兴奋"},
		{ID: "calm", Emoji: "😌", Label: "平静"},
		{ID: "sad", Emoji: "😢", Label: "难过"},
		{ID: "miss", Emoji: "🥺", Label: "想念"},
		{ID: "tired", Emoji: "😪", Label: "疲惫"},
		{ID: "anxious", Emoji: "😟", Label: "焦虑"},
	}
}

// Lookup finds a catalog mood by identifier.
func Lookup(id string) (Definition, bool) {
	for _, def := range Catalog() {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}
