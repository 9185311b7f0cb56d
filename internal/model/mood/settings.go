package mood

// Settings is the per-device configuration. The room and user identifiers
// select which shared room the device syncs against; the rest only shapes
// presentation.
type Settings struct {
	RoomID        string `json:"roomId"`
	UserID        string `json:"userId"`
	PartnerName   string `json:"partnerName"`
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme"`
	AutoSave      bool   `json:"autoSave"`
}

// DefaultSettings mirrors the dashboard's first-run defaults.
func DefaultSettings() Settings {
	return Settings{
		RoomID:        "default-room",
		UserID:        "user1",
		PartnerName:   "Ta",
		Notifications: true,
		Theme:         "light",
		AutoSave:      true,
	}
}
