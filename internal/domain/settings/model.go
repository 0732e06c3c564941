package settings

// AppSettings es un objeto único (no colección) persistido bajo su propia
// clave. Los recordatorios en sí quedan fuera del núcleo; aquí solo vive
// la preferencia del usuario.
type AppSettings struct {
	NotificationsEnabled  bool   `json:"notificationsEnabled"`
	SoundEnabled          bool   `json:"soundEnabled"`
	VibrationEnabled      bool   `json:"vibrationEnabled"`
	ReminderMinutesBefore int    `json:"reminderMinutesBefore"`
	Theme                 string `json:"theme"`    // light|dark|auto
	Language              string `json:"language"` // es|en
}

// Defaults replica la configuración inicial de la app.
func Defaults() AppSettings {
	return AppSettings{
		NotificationsEnabled:  true,
		SoundEnabled:          true,
		VibrationEnabled:      true,
		ReminderMinutesBefore: 5,
		Theme:                 "auto",
		Language:              "es",
	}
}
