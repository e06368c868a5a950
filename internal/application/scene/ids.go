package scene

// IDs of the scenes the game registers.
const (
	TitleID   ID = "title"
	OptionsID ID = "options"
	PlayingID ID = "playing"
	PauseID   ID = "pause"
)
