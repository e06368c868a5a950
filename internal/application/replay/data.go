package replay

// Version is written into every recording.
const Version = "2.0"

// FrameInput records the held actions for a single simulation tick
type FrameInput struct {
	F  int  `json:"f"`            // Tick number
	U  bool `json:"u,omitempty"`  // Up
	D  bool `json:"d,omitempty"`  // Down
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	OK bool `json:"ok,omitempty"` // Confirm
	C  bool `json:"c,omitempty"`  // Cancel
	M  bool `json:"m,omitempty"`  // Menu
}

// ReplayData contains everything needed to replay a session tick by tick
type ReplayData struct {
	Version   string       `json:"version"`
	Scene     string       `json:"scene"`
	TickRate  int          `json:"tickRate"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
