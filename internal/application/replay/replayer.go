package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.TickRate <= 0 {
		return nil, fmt.Errorf("invalid replay: tick rate %d", data.TickRate)
	}

	return &data, nil
}

// Next returns the input for the current tick and advances
func (r *Replayer) Next() (FrameInput, bool) {
	if r.frame >= len(r.data.Frames) {
		return FrameInput{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return fi, true
}

// Done reports whether every recorded tick has been played
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current tick number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of ticks
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Scene returns the scene the recording started in
func (r *Replayer) Scene() string {
	return r.data.Scene
}

// TickRate returns the ticks per second the recording was made at
func (r *Replayer) TickRate() int {
	return r.data.TickRate
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing (no input held)
func CreateTestReplayData(frames int, scene string) ReplayData {
	data := ReplayData{
		Version:   Version,
		Scene:     scene,
		TickRate:  60,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{F: i}
	}

	return data
}
