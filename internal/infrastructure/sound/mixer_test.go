package sound

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTone_Length(t *testing.T) {
	pcm := Tone(440, 100*time.Millisecond, 44100)
	// 4410 stereo frames, 2 bytes per channel
	assert.Len(t, pcm, 4410*4)
}

func TestTone_StereoAndFaded(t *testing.T) {
	pcm := Tone(440, 50*time.Millisecond, 8000)
	require.NotEmpty(t, pcm)

	sample := func(i, ch int) int16 {
		return int16(binary.LittleEndian.Uint16(pcm[4*i+2*ch:]))
	}

	n := len(pcm) / 4
	assert.Equal(t, int16(0), sample(0, 0), "starts silent")
	assert.Equal(t, int16(0), sample(n-1, 0), "ends silent")

	peak := int16(0)
	for i := 0; i < n; i++ {
		assert.Equal(t, sample(i, 0), sample(i, 1))
		if v := sample(i, 0); v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, int16(5000))
}

func TestTone_Invalid(t *testing.T) {
	assert.Nil(t, Tone(0, time.Second, 44100))
	assert.Nil(t, Tone(440, 0, 44100))
	assert.Len(t, Tone(440, 10*time.Millisecond, 0), DefaultSampleRate/100*4)
}

func TestMixer_Silent(t *testing.T) {
	m := NewMixer(nil, 2, zerolog.Nop())

	assert.Equal(t, 1.0, m.Volume(), "volume is clamped")
	m.SetVolume(-1)
	assert.Equal(t, 0.0, m.Volume())

	m.SetVolume(0.5)
	m.Beep(880, 30*time.Millisecond)
	assert.Equal(t, 0, m.Playing())

	m.StopAll()
	assert.Equal(t, 0, m.Playing())
}
