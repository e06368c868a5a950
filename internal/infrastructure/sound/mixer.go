// Package sound plays short synthesized effects through ebiten's audio
// context and silences them when the loop halts.
package sound

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"
)

// DefaultSampleRate is used when the configured rate is not positive.
const DefaultSampleRate = 44100

// fade length at both ends of a tone, to avoid clicks
const fadeSamples = 64

// Mixer is the audio sink. A Mixer without an audio context is silent, which
// keeps headless runs and tests away from the audio device.
type Mixer struct {
	ctx        *audio.Context
	sampleRate int
	log        zerolog.Logger

	mu      sync.Mutex
	volume  float64
	players []*audio.Player
	tones   map[toneKey][]byte
}

type toneKey struct {
	freq float64
	dur  time.Duration
}

// NewMixer creates a mixer on ctx. ctx may be nil.
func NewMixer(ctx *audio.Context, volume float64, log zerolog.Logger) *Mixer {
	rate := DefaultSampleRate
	if ctx != nil {
		rate = ctx.SampleRate()
	}
	return &Mixer{
		ctx:        ctx,
		sampleRate: rate,
		log:        log,
		volume:     clamp01(volume),
		tones:      make(map[toneKey][]byte),
	}
}

// Volume returns the current master volume in [0, 1].
func (m *Mixer) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// SetVolume changes the master volume for new and playing sounds.
func (m *Mixer) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp01(v)
	for _, p := range m.players {
		p.SetVolume(m.volume)
	}
}

// Beep plays a sine tone of the given frequency and length.
func (m *Mixer) Beep(freq float64, d time.Duration) {
	if m.ctx == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.volume == 0 {
		return
	}

	key := toneKey{freq, d}
	pcm, ok := m.tones[key]
	if !ok {
		pcm = Tone(freq, d, m.sampleRate)
		m.tones[key] = pcm
	}

	m.prune()
	p := m.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(m.volume)
	p.Play()
	m.players = append(m.players, p)
}

// StopAll pauses every tracked player and rewinds it.
func (m *Mixer) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		p.Pause()
		if err := p.SetPosition(0); err != nil {
			m.log.Warn().Err(err).Msg("rewind player")
		}
		if err := p.Close(); err != nil {
			m.log.Warn().Err(err).Msg("close player")
		}
	}
	m.players = nil
}

// Playing returns the number of players still producing sound.
func (m *Mixer) Playing() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune()
	return len(m.players)
}

// prune drops finished players. Caller holds mu.
func (m *Mixer) prune() {
	kept := m.players[:0]
	for _, p := range m.players {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		if err := p.Close(); err != nil {
			m.log.Debug().Err(err).Msg("close finished player")
		}
	}
	for i := len(kept); i < len(m.players); i++ {
		m.players[i] = nil
	}
	m.players = kept
}

// Tone synthesizes a sine wave as 16-bit little-endian stereo PCM, the
// format audio.Context players read.
func Tone(freq float64, d time.Duration, sampleRate int) []byte {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	n := int(d.Seconds() * float64(sampleRate))
	if n <= 0 || freq <= 0 {
		return nil
	}

	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		amp := 0.3
		if i < fadeSamples {
			amp *= float64(i) / fadeSamples
		}
		if rest := n - 1 - i; rest < fadeSamples {
			amp *= float64(rest) / fadeSamples
		}
		v := int16(amp * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
		binary.LittleEndian.PutUint16(buf[4*i:], uint16(v))
		binary.LittleEndian.PutUint16(buf[4*i+2:], uint16(v))
	}
	return buf
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
