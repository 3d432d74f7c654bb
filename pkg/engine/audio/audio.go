// Package audio plays short synthesized cues for drag and drop.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Clip names a cue
type Clip int

// Clips
const (
	ClipPickup Clip = iota
	ClipSuccess
	ClipFailure
)

func (c Clip) String() string {
	switch c {
	case ClipPickup:
		return "pickup"
	case ClipSuccess:
		return "success"
	case ClipFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Out plays one-shot cues
type Out interface {
	PlayOneShot(clip Clip, volume float64)
}

// Discard is an Out that plays nothing
type Discard struct{}

// PlayOneShot does nothing
func (Discard) PlayOneShot(Clip, float64) {}

// SoundManager mixes cues onto the system speaker
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a sound manager; call Initialize before use
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. Safe to call twice.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlayOneShot queues clip at volume (1 is unity, 0 is silent). Does
// nothing until the speaker is initialized.
func (sm *SoundManager) PlayOneShot(clip Clip, volume float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := withVolume(Streamer(clip), volume)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Streamer returns a finite streamer for clip at unity volume
func Streamer(clip Clip) beep.Streamer {
	switch clip {
	case ClipPickup:
		return beep.Take(sampleRate.N(time.Millisecond*60), newTone(660, 0, 30))
	case ClipSuccess:
		return beep.Seq(
			beep.Take(sampleRate.N(time.Millisecond*70), newTone(523, 0, 20)),
			beep.Take(sampleRate.N(time.Millisecond*110), newTone(784, 0, 14)),
		)
	case ClipFailure:
		return beep.Take(sampleRate.N(time.Millisecond*180), newTone(140, 3, 10))
	default:
		return beep.Silence(0)
	}
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is a sine with optional harmonics and an exponential decay
type tone struct {
	freq      float64
	harmonics int
	decay     float64
	pos       int
}

func newTone(freq float64, harmonics int, decay float64) *tone {
	return &tone{freq: freq, harmonics: harmonics, decay: decay}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)

		sample := math.Sin(2 * math.Pi * g.freq * t)
		for h := 2; h <= g.harmonics+1; h++ {
			sample += math.Sin(2*math.Pi*g.freq*float64(h)*t) / float64(h)
		}

		// 5ms attack
		attack := math.Min(t/0.005, 1)
		sample *= 0.2 * attack * math.Exp(-t*g.decay)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error {
	return nil
}
