// Package audio plays short tones for game events through the beep speaker.
// Sound is optional: the game runs the same with or without a player.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/sm1k0/termsnake/internal/games/snake"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a sound effect.
type Cue int

const (
	CueEat Cue = iota
	CueGameOver
)

type cueTone struct {
	freq     float64
	duration time.Duration
	volume   float64 // Linear gain, 1.0 is unchanged
}

var cues = map[Cue]cueTone{
	CueEat:      {freq: 880, duration: 60 * time.Millisecond, volume: 0.5},
	CueGameOver: {freq: 110, duration: 400 * time.Millisecond, volume: 0.7},
}

// Tone builds a finite sine streamer for cue.
func Tone(cue Cue, sr beep.SampleRate) (beep.Streamer, error) {
	t, ok := cues[cue]
	if !ok {
		return nil, fmt.Errorf("audio: unknown cue %d", cue)
	}
	sine, err := generators.SineTone(sr, t.freq)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot build tone: %w", err)
	}
	tone := beep.Take(sr.N(t.duration), sine)
	return &effects.Volume{Streamer: tone, Base: 2, Volume: math.Log2(t.volume)}, nil
}

// Player maps game steps to sound cues. It implements engine.Observer.
type Player struct {
	sr     beep.SampleRate
	play   func(beep.Streamer)
	close  func()
	logger *log.Logger
}

// Open initialises the speaker. The returned player must be closed.
func Open(logger *log.Logger) (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("audio: cannot open output device: %w", err)
	}
	p := newPlayer(sampleRate, func(s beep.Streamer) { speaker.Play(s) }, logger)
	p.close = speaker.Close
	return p, nil
}

func newPlayer(sr beep.SampleRate, play func(beep.Streamer), logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{sr: sr, play: play, close: func() {}, logger: logger}
}

// OnStep plays the eat tone when food was eaten and the low tone at game over.
func (p *Player) OnStep(res snake.StepResult) {
	if res.Ate {
		p.Play(CueEat)
	}
	if res.Over {
		p.Play(CueGameOver)
	}
}

// Play queues cue on the output device without blocking.
func (p *Player) Play(cue Cue) {
	tone, err := Tone(cue, p.sr)
	if err != nil {
		p.logger.Warn("sound cue skipped", "cue", cue, "err", err)
		return
	}
	p.play(tone)
}

// Close releases the output device.
func (p *Player) Close() {
	p.close()
}
