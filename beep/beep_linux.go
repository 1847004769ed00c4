//go:build linux

package beep

import (
	"math"
	"sync"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
)

var (
	alertSamples []int16
	startSamples []int16
	endSamples   []int16
	soundOnce    sync.Once
)

func initSound() {
	alertSamples = generateTone(sampleRate, alertFreq, alertDur, alertVolume, alertDecay)
	startSamples = generateTone(sampleRate, startFreq, startDur, startVolume, startDecay)
	endSamples = generateTone(sampleRate, endFreq, endDur, endVolume, endDecay)
}

func generateTone(sampleRate int, freq float64, duration float64, volume float64, decay float64) []int16 {
	n := int(float64(sampleRate) * duration)
	samples := make([]int16, n*2)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := math.Exp(-t * decay)
		s := int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
		samples[i*2] = s
		samples[i*2+1] = s
	}
	return samples
}

func playSamples(samples []int16) {
	if len(samples) == 0 {
		return
	}
	c, err := pulse.NewClient()
	if err != nil {
		// No audio server: alerts degrade to visual only.
		return
	}
	defer c.Close()

	pos := 0
	reader := pulse.Int16Reader(func(buf []int16) (int, error) {
		if pos >= len(samples) {
			return 0, pulse.EndOfData
		}
		n := copy(buf, samples[pos:])
		pos += n
		return n, nil
	})
	stream, err := c.NewPlayback(reader,
		pulse.PlaybackStereo,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(0.1),
		pulse.PlaybackRawOption(func(p *proto.CreatePlaybackStream) {
			p.ChannelVolumes = proto.ChannelVolumes{uint32(proto.VolumeNorm), uint32(proto.VolumeNorm)}
		}),
	)
	if err != nil {
		return
	}
	stream.Start()
	stream.Drain()
	stream.Stop()
	stream.Close()
}

func Init() {
	soundOnce.Do(initSound)
}

// PlayAlert sounds the no-blink reminder tone. Fire-and-forget.
func PlayAlert() {
	if disabled {
		return
	}
	soundOnce.Do(initSound)
	go playSamples(alertSamples)
}

func PlayStart() {
	if disabled {
		return
	}
	soundOnce.Do(initSound)
	go playSamples(startSamples)
}

func PlayEnd() {
	if disabled {
		return
	}
	soundOnce.Do(initSound)
	go playSamples(endSamples)
}
