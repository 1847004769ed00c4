//go:build !linux

package beep

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

var (
	malgoCtx     *malgo.AllocatedContext
	device       *malgo.Device
	alertSamples []byte
	startSamples []byte
	endSamples   []byte
	soundOnce    sync.Once

	// Playback state, accessed atomically from the device callback.
	playSamples atomic.Pointer[[]byte]
	playPos     atomic.Uint32
	playMu      sync.Mutex
)

func initDevice() error {
	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.Playback.Format = malgo.FormatS16
	config.Playback.Channels = 1
	config.SampleRate = sampleRate

	callbacks := malgo.DeviceCallbacks{
		Data: dataCallback,
	}

	var err error
	device, err = malgo.InitDevice(malgoCtx.Context, config, callbacks)
	return err
}

func initSound() {
	var err error
	malgoCtx, err = malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		// No audio backend: alerts degrade to visual only.
		return
	}

	alertSamples = generateToneBytes(sampleRate, alertFreq, alertDur, alertVolume, alertDecay)
	startSamples = generateToneBytes(sampleRate, startFreq, startDur, startVolume, startDecay)
	endSamples = generateToneBytes(sampleRate, endFreq, endDur, endVolume, endDecay)

	if err := initDevice(); err != nil {
		malgoCtx.Uninit()
		malgoCtx = nil
		return
	}
}

func dataCallback(pOutput, _ []byte, frameCount uint32) {
	samples := playSamples.Load()
	if samples == nil || len(*samples) == 0 {
		for i := range pOutput {
			pOutput[i] = 0
		}
		return
	}

	pos := playPos.Load()
	total := uint32(len(*samples))
	bytesToWrite := frameCount * 2
	remaining := total - pos

	if remaining == 0 {
		playSamples.Store(nil)
		for i := range pOutput {
			pOutput[i] = 0
		}
		return
	}

	if bytesToWrite > remaining {
		bytesToWrite = remaining
	}

	copy(pOutput[:bytesToWrite], (*samples)[pos:pos+bytesToWrite])
	playPos.Store(pos + bytesToWrite)

	for i := bytesToWrite; i < frameCount*2; i++ {
		pOutput[i] = 0
	}
}

func generateToneBytes(sampleRate int, freq float64, duration float64, volume float64, decay float64) []byte {
	n := int(float64(sampleRate) * duration)
	buf := make([]byte, n*2)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := math.Exp(-t * decay)
		sample := int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
		buf[i*2] = byte(sample)
		buf[i*2+1] = byte(sample >> 8)
	}
	return buf
}

func playBytes(samples []byte) {
	if malgoCtx == nil || len(samples) == 0 {
		return
	}

	playMu.Lock()
	defer playMu.Unlock()

	if device == nil {
		return
	}

	device.Stop()

	playPos.Store(0)
	playSamples.Store(&samples)

	if err := device.Start(); err != nil {
		// Recreate the device (handles macOS sleep/wake).
		device.Uninit()
		if err := initDevice(); err != nil {
			playSamples.Store(nil)
			return
		}
		if err := device.Start(); err != nil {
			playSamples.Store(nil)
			return
		}
	}
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
	playBytes(alertSamples)
}

func PlayStart() {
	if disabled {
		return
	}
	soundOnce.Do(initSound)
	playBytes(startSamples)
}

func PlayEnd() {
	if disabled {
		return
	}
	soundOnce.Do(initSound)
	playBytes(endSamples)
}
