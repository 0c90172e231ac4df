package audio

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

const (
	FFTSize   = 256
	MinDB     = -100.0
	MaxDB     = -30.0
	Smoothing = 0.8
	// VolumeScale is the mean byte level that reads as full volume.
	VolumeScale = 100.0
)

// Analyser turns time-domain frames into byte frequency data with temporal
// smoothing carried between calls. It is not safe for concurrent use.
type Analyser struct {
	window   []float64
	smoothed []float64
	frame    []float64
}

func NewAnalyser() *Analyser {
	w := make([]float64, FFTSize)
	for i := range w {
		x := 2 * math.Pi * float64(i) / FFTSize
		w[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}
	return &Analyser{
		window:   w,
		smoothed: make([]float64, FFTSize/2),
		frame:    make([]float64, FFTSize),
	}
}

// ByteFrequencyData analyses the last FFTSize samples (zero-padded in front
// when fewer are given) and returns FFTSize/2 bytes.
func (a *Analyser) ByteFrequencyData(samples []float32) []uint8 {
	for i := range a.frame {
		a.frame[i] = 0
	}
	if len(samples) > FFTSize {
		samples = samples[len(samples)-FFTSize:]
	}
	off := FFTSize - len(samples)
	for i, s := range samples {
		a.frame[off+i] = float64(s) * a.window[off+i]
	}

	spectrum := fft.FFTReal(a.frame)
	out := make([]uint8, FFTSize/2)
	for k := range out {
		mag := cmplx.Abs(spectrum[k]) / FFTSize
		a.smoothed[k] = Smoothing*a.smoothed[k] + (1-Smoothing)*mag
		out[k] = toByte(a.smoothed[k])
	}
	return out
}

func (a *Analyser) Reset() {
	for i := range a.smoothed {
		a.smoothed[i] = 0
	}
}

func toByte(mag float64) uint8 {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := math.Floor(255 / (MaxDB - MinDB) * (db - MinDB))
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// Volume is min(mean(bytes)/VolumeScale, 1).
func Volume(bytes []uint8) float64 {
	if len(bytes) == 0 {
		return 0
	}
	sum := 0
	for _, b := range bytes {
		sum += int(b)
	}
	return math.Min(float64(sum)/float64(len(bytes))/VolumeScale, 1)
}
