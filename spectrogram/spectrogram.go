// Package spectrogram computes short-time Fourier magnitude frames for
// stimulus diagnostics.
//
// The stimulus synthesizer reports which frequencies it placed in every chord;
// plotting those matrices over an STFT of the rendered samples is the
// standard visual check that the audio matches the bookkeeping. This package
// produces the STFT side of that plot: Hann-windowed magnitude frames plus
// the frequency and time axes to draw them against.
package spectrogram

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by spectrogram functions.
var (
	ErrEmptyInput        = errors.New("spectrogram: input signal is empty")
	ErrInputTooShort     = errors.New("spectrogram: input shorter than one FFT frame")
	ErrInvalidFFTSize    = errors.New("spectrogram: fft size must be a power of two >= 2")
	ErrInvalidHop        = errors.New("spectrogram: hop must be positive")
	ErrInvalidSampleRate = errors.New("spectrogram: sample rate must be positive")
)

// Result holds the magnitude frames of one STFT.
//
// Magnitudes[f][k] is |X_f[k]| of frame f at bin k; only the fftSize/2+1
// non-redundant bins of the real input are kept. FreqsHz gives the center
// frequency per bin, TimesSec the center time per frame.
type Result struct {
	Magnitudes [][]float64
	FreqsHz    []float64
	TimesSec   []float64

	FFTSize int
	Hop     int
}

// NumFrames returns the number of frames.
func (r *Result) NumFrames() int {
	return len(r.Magnitudes)
}

// Compute runs a Hann-windowed STFT over samples.
//
// Frames start every hop samples; a trailing remainder shorter than one full
// frame is dropped.
func Compute(samples []float64, fftSize, hop int, sampleRate float64) (*Result, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}

	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, ErrInvalidFFTSize
	}

	if hop <= 0 {
		return nil, ErrInvalidHop
	}

	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	if len(samples) < fftSize {
		return nil, ErrInputTooShort
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrogram: failed to create FFT plan: %w", err)
	}

	window := hannWindow(fftSize)
	bins := fftSize/2 + 1
	numFrames := (len(samples)-fftSize)/hop + 1

	res := &Result{
		Magnitudes: make([][]float64, numFrames),
		FreqsHz:    make([]float64, bins),
		TimesSec:   make([]float64, numFrames),
		FFTSize:    fftSize,
		Hop:        hop,
	}

	for k := range res.FreqsHz {
		res.FreqsHz[k] = float64(k) * sampleRate / float64(fftSize)
	}

	windowed := make([]float64, fftSize)
	in := make([]complex128, fftSize)
	out := make([]complex128, fftSize)
	re := make([]float64, bins)
	im := make([]float64, bins)

	for f := 0; f < numFrames; f++ {
		start := f * hop
		vecmath.MulBlock(windowed, samples[start:start+fftSize], window)

		for i, v := range windowed {
			in[i] = complex(v, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("spectrogram: forward FFT failed: %w", err)
		}

		for k := 0; k < bins; k++ {
			re[k] = real(out[k])
			im[k] = imag(out[k])
		}

		mag := make([]float64, bins)
		vecmath.Magnitude(mag, re, im)

		res.Magnitudes[f] = mag
		res.TimesSec[f] = (float64(start) + float64(fftSize)/2) / sampleRate
	}

	return res, nil
}

// hannWindow returns symmetric Hann coefficients.
func hannWindow(size int) []float64 {
	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out
	}

	for i := range out {
		out[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}

	return out
}
