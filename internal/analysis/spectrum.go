package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrum returns the one-sided magnitude spectrum of data after removing its
// mean and applying a Hann window.
func Spectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	x := make([]float64, len(data))
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	for i, v := range data {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	coeffs := fft.FFTReal(x)
	out := make([]float64, len(coeffs)/2+1)
	for i := range out {
		out[i] = cmplx.Abs(coeffs[i])
	}
	return out
}

// Roughness returns the share of spectral power above cutoff (a fraction of
// the Nyquist frequency). Smooth profiles score near zero; bin quantization
// and aliasing push power into the upper band.
func Roughness(data []float64, cutoff float64) float64 {
	power := Spectrum(data)
	if len(power) == 0 {
		return 0
	}
	split := int(cutoff * float64(len(power)-1))
	if split < 0 {
		split = 0
	}
	total, high := 0.0, 0.0
	for i, m := range power {
		p := m * m
		total += p
		if i > split {
			high += p
		}
	}
	if total == 0 {
		return 0
	}
	return high / total
}
