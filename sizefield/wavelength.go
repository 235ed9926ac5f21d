package sizefield

import "math"

// Gravitational acceleration in m/s^2.
const g = 9.81

const (
	wavelengthIterations = 10
	wavelengthTolerance  = 1e-6
)

// Wavelength solves the linear dispersion relation for the wavelength
// of a wave with the given period (s) in the given water depth (m).
// The shallow-water (d/L < 0.05) and deep-water (d/L > 0.5) limits are
// returned directly; intermediate depths use Newton iteration on
//
//	f(L) = L - (g T^2 / 2 pi) tanh(2 pi d / L)
func Wavelength(period, depth float64) float64 {
	deep := g * period * period / (2 * math.Pi)

	switch {
	case depth/deep < 0.05:
		return period * math.Sqrt(g*depth)
	case depth/deep > 0.5:
		return deep
	}

	wavelength := deep
	for i := 0; i < wavelengthIterations; i++ {
		prev := wavelength
		wavelength -= dispersion(period, depth, wavelength) /
			dispersionDerivative(period, depth, wavelength)
		if math.Abs(wavelength-prev)/wavelength < wavelengthTolerance {
			break
		}
	}
	return wavelength
}

func dispersion(period, depth, wavelength float64) float64 {
	return wavelength - g*period*period/(2*math.Pi)*
		math.Tanh(2*math.Pi*depth/wavelength)
}

func dispersionDerivative(period, depth, wavelength float64) float64 {
	cosh := math.Cosh(2 * math.Pi * depth / wavelength)
	return 1 + g*depth*period*period/(cosh*cosh*wavelength*wavelength)
}
