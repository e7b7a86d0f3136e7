package model

// SpeedOfLight in metres per second.
const SpeedOfLight = 299792458.0

const metersPerFoot = 0.3048

// FeetToMeters converts a length in feet to metres.
func FeetToMeters(ft float64) float64 {
	return ft * metersPerFoot
}

// MetersToFeet converts a length in metres to feet.
func MetersToFeet(m float64) float64 {
	return m / metersPerFoot
}

// WavelengthM returns the free-space wavelength in metres at freqMHz.
func WavelengthM(freqMHz float64) float64 {
	return SpeedOfLight / (freqMHz * 1e6)
}

// ResonantDipoleLength returns the resonant half-wave dipole length in
// metres for freqMHz using the ARRL 468/f(MHz) feet approximation. The
// empirical formula is kept in preference to the ideal lambda/2 because it
// accounts for end effects of real wire.
func ResonantDipoleLength(freqMHz float64) float64 {
	return FeetToMeters(468.0 / freqMHz)
}
