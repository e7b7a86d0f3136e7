package model

// Shared antenna constructors. Experiment programs build their geometry
// through these instead of duplicating wire math per script.

// NewDipole builds a centre-fed dipole of the given total length (metres),
// lying along the y-axis and centred at the origin, with the feed at the
// segment nearest the electrical centre.
func NewDipole(totalLength float64, segments int, radiusM float64) *Model {
	half := totalLength / 2.0
	m := &Model{}
	m.AddElement(NewElement(0, -half, 0, 0, half, 0, segments, radiusM))
	m.AddFeedpoint(0, CenterSegment(segments))
	return m
}

// NewTwoElementBeam builds a driven element at the origin and a passive
// reflector spacingM behind it along the x-axis (forward direction is +x,
// azimuth 0). Both elements lie along the y-axis.
func NewTwoElementBeam(drivenLen, reflectorLen, spacingM float64, segments int, radiusM float64) *Model {
	halfDriven := drivenLen / 2.0
	halfRefl := reflectorLen / 2.0
	m := &Model{}
	m.AddElement(NewElement(0, -halfDriven, 0, 0, halfDriven, 0, segments, radiusM))
	m.AddFeedpoint(0, CenterSegment(segments))
	m.AddElement(NewElement(-spacingM, -halfRefl, 0, -spacingM, halfRefl, 0, segments, radiusM))
	return m
}

// NewTwoElementYagi builds a two-element Yagi for freqMHz: resonant driven
// element, reflector lengthened by detuneFrac (cut for resonance at
// f/(1+detune)), spaced spacingM along the boom.
func NewTwoElementYagi(freqMHz, detuneFrac, spacingM float64, segments int, radiusM float64) *Model {
	driven := ResonantDipoleLength(freqMHz)
	passive := ResonantDipoleLength(freqMHz / (1.0 + detuneFrac))
	return NewTwoElementBeam(driven, passive, spacingM, segments, radiusM)
}

// NewPhasedPair builds two identical driven elements spaced along the x-axis
// symmetric about the origin, fed at their centre segments with v0 and v1.
// Feeding with v1 = -v0 gives the classic 8JK out-of-phase pair.
func NewPhasedPair(elementLen, spacingM float64, segments int, radiusM float64, v0, v1 complex128) *Model {
	half := elementLen / 2.0
	m := &Model{}
	m.AddElement(NewElement(-spacingM/2, -half, 0, -spacingM/2, half, 0, segments, radiusM))
	m.AddElement(NewElement(spacingM/2, -half, 0, spacingM/2, half, 0, segments, radiusM))
	center := CenterSegment(segments)
	m.AddFeedpointV(0, center, v0)
	m.AddFeedpointV(1, center, v1)
	return m
}
