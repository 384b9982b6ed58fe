package slrcore

// Status is a tagged outcome returned by every core operation in place
// of panics or sentinel scalars.
// The zero value is NotError.
type Status int

const (
	NotError Status = iota

	// advisory: non-fatal, result is usable.
	InterpolationNotInTheMiddle
	NotInTheMiddle

	// numeric-kernel (Lagrange interpolation) errors.
	XOutOfBounds
	DataSizeMismatch

	// interpolator errors.
	XInterpolatedOutOfBounds
	InterpolationDataSizeMismatch
	UnknownInterpolator
	NoPosRecords

	// pass calculator errors.
	CpfNotValid
	IntervalOutsideOfCpf
	OtherError

	// residual pipeline errors.
	CpfDataEmpty
	CrdDataEmpty
	CrdCfgNotValid
	ResidsCalcFailed

	// bin statistics errors.
	RejectedRFRMS
	NotConvergedRFRMS
	PeakCalcFailedRFRMS
	RejectedOneRMS
	NotConvergedOneRMS
	PeakCalcFailedOneRMS

	// aggregator errors.
	StatsCalcFailed
	SomeBinsCalcFailed
)

var statusText = map[Status]string{
	NotError:                      "no error",
	InterpolationNotInTheMiddle:   "interpolation window not centred",
	NotInTheMiddle:                "interpolation window not centred",
	XOutOfBounds:                  "abscissa out of bounds",
	DataSizeMismatch:              "interpolation input sizes disagree",
	XInterpolatedOutOfBounds:      "interpolated abscissa out of bounds",
	InterpolationDataSizeMismatch: "interpolation data size mismatch",
	UnknownInterpolator:           "unknown interpolator method",
	NoPosRecords:                  "no position records",
	CpfNotValid:                   "cpf interpolator is empty",
	IntervalOutsideOfCpf:          "requested interval is outside the cpf",
	OtherError:                    "interpolator returned an unexpected error",
	CpfDataEmpty:                  "ephemeris has no samples",
	CrdDataEmpty:                  "observation source has no full-rate records",
	CrdCfgNotValid:                "required configuration is missing",
	ResidsCalcFailed:              "residual computation failed",
	RejectedRFRMS:                 "all samples rejected in RF*RMS band",
	NotConvergedRFRMS:             "RF*RMS robust fit did not converge",
	PeakCalcFailedRFRMS:           "gaussian peak refinement failed (RF*RMS)",
	RejectedOneRMS:                "all samples rejected in 1*RMS band",
	NotConvergedOneRMS:            "1*RMS robust fit did not converge",
	PeakCalcFailedOneRMS:          "gaussian peak refinement failed (1*RMS)",
	StatsCalcFailed:               "no bin converged",
	SomeBinsCalcFailed:            "some bins failed to converge",
}

func (s Status) Error() string {
	if t, ok := statusText[s]; ok {
		return t
	}
	return "unknown status"
}

func (s Status) String() string { return s.Error() }

// Fatal reports whether s represents a hard failure rather than
// success or an advisory warning.
func (s Status) Fatal() bool {
	return s != NotError && s != InterpolationNotInTheMiddle && s != NotInTheMiddle
}

// OK reports whether s is NotError or a non-fatal advisory, i.e. the
// accompanying result is valid and must be consumed.
func (s Status) OK() bool {
	return !s.Fatal()
}
