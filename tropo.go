package slrcore

import "math"

// WaterVapourModel selects the water-vapour partial-pressure formula
// feeding the Marini-Murray delay.
type WaterVapourModel int

const (
	OriginalMM WaterVapourModel = iota
	GiacomoDavis
)

// MariniMurrayDelay returns the one-way tropospheric path delay in
// metres for a laser ranging observation. Inputs: surface
// pressure P (mbar), temperature T (K), relative humidity rh (%),
// elevation el (rad), wavelength lambda (micrometres), station
// geodetic latitude phi (rad) and altitude h (metres).
func MariniMurrayDelay(p, t, rh, el, lambda, phi, h float64, model WaterVapourModel) float64 {
	e0 := waterVapourPressure(p, t, rh, model)

	a := 0.2357e-2*p + 0.141e-3*e0
	k := 1.163 - 0.968e-2*math.Cos(2*phi) - 0.104e-2*t + 0.1435e-4*p
	b := 1.084e-8*p*t*k + 4.734e-8*(2*p*p)/(t*(3-1/k))
	invLambda2 := 1 / (lambda * lambda)
	fLambda := 0.9650 + 0.0164*invLambda2 + 0.228e-3*invLambda2*invLambda2
	fPhiH := 1 - 0.26e-2*math.Cos(2*phi) - 0.31e-6*h

	ab := a + b
	sinEl := math.Sin(el)
	return (fLambda / fPhiH) * ab / (sinEl + (b/ab)/(sinEl+0.01))
}

func waterVapourPressure(p, t, rh float64, model WaterVapourModel) float64 {
	switch model {
	case GiacomoDavis:
		es := 0.01 * math.Exp(1.2378847e-5*t*t-1.9121316e-2*t+33.93711047-6.3431645e3/t)
		fw := 1.00062 + 3.14e-6*p + 5.6e-7*(t-273.15)*(t-273.15)
		return rh * 0.01 * fw * es
	default: // OriginalMM
		tc := t - 273.15
		return rh * 6.11e-2 * math.Pow(10, (7.5*tc)/(237.3+tc))
	}
}
