package formula

import "strings"

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

func ParseGender(s string) Gender {
	if strings.EqualFold(strings.TrimSpace(s), string(Male)) {
		return Male
	}
	return Female
}

type wilksCoefficients struct {
	a, b, c, d, e, f float64
}

var (
	maleWilks = wilksCoefficients{
		a: -216.0475144,
		b: 16.2606339,
		c: -0.002388645,
		d: -0.00113732,
		e: 7.01863e-06,
		f: -1.291e-08,
	}
	femaleWilks = wilksCoefficients{
		a: 594.31747775582,
		b: -27.23842536447,
		c: 0.82112226871,
		d: -0.00930733913,
		e: 4.731582e-05,
		f: -9.054e-08,
	}
)

// denominator evaluates a + b*x + c*x^2 + ... + f*x^5 in Horner form.
func (wc wilksCoefficients) denominator(bw float64) float64 {
	return wc.a + bw*(wc.b+bw*(wc.c+bw*(wc.d+bw*(wc.e+bw*wc.f))))
}

// CalculateWilks returns the Wilks score for a lifting total at the given bodyweight.
// Returns 0 when bodyweight or total is not positive. Any gender other than male
// uses the female coefficients.
func CalculateWilks(bodyweight, total float64, gender Gender) float64 {
	if bodyweight <= 0 || total <= 0 {
		return 0
	}

	coefficients := femaleWilks
	if gender == Male {
		coefficients = maleWilks
	}

	return total * 500 / coefficients.denominator(bodyweight)
}
