package poly

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func tokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ',', ';', ' ', '\t', '\n', '\r':
			return true
		}
		return false
	})
}

// ParseCoefficients turns free text such as "1 2.5 -3" or "1, 2.5, -3" into
// coefficients, highest power first.
func ParseCoefficients(text string) ([]float64, error) {
	fields := tokens(text)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no coefficients", ErrInvalidInput)
	}

	coeffs := make([]float64, 0, len(fields))
	for i, tok := range fields {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &ParseError{Index: i, Token: tok, Reason: "not a number"}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ParseError{Index: i, Token: tok, Reason: "not finite"}
		}
		coeffs = append(coeffs, v)
	}
	return coeffs, nil
}

// ParseDenominator is ParseCoefficients with the denominator rule of the
// input form: unless allowZero is set, any zero coefficient is rejected.
func ParseDenominator(text string, allowZero bool) ([]float64, error) {
	coeffs, err := ParseCoefficients(text)
	if err != nil || allowZero {
		return coeffs, err
	}
	fields := tokens(text)
	for i, v := range coeffs {
		if v == 0 {
			return nil, &ParseError{Index: i, Token: fields[i], Reason: "zero denominator coefficient"}
		}
	}
	return coeffs, nil
}

// FormatCoefficients writes coeffs in the form ParseCoefficients reads.
func FormatCoefficients(coeffs []float64) string {
	parts := make([]string, len(coeffs))
	for i, c := range coeffs {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
