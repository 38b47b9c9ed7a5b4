package util

import (
	"strings"

	"github.com/paemuri/brdoc"
)

// NormalizeCPF strips the usual punctuation (000.000.000-00).
func NormalizeCPF(cpf string) string {
	return strings.NewReplacer(".", "", "-", "", " ", "").Replace(cpf)
}

// ValidCPF accepts punctuated or bare numbers. Repeated-digit numbers are rejected.
func ValidCPF(cpf string) bool {
	cpf = NormalizeCPF(cpf)

	if cpf == "" || strings.Count(cpf, cpf[:1]) == len(cpf) {
		return false
	}

	return brdoc.IsCPF(cpf)
}

// CompleteCPF appends the two check digits to a 9 digit base. Factories use it
// to build numbers that pass ValidCPF.
func CompleteCPF(base string) string {
	digits := make([]int, 0, 11)

	for _, r := range base {
		digits = append(digits, int(r-'0'))
	}

	digits = append(digits, cpfCheckDigit(digits))
	digits = append(digits, cpfCheckDigit(digits))

	var sb strings.Builder

	for _, d := range digits {
		sb.WriteByte(byte('0' + d))
	}

	return sb.String()
}

func cpfCheckDigit(digits []int) int {
	sum := 0
	weight := len(digits) + 1

	for _, d := range digits {
		sum += d * weight
		weight--
	}

	rest := (sum * 10) % 11

	if rest == 10 {
		return 0
	}

	return rest
}
