// Package identity verifies 11-digit national identification numbers.
package identity

// Length of a national identification number.
const Length = 11

// Validate reports whether id is a structurally valid national
// identification number with correct check digits.
func Validate(id string) bool {
	if len(id) != Length {
		return false
	}

	var d [Length]int
	allSame := true
	for i := 0; i < Length; i++ {
		c := id[i]
		if c < '0' || c > '9' {
			return false
		}
		d[i] = int(c - '0')
		if d[i] != d[0] {
			allSame = false
		}
	}
	if d[0] == 0 || allSame {
		return false
	}

	sum := 0
	for i := 0; i < 10; i++ {
		sum += d[i]
	}
	if sum%10 != d[10] {
		return false
	}

	odd := d[0] + d[2] + d[4] + d[6] + d[8]
	even := d[1] + d[3] + d[5] + d[7]
	return mod10(odd*7-even) == d[9]
}

func mod10(x int) int {
	return ((x % 10) + 10) % 10
}
