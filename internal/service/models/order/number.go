package order

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// numberPrefix is the human-facing order number prefix (Off Road Paracord).
const numberPrefix = "ORP"

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewNumber generates a human-readable order number of the form
// ORP-<base36 millis>-<4 random base36 chars>, uppercase. The timestamp part
// keeps numbers roughly sortable by creation time; the random suffix makes
// collisions practically impossible without a central counter.
func NewNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = base36Upper[rand.Intn(len(base36Upper))]
	}

	return numberPrefix + "-" + ts + "-" + string(suffix)
}

// NormalizeNumber upper-cases a customer-supplied order number so lookups are
// case-insensitive.
func NormalizeNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}
