package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// randomSuffix returns 6 uppercased hex chars from a fresh uuid. The
// original card scheme used the creation timestamp alone, which collides
// when two items are added within the same millisecond; the suffix keeps
// ids unique without changing their overall shape.
func randomSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

func newProductID() string {
	return fmt.Sprintf("P-%d-%s", time.Now().UnixMilli(), randomSuffix())
}

func newServiceID() string {
	return fmt.Sprintf("J-%d-%s", time.Now().UnixMilli(), randomSuffix())
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), randomSuffix())
}
