package fort

import (
	"fmt"
	"strings"
)

// PaymentType is the currency used to settle a fort cost
type PaymentType int

const (
	PaymentTypeNone                PaymentType = 0
	PaymentTypeDiamantium          PaymentType = 1
	PaymentTypeWyrmite             PaymentType = 2
	PaymentTypeCoin                PaymentType = 4
	PaymentTypeTicket              PaymentType = 6
	PaymentTypeHalidomHustleHammer PaymentType = 9
	PaymentTypeDewPoint            PaymentType = 11
)

var paymentTypeNames = map[PaymentType]string{
	PaymentTypeNone:                "NONE",
	PaymentTypeDiamantium:          "DIAMANTIUM",
	PaymentTypeWyrmite:             "WYRMITE",
	PaymentTypeCoin:                "COIN",
	PaymentTypeTicket:              "TICKET",
	PaymentTypeHalidomHustleHammer: "HALIDOM_HUSTLE_HAMMER",
	PaymentTypeDewPoint:            "DEW_POINT",
}

func (p PaymentType) String() string {
	if name, ok := paymentTypeNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PAYMENT_TYPE_%d", int(p))
}

// IsPremium reports whether p is one of the purchasable premium currencies
func (p PaymentType) IsPremium() bool {
	return p == PaymentTypeWyrmite || p == PaymentTypeDiamantium
}

// ParsePaymentType parses a payment type name such as "wyrmite" or "HALIDOM_HUSTLE_HAMMER"
func ParsePaymentType(s string) (PaymentType, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for pt, name := range paymentTypeNames {
		if name == normalized && pt != PaymentTypeNone {
			return pt, nil
		}
	}
	return PaymentTypeNone, fmt.Errorf("invalid payment type: %s", s)
}
