package kernel

import (
	"strings"
	"unicode/utf8"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const addressMaxLength = 255

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// regionAbbreviations maps official province/metropolitan names to the short form
// used on order lists.
var regionAbbreviations = map[string]string{
	"서울특별시":    "서울",
	"부산광역시":    "부산",
	"대구광역시":    "대구",
	"인천광역시":    "인천",
	"광주광역시":    "광주",
	"대전광역시":    "대전",
	"울산광역시":    "울산",
	"세종특별자치시":  "세종",
	"경기도":      "경기",
	"강원도":      "강원",
	"강원특별자치도":  "강원",
	"충청북도":     "충북",
	"충청남도":     "충남",
	"전라북도":     "전북",
	"전북특별자치도":  "전북",
	"전라남도":     "전남",
	"경상북도":     "경북",
	"경상남도":     "경남",
	"제주특별자치도":  "제주",
}

// Address is a free-text street address as entered at intake.
type Address struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

func NewAddress(value string) (Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	if n := utf8.RuneCountInString(value); n > addressMaxLength {
		return Address{}, errs.NewValueIsOutOfRangeError("address length", n, 1, addressMaxLength)
	}

	return Address{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) String() string {
	return a.value
}

// Simple returns the region and district only, with the region abbreviated:
// "부산광역시 연제구 거제대로178번길 51-2" becomes "부산 연제구".
func (a Address) Simple() string {
	fields := strings.Fields(a.value)
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return abbreviateRegion(fields[0])
	default:
		return abbreviateRegion(fields[0]) + " " + fields[1]
	}
}

func abbreviateRegion(region string) string {
	if short, ok := regionAbbreviations[region]; ok {
		return short
	}
	return region
}
