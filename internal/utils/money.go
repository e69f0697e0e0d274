package utils

import (
  "fmt"
  "strings"
)

// FormatINR renders an amount the way the storefront shows prices:
// rupee sign, Indian digit grouping, no paise for whole amounts.
func FormatINR(amount float64) string {
  negative := amount < 0
  if negative {
    amount = -amount
  }

  whole := int64(amount)
  paise := int64(amount*100+0.5) - whole*100

  digits := fmt.Sprintf("%d", whole)
  var grouped string
  if len(digits) <= 3 {
    grouped = digits
  } else {
    head := digits[:len(digits)-3]
    tail := digits[len(digits)-3:]
    var parts []string
    for len(head) > 2 {
      parts = append([]string{head[len(head)-2:]}, parts...)
      head = head[:len(head)-2]
    }
    parts = append([]string{head}, parts...)
    grouped = strings.Join(parts, ",") + "," + tail
  }

  out := "₹" + grouped
  if paise > 0 {
    out = fmt.Sprintf("%s.%02d", out, paise)
  }
  if negative {
    out = "-" + out
  }
  return out
}
