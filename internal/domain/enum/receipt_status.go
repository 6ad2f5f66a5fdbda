package enum

import (
	"encoding/json"
	"fmt"
)

// ReceiptStatus is the lifecycle state of a receipt. CheckedOut is terminal.
type ReceiptStatus int

const (
	ReceiptStatusOpen       ReceiptStatus = 0
	ReceiptStatusCheckedOut ReceiptStatus = 1
)

// ReceiptStatusOf maps the stored checked-out flag
func ReceiptStatusOf(checkedOut bool) ReceiptStatus {
	if checkedOut {
		return ReceiptStatusCheckedOut
	}
	return ReceiptStatusOpen
}

func (s ReceiptStatus) String() string {
	switch s {
	case ReceiptStatusOpen:
		return "Open"
	case ReceiptStatusCheckedOut:
		return "CheckedOut"
	default:
		return fmt.Sprintf("ReceiptStatus(%d)", int(s))
	}
}

func (s ReceiptStatus) IsCheckedOut() bool {
	return s == ReceiptStatusCheckedOut
}

func (s ReceiptStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReceiptStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ReceiptStatus(i)
		return nil
	}
	switch str {
	case "Open":
		*s = ReceiptStatusOpen
	case "CheckedOut":
		*s = ReceiptStatusCheckedOut
	default:
		return fmt.Errorf("unknown receipt status %q", str)
	}
	return nil
}
