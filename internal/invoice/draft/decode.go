package draft

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownOp is returned when a wire payload names no known
// mutation.
var ErrUnknownOp = errors.New("unknown draft op")

type opEnvelope struct {
	Type string `json:"type"`
}

// DecodeOp unmarshals a wire payload of the form
// {"type": "...", ...fields} into its typed Op.
func DecodeOp(raw []byte) (Op, error) {
	var envelope opEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	var op Op
	switch envelope.Type {
	case "selectClient":
		op = &SelectClient{}
	case "setClient":
		op = &SetClient{}
	case "setMeta":
		op = &SetMeta{}
	case "setTaxConfig":
		op = &SetTaxConfig{}
	case "setDiscount":
		op = &SetDiscount{}
	case "setCurrency":
		op = &SetCurrency{}
	case "setRecurring":
		op = &SetRecurring{}
	case "setTerms":
		op = &SetTerms{}
	case "setAdditionalNote":
		op = &SetAdditionalNote{}
	case "addLineItem":
		op = &AddLineItem{}
	case "removeLineItem":
		op = &RemoveLineItem{}
	case "setLineService":
		op = &SetLineService{}
	case "setLineDescription":
		op = &SetLineDescription{}
	case "setLineQuantity":
		op = &SetLineQuantity{}
	case "setLineUnitPrice":
		op = &SetLineUnitPrice{}
	case "setLineDiscount":
		op = &SetLineDiscount{}
	case "setLineNotes":
		op = &SetLineNotes{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, envelope.Type)
	}

	if err := json.Unmarshal(raw, op); err != nil {
		return nil, err
	}
	return deref(op), nil
}

// deref returns the value form so Apply's type switch sees the same
// types callers construct directly.
func deref(op Op) Op {
	switch v := op.(type) {
	case *SelectClient:
		return *v
	case *SetClient:
		return *v
	case *SetMeta:
		return *v
	case *SetTaxConfig:
		return *v
	case *SetDiscount:
		return *v
	case *SetCurrency:
		return *v
	case *SetRecurring:
		return *v
	case *SetTerms:
		return *v
	case *SetAdditionalNote:
		return *v
	case *AddLineItem:
		return *v
	case *RemoveLineItem:
		return *v
	case *SetLineService:
		return *v
	case *SetLineDescription:
		return *v
	case *SetLineQuantity:
		return *v
	case *SetLineUnitPrice:
		return *v
	case *SetLineDiscount:
		return *v
	case *SetLineNotes:
		return *v
	default:
		return op
	}
}
