package stock

import (
	"encoding/json"
	"math"

	"kondate/internal"
)

// Upstream writers of the delivery-set artifact differ on the quantity
// field name. The aliases are resolved here once, at the boundary, in
// priority order; nothing past this point looks at more than DeliveryQty.
type wireItem struct {
	No           *int     `json:"no"`
	Code         *string  `json:"code"`
	Name         string   `json:"name"`
	UnitPrice    float64  `json:"unitPrice"`
	DeliveryQty  *float64 `json:"deliveryQty"`
	Quantity     *float64 `json:"quantity"`
	Qty          *float64 `json:"qty"`
	DeliveryUnit string   `json:"deliveryUnit"`
	Spec         *string  `json:"spec"`
	OrderQty     *float64 `json:"orderQty"`
	OrderUnit    *string  `json:"orderUnit"`
}

type wireSlip struct {
	SlipNo       string     `json:"slipNo"`
	Vendor       *string    `json:"vendor"`
	SlipDate     *string    `json:"slipDate"`
	DeliveryDate *string    `json:"deliveryDate"`
	Total        *float64   `json:"total"`
	Comment      *string    `json:"comment"`
	Items        []wireItem `json:"items"`
}

type wireDocument struct {
	Report internal.ReportMeta `json:"report"`
	Slips  []wireSlip          `json:"slips"`
}

// DecodeDocument reads a persisted delivery set back into the typed shape.
// Items with no finite quantity under any alias are dropped; they cannot
// participate in reconciliation.
func DecodeDocument(data []byte) (internal.DeliveryDocument, error) {
	var wire wireDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return internal.DeliveryDocument{}, err
	}

	doc := internal.DeliveryDocument{Report: wire.Report, Slips: make([]internal.Slip, 0, len(wire.Slips))}
	for _, ws := range wire.Slips {
		slip := internal.Slip{
			SlipNo:       ws.SlipNo,
			Vendor:       ws.Vendor,
			SlipDate:     ws.SlipDate,
			DeliveryDate: ws.DeliveryDate,
			Total:        ws.Total,
			Comment:      ws.Comment,
			Items:        make([]internal.SlipItem, 0, len(ws.Items)),
		}
		for _, wi := range ws.Items {
			qty, ok := pickQuantity(wi)
			if !ok {
				continue
			}
			slip.Items = append(slip.Items, internal.SlipItem{
				No:           wi.No,
				Code:         wi.Code,
				Name:         wi.Name,
				UnitPrice:    wi.UnitPrice,
				DeliveryQty:  qty,
				DeliveryUnit: wi.DeliveryUnit,
				Spec:         wi.Spec,
				OrderQty:     wi.OrderQty,
				OrderUnit:    wi.OrderUnit,
			})
		}
		doc.Slips = append(doc.Slips, slip)
	}
	return doc, nil
}

func pickQuantity(item wireItem) (float64, bool) {
	for _, candidate := range []*float64{item.DeliveryQty, item.Quantity, item.Qty} {
		if candidate == nil {
			continue
		}
		if math.IsNaN(*candidate) || math.IsInf(*candidate, 0) {
			continue
		}
		return *candidate, true
	}
	return 0, false
}
