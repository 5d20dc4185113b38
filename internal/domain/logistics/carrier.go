package logistics

import (
	"strconv"

	"github.com/erp/console/internal/domain/reconcile"
)

// UnknownCarrierName is the placeholder name of a carrier without one
const UnknownCarrierName = "Unknown Carrier"

// Carrier is a transport company
type Carrier struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Note  string `json:"note"`
}

// CSVHeader returns the export column names
func (Carrier) CSVHeader() []string {
	return []string{"id", "name", "phone", "note"}
}

// CSVRow returns the export columns of the carrier
func (c Carrier) CSVRow() []string {
	return []string{strconv.FormatInt(c.ID, 10), c.Name, c.Phone, c.Note}
}

// CarrierKind reconciles carrier collections
var CarrierKind = reconcile.Kind[Carrier]{
	Name:        "carrier",
	Plural:      "carriers",
	Placeholder: UnknownCarrierName,
	Build: func(id int64, f reconcile.Fields) Carrier {
		return Carrier{
			ID:    id,
			Name:  f.Text("name", UnknownCarrierName),
			Phone: f.Text("phone", ""),
			Note:  f.Text("note", ""),
		}
	},
	Label:    func(c Carrier) string { return c.Name },
	Fallback: FallbackCarriers,
}

// FallbackCarriers returns the demo carriers
func FallbackCarriers() []Carrier {
	return []Carrier{
		{ID: 1, Name: "Rapid Poste", Phone: "+216 71 839 000", Note: "National express mail"},
		{ID: 2, Name: "Aramex Tunisie", Phone: "+216 70 014 400", Note: ""},
	}
}
