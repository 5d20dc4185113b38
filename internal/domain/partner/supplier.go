// Package partner holds supplier records.
package partner

import (
	"strconv"

	"github.com/erp/console/internal/domain/reconcile"
)

// UnknownSupplierName is the placeholder name of a supplier without one
const UnknownSupplierName = "Unknown Supplier"

// Supplier is a company products are sourced from
type Supplier struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// CSVHeader returns the export column names
func (Supplier) CSVHeader() []string {
	return []string{"id", "name", "contact_person", "email", "phone", "address", "notes"}
}

// CSVRow returns the export columns of the supplier
func (s Supplier) CSVRow() []string {
	return []string{
		strconv.FormatInt(s.ID, 10),
		s.Name,
		s.ContactPerson,
		s.Email,
		s.Phone,
		s.Address,
		s.Notes,
	}
}

// SupplierKind reconciles supplier collections
var SupplierKind = reconcile.Kind[Supplier]{
	Name:        "supplier",
	Plural:      "suppliers",
	Placeholder: UnknownSupplierName,
	Build: func(id int64, f reconcile.Fields) Supplier {
		return Supplier{
			ID:            id,
			Name:          f.Text("name", UnknownSupplierName),
			ContactPerson: f.Text("contactPerson", ""),
			Email:         f.Text("email", ""),
			Phone:         f.Text("phone", ""),
			Address:       f.Text("address", ""),
			Notes:         f.Text("notes", ""),
		}
	},
	Label:    func(s Supplier) string { return s.Name },
	Fallback: FallbackSuppliers,
}

// FallbackSuppliers returns the demo suppliers
func FallbackSuppliers() []Supplier {
	return []Supplier{
		{ID: 1, Name: "Nabeul Olive Cooperative", ContactPerson: "Sami Ben Ali", Email: "contact@nabeul-olive.tn", Phone: "+216 72 285 100", Address: "Route de Hammamet, Nabeul", Notes: "Olive oil and soap"},
		{ID: 2, Name: "Kelibia Fisheries", ContactPerson: "Leila Trabelsi", Email: "orders@kelibia-fish.tn", Phone: "+216 72 296 410", Address: "Port de Kelibia", Notes: "Daily fresh catch"},
		{ID: 3, Name: "Cap Bon Packaging", ContactPerson: "Karim Mejri", Email: "sales@capbon-pack.tn", Phone: "+216 72 232 870", Address: "Zone industrielle, Beni Khalled", Notes: ""},
	}
}
