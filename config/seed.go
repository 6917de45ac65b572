package config

import "taxinvoice-backend/models"

// SeedCompanies is the buyer list used when a user's company table is empty.
// main() replaces it at startup with the cached snapshot when one validates.
var SeedCompanies = DefaultCompanies()

// DefaultCompanies returns the built-in starter buyers.
func DefaultCompanies() []models.Company {
	return []models.Company{
		{
			GstNo:     "24AABCP1234Q1Z5",
			Name:      "Patel Construction Co",
			Address:   "Ring Road, Surat",
			State:     "Gujarat",
			StateCode: "24",
		},
		{
			GstNo:     "27AADCB2230M1ZT",
			Name:      "Bharat Infra Projects",
			Address:   "MIDC Area, Nashik",
			State:     "Maharashtra",
			StateCode: "27",
		},
		{
			GstNo:     "29AAGCM4892K1Z8",
			Name:      "Mysore Fabricators",
			Address:   "Hebbal Industrial Layout, Mysuru",
			State:     "Karnataka",
			StateCode: "29",
		},
	}
}

// DefaultInventory returns the built-in starter items.
func DefaultInventory() []models.InventoryItem {
	return []models.InventoryItem{
		{Name: "Steel Bars (10mm)", HSN: "7214", Rate: 5500, Stock: 150, Unit: "MT", GSTRate: 18},
		{Name: "Steel Bars (12mm)", HSN: "7214", Rate: 5650, Stock: 120, Unit: "MT", GSTRate: 18},
		{Name: "Cement (OPC 53)", HSN: "2523", Rate: 385, Stock: 800, Unit: "Bags", GSTRate: 28},
		{Name: "Binding Wire", HSN: "7217", Rate: 62, Stock: 500, Unit: "Kg", GSTRate: 18},
		{Name: "River Sand", HSN: "2505", Rate: 1450, Stock: 60, Unit: "MT", GSTRate: 5},
	}
}
