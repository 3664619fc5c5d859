package domain

// Category is one of the four fixed material categories. The string values
// are stored verbatim in the data files.
type Category string

const (
	CategoryOrganic  Category = "Organic Waste"
	CategoryPlastics Category = "Plastics"
	CategoryGlass    Category = "Glass"
	CategoryPaper    Category = "Paper & Cardboard"

	// CategoryAll matches every category when filtering. It is never stored.
	CategoryAll Category = "All"
)

// Categories lists the storable categories in display order.
var Categories = []Category{CategoryOrganic, CategoryPlastics, CategoryGlass, CategoryPaper}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Material struct {
	ID                int      `json:"id"`
	Title             string   `json:"title"`
	Category          Category `json:"category"`
	PricePerUnit      float64  `json:"price_per_unit"`
	QuantityAvailable float64  `json:"quantity_available"`
	Description       string   `json:"description"`
	VendorID          int      `json:"vendor_id"`
}

type Vendor struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Document is the primary data file: every vendor and material.
type Document struct {
	Vendors   []Vendor
	Materials []Material

	// Root holds the top-level object as last read, so keys other than
	// vendors and materials survive a save.
	Root Fields
}

// NewDocument returns an empty document with both arrays present.
func NewDocument() *Document {
	return &Document{Vendors: []Vendor{}, Materials: []Material{}}
}

// Transaction is a submitted record plus its timestamp and blockchain_hash
// stamps. Field order is the submission order.
type Transaction struct {
	Fields
}

func (t Transaction) Timestamp() string {
	s, _ := t.GetString("timestamp")
	return s
}

func (t Transaction) BlockchainHash() string {
	s, _ := t.GetString("blockchain_hash")
	return s
}

// TransactionDocument is the transactions data file. Root keeps every other
// top-level key in file order.
type TransactionDocument struct {
	Transactions []Transaction
	Root         Fields
}
