package catalog

// Section is a top-level catalog category.
type Section struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Subsection is a product line grouped under a Section.
type Subsection struct {
	ID        int64  `db:"id"`
	SectionID int64  `db:"section_id"`
	Name      string `db:"name"`
}

// Product is a single purchasable variant with a fixed price.
// Price is stored in whole currency units, always a multiple of 5.
type Product struct {
	ID           int64  `db:"id"`
	SubsectionID int64  `db:"subsection_id"`
	Name         string `db:"name"`
	Price        int64  `db:"price"`
}
