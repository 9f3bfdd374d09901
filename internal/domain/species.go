package domain

// Species maps to the species table.
type Species struct {
	ID          int64    `db:"id" gorm:"column:id;primaryKey"`
	Name        string   `db:"name" gorm:"column:name"`
	Description *string  `db:"description" gorm:"column:description"`
	Price       *float64 `db:"price" gorm:"column:price"`
}

func (Species) TableName() string {
	return "species"
}

// SpeciesCount is one row of the species/animal-count aggregation.
type SpeciesCount struct {
	Name  string `db:"species_name" gorm:"column:species_name"`
	Count int64  `db:"count_of_animals" gorm:"column:count_of_animals"`
}

type NewSpecies struct {
	Name        string   `json:"name" validate:"required,max=40"`
	Description *string  `json:"description" validate:"required,max=500"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}
