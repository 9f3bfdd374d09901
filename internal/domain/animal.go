package domain

// Animal maps to the animals table.
type Animal struct {
	ID          int64    `db:"id" gorm:"column:id;primaryKey"`
	CenterID    int64    `db:"center_id" gorm:"column:center_id"`
	Name        string   `db:"name" gorm:"column:name"`
	Description *string  `db:"description" gorm:"column:description"`
	Age         int      `db:"age" gorm:"column:age"`
	SpeciesID   int64    `db:"species_id" gorm:"column:species_id"`
	Price       *float64 `db:"price" gorm:"column:price"`
}

func (Animal) TableName() string {
	return "animals"
}

// NewAnimal is the creation input. The owning center comes from the caller identity,
// never from the body.
type NewAnimal struct {
	Name        string   `json:"name" validate:"required,max=40"`
	Description *string  `json:"description" validate:"required,max=500"`
	Age         *int     `json:"age" validate:"required,gte=0"`
	SpeciesID   *int64   `json:"species_id" validate:"required,gt=0"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

// AnimalPatch is a sparse update: nil fields are left untouched.
type AnimalPatch struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=40"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Age         *int     `json:"age" validate:"omitempty,gte=0"`
	SpeciesID   *int64   `json:"species_id" validate:"omitempty,gt=0"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

// Apply merges the patch into a long-form animal record.
func (p AnimalPatch) Apply(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.Description != nil {
		out["description"] = *p.Description
	}
	if p.Age != nil {
		out["age"] = *p.Age
	}
	if p.SpeciesID != nil {
		out["species_id"] = *p.SpeciesID
	}
	if p.Price != nil {
		out["price"] = *p.Price
	}
	return out
}

// Empty reports whether the patch carries no fields.
func (p AnimalPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Age == nil && p.SpeciesID == nil && p.Price == nil
}
