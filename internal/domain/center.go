package domain

// Center is a shelter account, maps to the centers table.
// PasswordHash never leaves the storage layer.
type Center struct {
	ID           int64  `db:"id" gorm:"column:id;primaryKey"`
	Login        string `db:"login" gorm:"column:login"`
	PasswordHash string `db:"password_hash" gorm:"column:password_hash"`
	Address      string `db:"address" gorm:"column:address"`
}

func (Center) TableName() string {
	return "centers"
}

// NewCenter is the registration input.
type NewCenter struct {
	Login    string `json:"login" validate:"required,max=20"`
	Password string `json:"password" validate:"required"`
	Address  string `json:"address" validate:"required,max=200"`
}
