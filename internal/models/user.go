package models

// DefaultImageFile is stored on accounts that never uploaded a picture.
const DefaultImageFile = "default.png"

// User represents a registered account.
type User struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	Username  string   `json:"username" gorm:"uniqueIndex;type:varchar(20)" validate:"required,min=2,max=20"`
	FirstName string   `json:"first_name" gorm:"type:varchar(35)" validate:"required,max=35"`
	LastName  string   `json:"last_name" gorm:"type:varchar(35)" validate:"required,max=35"`
	Email     string   `json:"email" gorm:"uniqueIndex;type:varchar(120)" validate:"required,email"`
	Password  string   `json:"-" gorm:"type:varchar(60)" validate:"required,min=6"` // bcrypt hash, never serialized
	ImageFile string   `json:"image_file" gorm:"type:varchar(32);not null;default:default.png"`
	Reviews   []Review `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
