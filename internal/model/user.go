package model

// swagger:model User
type User struct {
	BaseModel
	FirstName string `gorm:"column:firstname;size:100;not null" json:"firstname"`
	LastName  string `gorm:"column:lastname;size:100;not null" json:"lastname"`
	Email     string `gorm:"size:100;index" json:"email"`
	Picture   uint   `gorm:"default:0" json:"picture"`
	ImageAlt  string `gorm:"column:imagealt;size:255" json:"imagealt"`
	SiteAdmin bool   `gorm:"column:siteadmin;default:false" json:"siteadmin"`
}

func (User) TableName() string {
	return "users"
}
