package dbmodels

import (
	"slices"

	"github.com/lib/pq"
)

type Clinic struct {
	BaseModel
	OwnerSub   string `gorm:"type:varchar(64);index"` // identity-provider subject of the clinic owner
	ClinicName string `gorm:"type:varchar(255)"`
	Phone      string `gorm:"type:varchar(50)"`
	Email      string `gorm:"type:varchar(255)"`
	Address
	// Staff accounts granted clinic-scoped access in addition to the owner.
	AssociatedUserSubs pq.StringArray `gorm:"type:text[]"`
}

type Address struct {
	Street  string `gorm:"type:varchar(255)"`
	City    string `gorm:"type:varchar(100)"`
	State   string `gorm:"type:varchar(100)"`
	ZipCode string `gorm:"type:varchar(20)"`
}

func (c Clinic) IsAssociated(userSub string) bool {
	if userSub == "" {
		return false
	}
	if c.OwnerSub == userSub {
		return true
	}
	return slices.Contains(c.AssociatedUserSubs, userSub)
}
