package clinicapimodels

import (
	"github.com/pkg/errors"

	dbmodels "dental-staff-backend/models/db"
)

type ClinicData struct {
	ClinicName string `json:"clinic_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

func (c ClinicData) Validate() error {
	if c.ClinicName == "" {
		return errors.New("clinic name is required")
	}
	if c.City == "" {
		return errors.New("clinic city is required")
	}
	return nil
}

type ClinicView struct {
	ClinicData
	ID                 string   `json:"id"`
	OwnerSub           string   `json:"owner_sub"`
	AssociatedUserSubs []string `json:"associated_user_subs"`
}

func ClinicConvert(rec dbmodels.Clinic) ClinicView {
	return ClinicView{
		ClinicData: ClinicData{
			ClinicName: rec.ClinicName,
			Phone:      rec.Phone,
			Email:      rec.Email,
			Street:     rec.Street,
			City:       rec.City,
			State:      rec.State,
			ZipCode:    rec.ZipCode,
		},
		ID:                 rec.ID,
		OwnerSub:           rec.OwnerSub,
		AssociatedUserSubs: rec.AssociatedUserSubs,
	}
}
