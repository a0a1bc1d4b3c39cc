package clinichandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dental-staff-backend/db"
	"dental-staff-backend/lib/access"
	"dental-staff-backend/lib/apperror"
	clinicstore "dental-staff-backend/lib/clinic/store"
	clinicapimodels "dental-staff-backend/models/api/clinic"
	dbmodels "dental-staff-backend/models/db"
)

type Provider interface {
	Create(ownerSub string, data clinicapimodels.ClinicData) (id string, err error)
	GetByID(subjectSub string, groups access.Groups, id string) (item clinicapimodels.ClinicView, err error)
	Update(subjectSub string, groups access.Groups, id string, data clinicapimodels.ClinicData) error
	AssociateUser(subjectSub string, groups access.Groups, clinicID, userSub string) error
	DissociateUser(subjectSub string, groups access.Groups, clinicID, userSub string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: clinicstore.NewInstance(db.DB),
	}
}

type impl struct {
	store clinicstore.Provider
}

func (i impl) Create(ownerSub string, data clinicapimodels.ClinicData) (id string, err error) {
	existing, err := i.store.GetByOwner(ownerSub)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperror.Conflict("subject already owns a clinic")
	}
	rec := dbmodels.Clinic{
		OwnerSub:   ownerSub,
		ClinicName: data.ClinicName,
		Phone:      data.Phone,
		Email:      data.Email,
		Address: dbmodels.Address{
			Street:  data.Street,
			City:    data.City,
			State:   data.State,
			ZipCode: data.ZipCode,
		},
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("clinic_id", id).
		WithField("user_id", ownerSub).
		Info("clinic created")
	return id, nil
}

func (i impl) GetByID(subjectSub string, groups access.Groups, id string) (clinicapimodels.ClinicView, error) {
	rec, err := i.resolveForAccess(subjectSub, groups, id)
	if err != nil {
		return clinicapimodels.ClinicView{}, err
	}
	return clinicapimodels.ClinicConvert(*rec), nil
}

func (i impl) Update(subjectSub string, groups access.Groups, id string, data clinicapimodels.ClinicData) error {
	_, err := i.resolveForAccess(subjectSub, groups, id)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"ClinicName": data.ClinicName,
		"Phone":      data.Phone,
		"Email":      data.Email,
		"Street":     data.Street,
		"City":       data.City,
		"State":      data.State,
		"ZipCode":    data.ZipCode,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	log.
		WithField("clinic_id", id).
		WithField("user_id", subjectSub).
		Info("clinic updated")
	return nil
}

func (i impl) AssociateUser(subjectSub string, groups access.Groups, clinicID, userSub string) error {
	rec, err := i.resolveForAccess(subjectSub, groups, clinicID)
	if err != nil {
		return err
	}
	if rec.IsAssociated(userSub) {
		return nil
	}
	updMap := map[string]interface{}{
		"AssociatedUserSubs": gorm.Expr("array_append(associated_user_subs, ?)", userSub),
	}
	return i.store.Update(clinicID, updMap)
}

func (i impl) DissociateUser(subjectSub string, groups access.Groups, clinicID, userSub string) error {
	rec, err := i.resolveForAccess(subjectSub, groups, clinicID)
	if err != nil {
		return err
	}
	if rec.OwnerSub == userSub {
		return apperror.BadRequest("the clinic owner cannot be dissociated")
	}
	updMap := map[string]interface{}{
		"AssociatedUserSubs": gorm.Expr("array_remove(associated_user_subs, ?)", userSub),
	}
	return i.store.Update(clinicID, updMap)
}

func (i impl) resolveForAccess(subjectSub string, groups access.Groups, id string) (*dbmodels.Clinic, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NotFound("clinic not found")
	}
	if !access.CanManageClinic(subjectSub, groups, rec) {
		return nil, apperror.Forbidden("no access to this clinic")
	}
	return rec, nil
}
