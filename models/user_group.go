package models

// UserGroup is a normalized identity-provider group name (lowercased,
// non-alphanumerics stripped), so "Clinic Admin" and "clinicadmin" compare
// equal.
type UserGroup string

const (
	GroupRoot          UserGroup = "root"
	GroupClinicAdmin   UserGroup = "clinicadmin"
	GroupClinicManager UserGroup = "clinicmanager"
	GroupClinicViewer  UserGroup = "clinicviewer"
	GroupProfessional  UserGroup = "professional"
)

var groupHumanName = map[UserGroup]string{
	GroupRoot:          "Root",
	GroupClinicAdmin:   "Clinic administrator",
	GroupClinicManager: "Clinic manager",
	GroupClinicViewer:  "Clinic viewer",
	GroupProfessional:  "Dental professional",
}

func (g UserGroup) ToHuman() string {
	if human, exist := groupHumanName[g]; exist {
		return human
	}
	return string(g)
}

// IsClinicScoped reports whether the group grants clinic-level access once
// the subject is associated with the clinic.
func (g UserGroup) IsClinicScoped() bool {
	switch g {
	case GroupClinicAdmin, GroupClinicManager, GroupClinicViewer:
		return true
	}
	return false
}
