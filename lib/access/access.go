package access

import (
	"strings"

	"dental-staff-backend/models"
	dbmodels "dental-staff-backend/models/db"
)

// Group membership is case- and punctuation-insensitive: the identity
// provider hands out names like "Clinic Admin", handlers compare against
// the normalized form.

func NormalizeGroup(name string) models.UserGroup {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return models.UserGroup(b.String())
}

// Groups is the normalized set of a subject's identity-provider groups.
type Groups map[models.UserGroup]struct{}

func NewGroups(raw []string) Groups {
	set := make(Groups, len(raw))
	for _, name := range raw {
		normalized := NormalizeGroup(name)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}

func (g Groups) Has(group models.UserGroup) bool {
	_, ok := g[group]
	return ok
}

// IsRoot bypasses every other check.
func (g Groups) IsRoot() bool {
	return g.Has(models.GroupRoot)
}

func (g Groups) HasClinicRole() bool {
	for group := range g {
		if group.IsClinicScoped() {
			return true
		}
	}
	return false
}

// CanManageClinic decides whether the subject may act on the clinic.
// Clinic-scoped roles still require resource-level association: the subject
// must own the clinic or appear in its associated-users list.
func CanManageClinic(subjectSub string, groups Groups, clinic *dbmodels.Clinic) bool {
	if groups.IsRoot() {
		return true
	}
	if clinic == nil {
		return false
	}
	if !groups.HasClinicRole() {
		return false
	}
	return clinic.IsAssociated(subjectSub)
}

// CanManageJob decides whether the subject may act on a job posting. Owning
// the posting as clinicUserSub is sufficient without clinic association.
func CanManageJob(subjectSub string, groups Groups, job *dbmodels.JobPosting, clinic *dbmodels.Clinic) bool {
	if groups.IsRoot() {
		return true
	}
	if job == nil {
		return false
	}
	if job.ClinicUserSub == subjectSub && groups.HasClinicRole() {
		return true
	}
	return CanManageClinic(subjectSub, groups, clinic)
}

// IsProfessionalOwner checks professional-scoped actions: identity equality
// only, no group elevation applies.
func IsProfessionalOwner(subjectSub, professionalUserSub string) bool {
	return subjectSub != "" && subjectSub == professionalUserSub
}
