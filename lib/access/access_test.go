package access

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dental-staff-backend/models"
	dbmodels "dental-staff-backend/models/db"
)

func TestNormalizeGroup(t *testing.T) {
	t.Run(`case and punctuation are ignored`, func(t *testing.T) {
		require.Equal(t, models.GroupClinicAdmin, NormalizeGroup("Clinic Admin"))
		require.Equal(t, models.GroupClinicAdmin, NormalizeGroup("clinic-admin"))
		require.Equal(t, models.GroupClinicAdmin, NormalizeGroup("CLINIC_ADMIN"))
		require.Equal(t, models.GroupProfessional, NormalizeGroup("Professional"))
	})

	t.Run(`empty and junk-only names normalize to empty`, func(t *testing.T) {
		require.Equal(t, models.UserGroup(""), NormalizeGroup(""))
		require.Equal(t, models.UserGroup(""), NormalizeGroup("---"))
	})

	t.Run(`NewGroups drops empty entries`, func(t *testing.T) {
		groups := NewGroups([]string{"Root", "", "##"})
		require.Len(t, groups, 1)
		require.True(t, groups.IsRoot())
	})
}

func TestClinicAccess(t *testing.T) {
	clinic := &dbmodels.Clinic{
		OwnerSub:           "owner-1",
		AssociatedUserSubs: []string{"owner-1", "manager-1"},
	}
	clinicAdmin := NewGroups([]string{"Clinic Admin"})
	professional := NewGroups([]string{"Professional"})
	root := NewGroups([]string{"Root"})

	t.Run(`root bypasses association`, func(t *testing.T) {
		require.True(t, CanManageClinic("stranger", root, clinic))
		require.True(t, CanManageClinic("stranger", root, nil))
	})

	t.Run(`clinic role still requires association`, func(t *testing.T) {
		require.True(t, CanManageClinic("owner-1", clinicAdmin, clinic))
		require.True(t, CanManageClinic("manager-1", clinicAdmin, clinic))
		require.False(t, CanManageClinic("stranger", clinicAdmin, clinic))
	})

	t.Run(`professional group gives no clinic access`, func(t *testing.T) {
		require.False(t, CanManageClinic("owner-1", professional, clinic))
	})

	t.Run(`missing clinic denies everyone but root`, func(t *testing.T) {
		require.False(t, CanManageClinic("owner-1", clinicAdmin, nil))
	})
}

func TestJobAccess(t *testing.T) {
	clinic := &dbmodels.Clinic{
		OwnerSub:           "owner-1",
		AssociatedUserSubs: []string{"owner-1"},
	}
	job := &dbmodels.JobPosting{
		ClinicUserSub: "poster-1",
	}
	clinicAdmin := NewGroups([]string{"Clinic Admin"})

	t.Run(`posting owner with a clinic role manages the job`, func(t *testing.T) {
		require.True(t, CanManageJob("poster-1", clinicAdmin, job, clinic))
	})

	t.Run(`clinic association also grants access`, func(t *testing.T) {
		require.True(t, CanManageJob("owner-1", clinicAdmin, job, clinic))
	})

	t.Run(`posting owner without a clinic role is denied`, func(t *testing.T) {
		require.False(t, CanManageJob("poster-1", NewGroups(nil), job, clinic))
	})

	t.Run(`nil job denies non-root`, func(t *testing.T) {
		require.False(t, CanManageJob("poster-1", clinicAdmin, nil, clinic))
	})
}

func TestIsProfessionalOwner(t *testing.T) {
	t.Run(`identity equality only`, func(t *testing.T) {
		require.True(t, IsProfessionalOwner("pro-1", "pro-1"))
		require.False(t, IsProfessionalOwner("pro-1", "pro-2"))
		require.False(t, IsProfessionalOwner("", ""))
	})
}
