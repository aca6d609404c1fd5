package service

import (
	"testing"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"

	"github.com/stretchr/testify/require"
)

func TestCompanyUserCreateDefaults(t *testing.T) {
	env := newTestEnv(t)

	member, err := env.companyUsers.Create(CreateCompanyUserInput{
		UserID:    1,
		CompanyID: 1,
		JobTitle:  "Barista",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleEmployee, member.Role)
	require.True(t, member.IsActive)
	require.False(t, member.IsRequested)

	_, err = env.companyUsers.Create(CreateCompanyUserInput{
		UserID:    2,
		CompanyID: 1,
		Role:      "owner",
		JobTitle:  "Barista",
	})
	require.True(t, apperr.IsInvalidState(err))
}

func TestCompanyUserDuplicateMembershipConflicts(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.companyUsers.Create(CreateCompanyUserInput{UserID: 1, CompanyID: 1, JobTitle: "Barista"})
	require.NoError(t, err)

	_, err = env.companyUsers.Create(CreateCompanyUserInput{UserID: 1, CompanyID: 1, JobTitle: "Cook"})
	require.True(t, apperr.IsConflict(err))
}

func TestLeaveCompany(t *testing.T) {
	env := newTestEnv(t)
	env.seedMember(t, 1, 1, models.RoleEmployee, "Barista")

	left, err := env.companyUsers.LeaveCompany(1, 1)
	require.NoError(t, err)
	require.False(t, left.IsActive)
	require.NotNil(t, left.LeftAt)

	// Leaving twice is no longer an active membership.
	_, err = env.companyUsers.LeaveCompany(1, 1)
	require.True(t, apperr.IsInvalidState(err))

	_, err = env.companyUsers.LeaveCompany(99, 1)
	require.True(t, apperr.IsInvalidState(err))
}

func TestLeaveCompanyRejectsAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.seedMember(t, 1, 1, models.RoleAdmin, "Owner")

	_, err := env.companyUsers.LeaveCompany(1, 1)
	require.True(t, apperr.IsInvalidState(err))
}

func TestTransferAdminRole(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedMember(t, 1, 1, models.RoleAdmin, "Owner")
	successor := env.seedMember(t, 2, 1, models.RoleEmployee, "Barista")

	transfer, err := env.companyUsers.TransferAdminRole(1, 2, 1, "")
	require.NoError(t, err)
	require.Equal(t, admin.ID, transfer.FromCompanyUserID)
	require.Equal(t, successor.ID, transfer.ToCompanyUserID)
	require.Equal(t, "Admin role transfer", transfer.Reason)

	demoted, err := env.companyUsers.FindOne(admin.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleManager, demoted.Role)
	require.True(t, demoted.IsActive)

	promoted, err := env.companyUsers.FindOne(successor.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, promoted.Role)

	admins, err := env.companyUsers.CompanyAdmins(1)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, successor.ID, admins[0].ID)

	history, err := env.companyUsers.AdminTransferHistory(1)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestTransferAdminRoleValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedMember(t, 1, 1, models.RoleAdmin, "Owner")
	env.seedMember(t, 2, 1, models.RoleEmployee, "Barista")

	_, err := env.companyUsers.TransferAdminRole(1, 1, 1, "")
	require.True(t, apperr.IsInvalidState(err))

	// Only the active admin can hand the role off.
	_, err = env.companyUsers.TransferAdminRole(2, 1, 1, "")
	require.True(t, apperr.IsInvalidState(err))

	// The successor must be an active member.
	_, err = env.companyUsers.TransferAdminRole(1, 99, 1, "")
	require.True(t, apperr.IsInvalidState(err))
}

func TestAdminLeaveCompany(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedMember(t, 1, 1, models.RoleAdmin, "Owner")
	successor := env.seedMember(t, 2, 1, models.RoleEmployee, "Barista")

	transfer, err := env.companyUsers.AdminLeaveCompany(1, 2, 1, "")
	require.NoError(t, err)
	require.Equal(t, "Admin leaving company", transfer.Reason)

	gone, err := env.companyUsers.FindOne(admin.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleEmployee, gone.Role)
	require.False(t, gone.IsActive)
	require.NotNil(t, gone.LeftAt)

	admins, err := env.companyUsers.CompanyAdmins(1)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, successor.ID, admins[0].ID)
}

func TestRejoinCompany(t *testing.T) {
	env := newTestEnv(t)
	member := env.seedMember(t, 1, 1, models.RoleEmployee, "Barista")

	_, err := env.companyUsers.RejoinCompany(1, 1)
	require.True(t, apperr.IsInvalidState(err))

	_, err = env.companyUsers.LeaveCompany(1, 1)
	require.NoError(t, err)

	rejoined, err := env.companyUsers.RejoinCompany(1, 1)
	require.NoError(t, err)
	require.Equal(t, member.ID, rejoined.ID)
	require.True(t, rejoined.IsActive)
	require.True(t, rejoined.IsRequested)
	require.Nil(t, rejoined.LeftAt)

	_, err = env.companyUsers.RejoinCompany(1, 2)
	require.True(t, apperr.IsInvalidState(err))
}

func TestActiveCompanyMembersOrdering(t *testing.T) {
	env := newTestEnv(t)
	env.seedMember(t, 1, 1, models.RoleEmployee, "Barista")
	env.seedMember(t, 2, 1, models.RoleAdmin, "Owner")
	env.seedMember(t, 3, 1, models.RoleManager, "Supervisor")
	former := env.seedMember(t, 4, 1, models.RoleEmployee, "Cook")
	former.IsActive = false
	require.NoError(t, env.companyUserRepo.Update(former))

	members, err := env.companyUsers.ActiveCompanyMembers(1)
	require.NoError(t, err)
	require.Len(t, members, 3)
	require.Equal(t, models.RoleAdmin, members[0].Role)
	require.Equal(t, models.RoleManager, members[1].Role)
	require.Equal(t, models.RoleEmployee, members[2].Role)
}

func TestUserCompanyHistoryActiveFirst(t *testing.T) {
	env := newTestEnv(t)
	env.seedMember(t, 1, 1, models.RoleEmployee, "Barista")
	env.seedMember(t, 1, 2, models.RoleEmployee, "Cook")

	_, err := env.companyUsers.LeaveCompany(1, 1)
	require.NoError(t, err)

	history, err := env.companyUsers.UserCompanyHistory(1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.True(t, history[0].IsActive)
	require.False(t, history[1].IsActive)
}
