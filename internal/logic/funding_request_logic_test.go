package logic

import (
	"testing"

	"github.com/blues/dfs/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFundingRequest(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	other := seedUser(t, db, "bee2", model.UserRoleBeneficiary)
	project := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)

	logic := NewFundingRequestLogic(db)

	request, err := logic.CreateFundingRequest(beneficiary.Id, project.Id, 50000, "购买灌溉设备")
	require.NoError(t, err)
	assert.Equal(t, model.FundingRequestStatusPending, request.Status)

	_, err = logic.CreateFundingRequest(beneficiary.Id, project.Id, 0, "理由")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = logic.CreateFundingRequest(beneficiary.Id, project.Id, 100, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = logic.CreateFundingRequest(other.Id, project.Id, 100, "理由")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReviewFundingRequest(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	admin := seedUser(t, db, "admin1", model.UserRoleAdmin)
	project := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)

	logic := NewFundingRequestLogic(db)

	request, err := logic.CreateFundingRequest(beneficiary.Id, project.Id, 50000, "购买灌溉设备")
	require.NoError(t, err)

	approved, err := logic.ReviewFundingRequest(admin.Id, request.Id, true, "")
	require.NoError(t, err)
	assert.Equal(t, model.FundingRequestStatusApproved, approved.Status)
	assert.Equal(t, admin.Id, approved.ReviewedBy)
	require.NotNil(t, approved.ReviewedAt)

	// 审核结果不触发放款
	var reloaded model.Project
	require.NoError(t, db.First(&reloaded, project.Id).Error)
	assert.Equal(t, int64(0), reloaded.TotalDisbursed)

	// 终态不能再审核
	_, err = logic.ReviewFundingRequest(admin.Id, request.Id, false, "x")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRejectFundingRequestDefaultReason(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	admin := seedUser(t, db, "admin1", model.UserRoleAdmin)
	project := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)

	logic := NewFundingRequestLogic(db)

	request, err := logic.CreateFundingRequest(beneficiary.Id, project.Id, 50000, "购买灌溉设备")
	require.NoError(t, err)

	rejected, err := logic.ReviewFundingRequest(admin.Id, request.Id, false, "")
	require.NoError(t, err)
	assert.Equal(t, model.FundingRequestStatusRejected, rejected.Status)
	assert.NotEmpty(t, rejected.RejectionReason)
}

func TestDeleteFundingRequestPendingOnly(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	other := seedUser(t, db, "bee2", model.UserRoleBeneficiary)
	admin := seedUser(t, db, "admin1", model.UserRoleAdmin)
	project := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)

	logic := NewFundingRequestLogic(db)

	r1, err := logic.CreateFundingRequest(beneficiary.Id, project.Id, 100, "理由")
	require.NoError(t, err)
	r2, err := logic.CreateFundingRequest(beneficiary.Id, project.Id, 200, "理由")
	require.NoError(t, err)

	_, err = logic.ReviewFundingRequest(admin.Id, r2.Id, true, "")
	require.NoError(t, err)

	assert.ErrorIs(t, logic.DeleteFundingRequest(other.Id, r1.Id), ErrForbidden)
	assert.ErrorIs(t, logic.DeleteFundingRequest(beneficiary.Id, r2.Id), ErrConflict)
	require.NoError(t, logic.DeleteFundingRequest(beneficiary.Id, r1.Id))
}
