package logic

import (
	"testing"
	"time"

	"github.com/blues/dfs/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitKYC(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)

	logic := NewKYCLogic(db)

	kyc, err := logic.SubmitKYC(beneficiary.Id, []KYCDocumentInput{
		{Type: "id", URL: "https://files.example.com/id.jpg"},
		{Type: "business_license", URL: "https://files.example.com/license.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.KYCStatusPending, kyc.Status)
	assert.Len(t, kyc.Documents, 2)

	// 已有待审核记录时追加材料，不新建记录
	kyc2, err := logic.SubmitKYC(beneficiary.Id, []KYCDocumentInput{
		{Type: "bank_statement", URL: "https://files.example.com/bank.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, kyc.Id, kyc2.Id)
	assert.Len(t, kyc2.Documents, 3)
}

func TestSubmitKYCValidation(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)

	logic := NewKYCLogic(db)

	_, err := logic.SubmitKYC(beneficiary.Id, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = logic.SubmitKYC(beneficiary.Id, []KYCDocumentInput{{Type: "id", URL: ""}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = logic.SubmitKYC(beneficiary.Id, []KYCDocumentInput{
		{Type: "selfie", URL: "https://files.example.com/selfie.jpg"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApproveKYCExpiry(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	admin := seedUser(t, db, "admin1", model.UserRoleAdmin)

	logic := NewKYCLogic(db)

	kyc, err := logic.SubmitKYC(beneficiary.Id, []KYCDocumentInput{
		{Type: "id", URL: "https://files.example.com/id.jpg"},
	})
	require.NoError(t, err)

	approved, err := logic.ApproveKYC(admin.Id, kyc.Id)
	require.NoError(t, err)
	assert.Equal(t, model.KYCStatusApproved, approved.Status)
	assert.Equal(t, admin.Id, approved.ReviewedBy)
	require.NotNil(t, approved.ReviewedAt)
	require.NotNil(t, approved.ExpiresAt)

	// 有效期恰好一年（365天整）
	assert.Equal(t, 365*24*time.Hour, approved.ExpiresAt.Sub(*approved.ReviewedAt))

	// 终态不能再审核
	_, err = logic.ApproveKYC(admin.Id, kyc.Id)
	assert.ErrorIs(t, err, ErrConflict)
	_, err = logic.RejectKYC(admin.Id, kyc.Id, "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRejectKYC(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	admin := seedUser(t, db, "admin1", model.UserRoleAdmin)

	logic := NewKYCLogic(db)

	kyc, err := logic.SubmitKYC(beneficiary.Id, []KYCDocumentInput{
		{Type: "id", URL: "https://files.example.com/id.jpg"},
	})
	require.NoError(t, err)

	rejected, err := logic.RejectKYC(admin.Id, kyc.Id, "证件照片模糊")
	require.NoError(t, err)
	assert.Equal(t, model.KYCStatusRejected, rejected.Status)
	assert.Equal(t, "证件照片模糊", rejected.RejectionReason)
	assert.Nil(t, rejected.ExpiresAt)

	_, err = logic.ApproveKYC(admin.Id, kyc.Id)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetPendingKYC(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin1", model.UserRoleAdmin)
	u1 := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	u2 := seedUser(t, db, "bee2", model.UserRoleBeneficiary)

	logic := NewKYCLogic(db)

	k1, err := logic.SubmitKYC(u1.Id, []KYCDocumentInput{{Type: "id", URL: "https://files.example.com/1.jpg"}})
	require.NoError(t, err)
	_, err = logic.SubmitKYC(u2.Id, []KYCDocumentInput{{Type: "id", URL: "https://files.example.com/2.jpg"}})
	require.NoError(t, err)

	_, err = logic.ApproveKYC(admin.Id, k1.Id)
	require.NoError(t, err)

	pending, total, err := logic.GetPendingKYC(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	assert.Equal(t, u2.Id, pending[0].UserId)
}
