package logic

import (
	"sync"
	"testing"

	"github.com/blues/dfs/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePledge(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	donor := seedUser(t, db, "donor1", model.UserRoleDonor)
	project := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)

	logic := NewPledgeLogic(db)

	pledge, err := logic.CreatePledge(donor.Id, project.Id, 50000)
	require.NoError(t, err)
	assert.Equal(t, model.PledgeStatusConfirmed, pledge.Status)

	var reloaded model.Project
	require.NoError(t, db.First(&reloaded, project.Id).Error)
	assert.Equal(t, int64(50000), reloaded.TotalFunded)

	// 捐赠流水记账
	var tx model.Transaction
	require.NoError(t, db.Where("user_id = ? AND type = ?",
		donor.Id, model.TransactionTypePledge).First(&tx).Error)
	assert.Equal(t, int64(50000), tx.Amount)
	assert.Equal(t, int64(50000), tx.Balance)
}

func TestCreatePledgeValidation(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	donor := seedUser(t, db, "donor1", model.UserRoleDonor)
	active := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)
	completed := seedProject(t, db, beneficiary.Id, model.ProjectStatusCompleted)

	logic := NewPledgeLogic(db)

	_, err := logic.CreatePledge(donor.Id, active.Id, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = logic.CreatePledge(donor.Id, active.Id, -100)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = logic.CreatePledge(donor.Id, 99999, 100)
	assert.ErrorIs(t, err, ErrNotFound)

	// 已完成的项目不接受捐赠
	_, err = logic.CreatePledge(donor.Id, completed.Id, 100)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestConcurrentPledges(t *testing.T) {
	db := newFileTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	donor := seedUser(t, db, "donor1", model.UserRoleDonor)
	project := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)

	logic := NewPledgeLogic(db)

	const workers = 5
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = logic.CreatePledge(donor.Id, project.Id, 100)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "pledge %d", i)
	}

	var reloaded model.Project
	require.NoError(t, db.First(&reloaded, project.Id).Error)
	assert.Equal(t, int64(workers*100), reloaded.TotalFunded)
}

func TestGetProjectDonors(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	d1 := seedUser(t, db, "donor1", model.UserRoleDonor)
	d2 := seedUser(t, db, "donor2", model.UserRoleDonor)
	p1 := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)
	p2 := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)

	logic := NewPledgeLogic(db)

	_, err := logic.CreatePledge(d1.Id, p1.Id, 300)
	require.NoError(t, err)
	_, err = logic.CreatePledge(d1.Id, p2.Id, 200)
	require.NoError(t, err)
	_, err = logic.CreatePledge(d2.Id, p1.Id, 100)
	require.NoError(t, err)

	donors, err := logic.GetProjectDonors(beneficiary.Id, "")
	require.NoError(t, err)
	require.Len(t, donors, 2)

	// 按捐赠总额倒序
	assert.Equal(t, d1.Id, donors[0].DonorId)
	assert.Equal(t, int64(500), donors[0].TotalDonated)
	assert.Equal(t, int64(2), donors[0].ProjectCount)
	assert.Equal(t, d2.Id, donors[1].DonorId)
	assert.Equal(t, int64(100), donors[1].TotalDonated)

	// 按名称过滤
	filtered, err := logic.GetProjectDonors(beneficiary.Id, "donor2")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, d2.Id, filtered[0].DonorId)
}

func TestHasPledged(t *testing.T) {
	db := newTestDB(t)
	beneficiary := seedUser(t, db, "bee1", model.UserRoleBeneficiary)
	donor := seedUser(t, db, "donor1", model.UserRoleDonor)
	project := seedProject(t, db, beneficiary.Id, model.ProjectStatusActive)

	logic := NewPledgeLogic(db)

	pledged, err := logic.HasPledged(donor.Id, project.Id)
	require.NoError(t, err)
	assert.False(t, pledged)

	_, err = logic.CreatePledge(donor.Id, project.Id, 100)
	require.NoError(t, err)

	pledged, err = logic.HasPledged(donor.Id, project.Id)
	require.NoError(t, err)
	assert.True(t, pledged)
}
