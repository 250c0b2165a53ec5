package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"safecheck-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CheckServiceTestSuite struct {
	suite.Suite
	service       *CheckService
	checkRepo     *MockCheckRepository
	equipmentRepo *MockEquipmentRepository
	ctx           context.Context
}

func (suite *CheckServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.checkRepo = &MockCheckRepository{}
	suite.equipmentRepo = &MockEquipmentRepository{}
	suite.service = NewCheckService(suite.checkRepo, suite.equipmentRepo, quietLogger{})
}

func TestCheckServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CheckServiceTestSuite))
}

func (suite *CheckServiceTestSuite) equipment() []*models.Equipment {
	return []*models.Equipment{
		{EquipmentID: "eq-1", OrgID: "org-1", Name: "Forklift", SafetyFrequency: models.FrequencyWeekly},
	}
}

func (suite *CheckServiceTestSuite) TestSubmitCheckSuccess() {
	suite.equipmentRepo.On("GetEquipment", "eq-1").Return(suite.equipment(), nil)
	suite.checkRepo.On("CreateCheck", suite.ctx, mock.AnythingOfType("*models.CompletedCheck")).
		Return(&models.CompletedCheck{CheckID: "c-1", EquipmentID: "eq-1"}, nil)
	suite.equipmentRepo.On("TouchLastSafetyCheck", suite.ctx, "eq-1", mock.AnythingOfType("time.Time")).Return(nil)

	req := &models.SubmitCheckRequest{
		EquipmentID: "eq-1",
		Status:      models.CheckStatusPassed,
		CheckData:   []models.CheckItem{{Label: "Check hydraulics", Checked: true}},
	}
	created, err := suite.service.SubmitCheck(suite.ctx, req, "officer-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "c-1", created.CheckID)

	passed := suite.checkRepo.Calls[0].Arguments.Get(1).(*models.CompletedCheck)
	assert.Equal(suite.T(), "officer-1", passed.PerformedBy)
	assert.Equal(suite.T(), "org-1", passed.OrgID, "org is stamped from the equipment record")
	assert.NotNil(suite.T(), passed.PerformedDate)
}

func (suite *CheckServiceTestSuite) TestSubmitCheckHonorsExplicitPerformedDate() {
	performed := time.Date(2025, 6, 9, 14, 30, 0, 0, time.UTC)
	suite.equipmentRepo.On("GetEquipment", "eq-1").Return(suite.equipment(), nil)
	suite.checkRepo.On("CreateCheck", suite.ctx, mock.AnythingOfType("*models.CompletedCheck")).
		Return(&models.CompletedCheck{CheckID: "c-1"}, nil)
	suite.equipmentRepo.On("TouchLastSafetyCheck", suite.ctx, "eq-1", performed).Return(nil)

	req := &models.SubmitCheckRequest{
		EquipmentID:   "eq-1",
		Status:        models.CheckStatusPassed,
		PerformedDate: &performed,
	}
	_, err := suite.service.SubmitCheck(suite.ctx, req, "officer-1")

	assert.NoError(suite.T(), err)

	passed := suite.checkRepo.Calls[0].Arguments.Get(1).(*models.CompletedCheck)
	assert.Equal(suite.T(), performed, *passed.PerformedDate)
}

func (suite *CheckServiceTestSuite) TestSubmitCheckRequiresKnownEquipment() {
	suite.equipmentRepo.On("GetEquipment", "missing").Return(nil, errors.New("equipment not found"))

	req := &models.SubmitCheckRequest{EquipmentID: "missing", Status: models.CheckStatusPassed}
	_, err := suite.service.SubmitCheck(suite.ctx, req, "officer-1")

	assert.Error(suite.T(), err)
	suite.checkRepo.AssertNotCalled(suite.T(), "CreateCheck", mock.Anything, mock.Anything)
}

func (suite *CheckServiceTestSuite) TestSubmitCheckRequiresStatus() {
	req := &models.SubmitCheckRequest{EquipmentID: "eq-1"}

	_, err := suite.service.SubmitCheck(suite.ctx, req, "officer-1")

	assert.Error(suite.T(), err)
}

func (suite *CheckServiceTestSuite) TestSubmitCheckSurvivesMarkerFailure() {
	suite.equipmentRepo.On("GetEquipment", "eq-1").Return(suite.equipment(), nil)
	suite.checkRepo.On("CreateCheck", suite.ctx, mock.AnythingOfType("*models.CompletedCheck")).
		Return(&models.CompletedCheck{CheckID: "c-1"}, nil)
	suite.equipmentRepo.On("TouchLastSafetyCheck", suite.ctx, "eq-1", mock.AnythingOfType("time.Time")).
		Return(errors.New("conditional check failed"))

	req := &models.SubmitCheckRequest{EquipmentID: "eq-1", Status: models.CheckStatusPassed}
	created, err := suite.service.SubmitCheck(suite.ctx, req, "officer-1")

	assert.NoError(suite.T(), err, "marker failure must not fail the submission")
	assert.Equal(suite.T(), "c-1", created.CheckID)
}

func (suite *CheckServiceTestSuite) TestGetCheckHistoryDelegates() {
	suite.checkRepo.On("GetChecksByFilter", mock.AnythingOfType("*models.CheckFilter")).
		Return([]*models.CompletedCheck{{CheckID: "c-1"}}, nil)

	checks, err := suite.service.GetCheckHistory(nil)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), checks, 1)
}
