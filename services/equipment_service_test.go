package services

import (
	"context"
	"errors"
	"testing"

	"safecheck-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EquipmentServiceTestSuite struct {
	suite.Suite
	service  *EquipmentService
	mockRepo *MockEquipmentRepository
	ctx      context.Context
}

func (suite *EquipmentServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = &MockEquipmentRepository{}
	suite.service = NewEquipmentService(suite.mockRepo, quietLogger{})
}

func TestEquipmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EquipmentServiceTestSuite))
}

func (suite *EquipmentServiceTestSuite) validCreateRequest() *models.CreateEquipmentRequest {
	return &models.CreateEquipmentRequest{
		OrgID:              "org-1",
		Name:               "Scissor Lift",
		Manufacturer:       "Genie",
		SafetyFrequency:    models.FrequencyWeekly,
		SafetyInstructions: []string{"Check hydraulics", "Inspect rails"},
		AuthorizedOfficers: []string{"officer-1"},
	}
}

func (suite *EquipmentServiceTestSuite) TestCreateEquipmentSuccess() {
	req := suite.validCreateRequest()
	suite.mockRepo.On("CreateEquipment", suite.ctx, mock.AnythingOfType("*models.Equipment")).
		Return(&models.Equipment{EquipmentID: "eq-1", Name: req.Name}, nil)

	created, err := suite.service.CreateEquipment(suite.ctx, req, "admin-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "eq-1", created.EquipmentID)

	passed := suite.mockRepo.Calls[0].Arguments.Get(1).(*models.Equipment)
	assert.Equal(suite.T(), "admin-1", passed.CreatedBy)
	assert.Equal(suite.T(), []string{"officer-1"}, passed.AuthorizedOfficers)
}

func (suite *EquipmentServiceTestSuite) TestCreateEquipmentRequiresName() {
	req := suite.validCreateRequest()
	req.Name = "  "

	_, err := suite.service.CreateEquipment(suite.ctx, req, "admin-1")

	assert.Error(suite.T(), err)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateEquipment", mock.Anything, mock.Anything)
}

func (suite *EquipmentServiceTestSuite) TestCreateEquipmentRequiresOrg() {
	req := suite.validCreateRequest()
	req.OrgID = ""

	_, err := suite.service.CreateEquipment(suite.ctx, req, "admin-1")

	assert.Error(suite.T(), err)
}

func (suite *EquipmentServiceTestSuite) TestCreateEquipmentRejectsUnknownFrequency() {
	req := suite.validCreateRequest()
	req.SafetyFrequency = models.SafetyFrequency("fortnightly")

	_, err := suite.service.CreateEquipment(suite.ctx, req, "admin-1")

	assert.Error(suite.T(), err)
}

func (suite *EquipmentServiceTestSuite) TestCreateEquipmentAllowsNoSchedule() {
	req := suite.validCreateRequest()
	req.SafetyFrequency = ""
	suite.mockRepo.On("CreateEquipment", suite.ctx, mock.AnythingOfType("*models.Equipment")).
		Return(&models.Equipment{EquipmentID: "eq-1"}, nil)

	_, err := suite.service.CreateEquipment(suite.ctx, req, "admin-1")

	assert.NoError(suite.T(), err)
}

func (suite *EquipmentServiceTestSuite) TestGetEquipmentByIDNotFound() {
	suite.mockRepo.On("GetEquipment", "missing").Return(nil, errors.New("equipment not found"))

	_, err := suite.service.GetEquipmentByID("missing")

	assert.Error(suite.T(), err)
}

func (suite *EquipmentServiceTestSuite) TestUpdateEquipmentMergesChanges() {
	existing := &models.Equipment{
		EquipmentID:     "eq-1",
		OrgID:           "org-1",
		Name:            "Scissor Lift",
		Manufacturer:    "Genie",
		SafetyFrequency: models.FrequencyWeekly,
	}
	suite.mockRepo.On("GetEquipment", "eq-1").Return([]*models.Equipment{existing}, nil)
	suite.mockRepo.On("UpdateEquipment", "eq-1", mock.AnythingOfType("*models.Equipment")).
		Return(existing, nil)

	req := &models.UpdateEquipmentRequest{SafetyFrequency: models.FrequencyMonthly}
	_, err := suite.service.UpdateEquipment(suite.ctx, "eq-1", req, "admin-2")

	assert.NoError(suite.T(), err)

	passed := suite.mockRepo.Calls[1].Arguments.Get(1).(*models.Equipment)
	assert.Equal(suite.T(), models.FrequencyMonthly, passed.SafetyFrequency)
	assert.Equal(suite.T(), "Genie", passed.Manufacturer, "unset fields keep existing values")
	assert.Equal(suite.T(), "admin-2", passed.UpdatedBy)
}

func (suite *EquipmentServiceTestSuite) TestDeleteEquipmentDelegates() {
	suite.mockRepo.On("DeleteEquipment", "eq-1").Return(nil)

	err := suite.service.DeleteEquipment("eq-1")

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}
