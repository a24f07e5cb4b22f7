package categories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/joefazee/neo-admin/models"
)

type DeleteWorkflowTestSuite struct {
	suite.Suite
	ctx         context.Context
	gateway     *MockGateway
	confirmer   *MockConfirmer
	refresher   *MockRefresher
	notifier    *recordingNotifier
	transitions [][2]DeleteState
	workflow    *DeleteWorkflow
	category    models.Category
}

func (s *DeleteWorkflowTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.gateway = &MockGateway{}
	s.confirmer = &MockConfirmer{}
	s.refresher = &MockRefresher{}
	s.notifier = &recordingNotifier{}
	s.transitions = nil
	s.workflow = NewDeleteWorkflow(s.gateway, s.confirmer, s.notifier, s.refresher, nil,
		WithTransitionObserver(func(from, to DeleteState) {
			s.transitions = append(s.transitions, [2]DeleteState{from, to})
		}))
	s.category = models.Category{ID: "c1", Name: "Phones"}
}

func TestDeleteWorkflow(t *testing.T) {
	suite.Run(t, new(DeleteWorkflowTestSuite))
}

func (s *DeleteWorkflowTestSuite) expectPrompt(answer bool, err error) {
	s.confirmer.On("Confirm", mock.Anything, Prompt{
		Title:        "Delete Phones?",
		Body:         "This action cannot be undone!",
		ConfirmLabel: "Yes, delete it!",
		CancelLabel:  "Cancel",
	}).Return(answer, err).Once()
}

func (s *DeleteWorkflowTestSuite) TestDeclinedMakesNoCall() {
	s.expectPrompt(false, nil)

	outcome, err := s.workflow.Delete(s.ctx, s.category)

	s.NoError(err)
	s.Equal(OutcomeDeclined, outcome)
	s.gateway.AssertNotCalled(s.T(), "DeleteCategory", mock.Anything, mock.Anything)
	s.refresher.AssertNotCalled(s.T(), "Refresh", mock.Anything)
	s.Empty(s.notifier.all())
	s.Equal([][2]DeleteState{{StateIdle, StateConfirming}, {StateConfirming, StateIdle}}, s.transitions)
}

func (s *DeleteWorkflowTestSuite) TestSuccessNotifiesAndRefreshesOnce() {
	s.expectPrompt(true, nil)
	s.gateway.On("DeleteCategory", mock.Anything, "c1").Return(&DeleteResult{Message: "ok"}, nil).Once()
	s.refresher.On("Refresh", mock.Anything).Return(nil).Once()

	outcome, err := s.workflow.Delete(s.ctx, s.category)

	s.NoError(err)
	s.Equal(OutcomeDeleted, outcome)
	s.Equal([]toast{{"success", "Deleted!", "Phones has been deleted."}}, s.notifier.all())
	s.refresher.AssertNumberOfCalls(s.T(), "Refresh", 1)
	s.Equal([][2]DeleteState{
		{StateIdle, StateConfirming},
		{StateConfirming, StateSubmitting},
		{StateSubmitting, StateSucceeded},
		{StateSucceeded, StateIdle},
	}, s.transitions)
	s.Equal(StateIdle, s.workflow.State())
}

func (s *DeleteWorkflowTestSuite) TestRefreshFailureAfterDeleteIsNotAFailure() {
	s.expectPrompt(true, nil)
	s.gateway.On("DeleteCategory", mock.Anything, "c1").Return(&DeleteResult{}, nil).Once()
	s.refresher.On("Refresh", mock.Anything).Return(errors.New("offline")).Once()

	outcome, err := s.workflow.Delete(s.ctx, s.category)

	s.NoError(err)
	s.Equal(OutcomeDeleted, outcome)
}

func (s *DeleteWorkflowTestSuite) TestFailureShowsServerMessage() {
	s.expectPrompt(true, nil)
	remote := &models.RemoteError{Kind: models.ErrValidation, Status: 409, Message: "Category has products"}
	s.gateway.On("DeleteCategory", mock.Anything, "c1").Return(nil, remote).Once()

	outcome, err := s.workflow.Delete(s.ctx, s.category)

	s.ErrorIs(err, models.ErrValidation)
	s.Equal(OutcomeFailed, outcome)
	s.Equal([]toast{{"error", "Error!", "Category has products"}}, s.notifier.all())
	s.refresher.AssertNotCalled(s.T(), "Refresh", mock.Anything)
	s.Equal([2]DeleteState{StateSubmitting, StateFailed}, s.transitions[2])
	s.Equal(StateIdle, s.workflow.State())
}

func (s *DeleteWorkflowTestSuite) TestFailureFallsBackToGenericMessage() {
	s.expectPrompt(true, nil)
	s.gateway.On("DeleteCategory", mock.Anything, "c1").Return(nil, models.NewNetworkError(errors.New("reset"))).Once()

	outcome, err := s.workflow.Delete(s.ctx, s.category)

	s.ErrorIs(err, models.ErrNetwork)
	s.Equal(OutcomeFailed, outcome)
	s.Equal([]toast{{"error", "Error!", "Failed to delete category"}}, s.notifier.all())
}

func (s *DeleteWorkflowTestSuite) TestConfirmerErrorReturnsToIdle() {
	boom := errors.New("stdin closed")
	s.expectPrompt(false, boom)

	outcome, err := s.workflow.Delete(s.ctx, s.category)

	s.ErrorIs(err, boom)
	s.Equal(OutcomeDeclined, outcome)
	s.Equal(StateIdle, s.workflow.State())
	s.gateway.AssertNotCalled(s.T(), "DeleteCategory", mock.Anything, mock.Anything)
}

func (s *DeleteWorkflowTestSuite) TestBusyWhileSubmitting() {
	s.expectPrompt(true, nil)
	var (
		busy      bool
		secondErr error
	)
	s.gateway.On("DeleteCategory", mock.Anything, "c1").Run(func(mock.Arguments) {
		busy = s.workflow.Busy()
		_, secondErr = s.workflow.Delete(s.ctx, models.Category{ID: "c2", Name: "Other"})
	}).Return(&DeleteResult{}, nil).Once()
	s.refresher.On("Refresh", mock.Anything).Return(nil).Once()

	outcome, err := s.workflow.Delete(s.ctx, s.category)

	s.NoError(err)
	s.Equal(OutcomeDeleted, outcome)
	s.True(busy)
	s.ErrorIs(secondErr, ErrBusy)
	s.gateway.AssertNumberOfCalls(s.T(), "DeleteCategory", 1)
	s.False(s.workflow.Busy())
}

func (s *DeleteWorkflowTestSuite) TestStateNames() {
	s.Equal("submitting", StateSubmitting.String())
	s.Equal("deleted", OutcomeDeleted.String())
}
