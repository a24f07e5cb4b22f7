package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/joefazee/neo-admin/internal/security"
	"github.com/joefazee/neo-admin/internal/validator"
	"github.com/joefazee/neo-admin/models"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ResetPassword(ctx context.Context, req ResetPasswordRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) CurrentUser(ctx context.Context) (*security.Identity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Identity), args.Error(1)
}

type toast struct {
	Kind    string
	Title   string
	Message string
}

type recordingNotifier struct {
	toasts []toast
}

func (n *recordingNotifier) Success(title, message string) {
	n.toasts = append(n.toasts, toast{"success", title, message})
}

func (n *recordingNotifier) Error(title, message string) {
	n.toasts = append(n.toasts, toast{"error", title, message})
}

type PasswordFormTestSuite struct {
	suite.Suite
	ctx      context.Context
	gateway  *MockGateway
	identity *MockIdentity
	notifier *recordingNotifier
	form     *PasswordForm
}

func (s *PasswordFormTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.gateway = &MockGateway{}
	s.identity = &MockIdentity{}
	s.notifier = &recordingNotifier{}
	s.form = NewPasswordForm(s.gateway, s.identity, s.notifier, nil)
}

func TestPasswordForm(t *testing.T) {
	suite.Run(t, new(PasswordFormTestSuite))
}

func (s *PasswordFormTestSuite) fill(current, next, reenter string) {
	s.Require().NoError(s.form.Set(FieldCurrent, current))
	s.Require().NoError(s.form.Set(FieldNew, next))
	s.Require().NoError(s.form.Set(FieldReenter, reenter))
}

func (s *PasswordFormTestSuite) TestAllErrorsSurfacedTogether() {
	s.fill("   ", "", "")

	err := s.form.Submit(s.ctx)

	var v *validator.Validator
	s.Require().True(errors.As(err, &v))
	s.Equal(map[Field]string{
		FieldCurrent: "Current password is required",
		FieldNew:     "New password is required",
		FieldReenter: "Please re-enter your password",
	}, s.form.Errors())
	s.Equal([]toast{{"error", "Error!", "Please fix the errors above"}}, s.notifier.toasts)
	s.gateway.AssertNotCalled(s.T(), "ResetPassword", mock.Anything, mock.Anything)
}

func (s *PasswordFormTestSuite) TestShortAndMismatched() {
	s.fill("old-secret", "short", "shorter")

	s.False(s.form.Validate())
	s.Equal(map[Field]string{
		FieldNew:     "Password must be at least 8 characters",
		FieldReenter: "Passwords do not match",
	}, s.form.Errors())
}

func (s *PasswordFormTestSuite) TestSingleFieldFailures() {
	tests := []struct {
		name                   string
		current, next, reenter string
		want                   map[Field]string
	}{
		{
			name:    "blank current only",
			current: "", next: "abcdefgh", reenter: "abcdefgh",
			want: map[Field]string{FieldCurrent: "Current password is required"},
		},
		{
			name:    "short new only",
			current: "x", next: "short", reenter: "short",
			want: map[Field]string{FieldNew: "Password must be at least 8 characters"},
		},
		{
			name:    "blank reenter only",
			current: "x", next: "abcdefgh", reenter: "  ",
			want: map[Field]string{FieldReenter: "Please re-enter your password"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.fill(tt.current, tt.next, tt.reenter)

			err := s.form.Submit(s.ctx)

			var v *validator.Validator
			s.Require().True(errors.As(err, &v))
			s.Equal(tt.want, s.form.Errors())
			s.Equal([]toast{{"error", "Error!", "Please fix the errors above"}}, s.notifier.toasts)
			s.gateway.AssertNotCalled(s.T(), "ResetPassword", mock.Anything, mock.Anything)
			s.identity.AssertNotCalled(s.T(), "CurrentUser", mock.Anything)
		})
	}
}

func (s *PasswordFormTestSuite) TestMismatchOnly() {
	s.fill("old-secret", "abcdefgh", "abcdefgX")

	s.False(s.form.Validate())
	s.Equal(map[Field]string{FieldReenter: "Passwords do not match"}, s.form.Errors())
}

func (s *PasswordFormTestSuite) TestSetClearsOnlyThatFieldsError() {
	s.fill("", "", "")
	s.False(s.form.Validate())

	s.Require().NoError(s.form.Set(FieldNew, "x"))

	errs := s.form.Errors()
	s.NotContains(errs, FieldNew)
	s.Contains(errs, FieldCurrent)
	s.Contains(errs, FieldReenter)
}

func (s *PasswordFormTestSuite) TestSetUnknownField() {
	s.ErrorIs(s.form.Set("email", "x"), ErrUnknownField)
}

func (s *PasswordFormTestSuite) TestSuccessSendsOneCallAndClears() {
	s.identity.On("CurrentUser", mock.Anything).Return(&security.Identity{UserID: "u-1"}, nil)
	s.gateway.On("ResetPassword", mock.Anything, ResetPasswordRequest{
		UserID: "u-1", OldPassword: "old-secret", NewPassword: "new-secret",
	}).Return("Password reset", nil).Once()
	s.fill("old-secret", "new-secret", "new-secret")

	s.Require().NoError(s.form.Submit(s.ctx))

	s.gateway.AssertNumberOfCalls(s.T(), "ResetPassword", 1)
	s.Equal("", s.form.Value(FieldCurrent))
	s.Equal("", s.form.Value(FieldNew))
	s.Equal("", s.form.Value(FieldReenter))
	s.Empty(s.form.Errors())
	s.Equal([]toast{{"success", "Success!", "Password changed successfully"}}, s.notifier.toasts)
	s.False(s.form.Submitting())
}

func (s *PasswordFormTestSuite) TestFailureKeepsFieldsAndShowsReason() {
	s.identity.On("CurrentUser", mock.Anything).Return(&security.Identity{UserID: "u-1"}, nil)
	s.gateway.On("ResetPassword", mock.Anything, mock.Anything).
		Return("", &models.RemoteError{Kind: models.ErrValidation, Status: 400, Message: "Old password is incorrect"}).Once()
	s.fill("wrong-one", "new-secret", "new-secret")

	err := s.form.Submit(s.ctx)

	s.ErrorIs(err, models.ErrValidation)
	s.Equal("wrong-one", s.form.Value(FieldCurrent))
	s.Equal([]toast{{"error", "Error!", "Failed to change password: Old password is incorrect"}}, s.notifier.toasts)
}

func (s *PasswordFormTestSuite) TestFailureWithoutReason() {
	s.identity.On("CurrentUser", mock.Anything).Return(&security.Identity{UserID: "u-1"}, nil)
	s.gateway.On("ResetPassword", mock.Anything, mock.Anything).
		Return("", models.NewNetworkError(errors.New("refused"))).Once()
	s.fill("old-secret", "new-secret", "new-secret")

	err := s.form.Submit(s.ctx)

	s.ErrorIs(err, models.ErrNetwork)
	s.Equal([]toast{{"error", "Error!", "Failed to change password"}}, s.notifier.toasts)
}

func (s *PasswordFormTestSuite) TestUnknownUserSendsEmptyID() {
	s.identity.On("CurrentUser", mock.Anything).Return(nil, models.ErrUnknownUser)
	s.gateway.On("ResetPassword", mock.Anything, mock.MatchedBy(func(r ResetPasswordRequest) bool {
		return r.UserID == ""
	})).Return("ok", nil).Once()
	s.fill("old-secret", "new-secret", "new-secret")

	s.NoError(s.form.Submit(s.ctx))
	s.gateway.AssertExpectations(s.T())
}

func (s *PasswordFormTestSuite) TestConcurrentSubmitRejected() {
	var (
		during    bool
		secondErr error
	)
	s.identity.On("CurrentUser", mock.Anything).Return(&security.Identity{UserID: "u-1"}, nil)
	s.gateway.On("ResetPassword", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		during = s.form.Submitting()
		secondErr = s.form.Submit(s.ctx)
	}).Return("ok", nil).Once()
	s.fill("old-secret", "new-secret", "new-secret")

	s.NoError(s.form.Submit(s.ctx))
	s.True(during)
	s.ErrorIs(secondErr, ErrBusy)
	s.gateway.AssertNumberOfCalls(s.T(), "ResetPassword", 1)
}
