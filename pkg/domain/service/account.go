package service

import (
	"time"

	"store/pkg/domain/model"
)

// AccountService handles registration and credential checks. Passwords are
// kept verbatim and matched exactly; they are never surfaced anywhere.
type AccountService interface {
	SignUp(username, password string) (*model.User, error)
	SignIn(username, password string) (*model.User, error)
}

func NewAccountService(repo model.UserRepository, dispatcher EventDispatcher, now func() time.Time) AccountService {
	return &accountService{repo: repo, dispatcher: dispatcher, now: now}
}

type accountService struct {
	repo       model.UserRepository
	dispatcher EventDispatcher
	now        func() time.Time
}

// SignUp creates the account but does not sign it in.
func (s *accountService) SignUp(username, password string) (*model.User, error) {
	if _, err := s.repo.FindByUsername(username); err == nil {
		return nil, model.ErrUsernameTaken
	}

	userID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:        userID,
		Username:  username,
		Password:  password,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.UserRegistered{UserID: userID, Username: username})
	return user, nil
}

// SignIn does not distinguish an unknown username from a wrong password.
func (s *accountService) SignIn(username, password string) (*model.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}
	if user.Password != password {
		return nil, model.ErrInvalidCredentials
	}

	_ = s.dispatcher.Dispatch(model.UserSignedIn{UserID: user.ID, Username: user.Username})
	return user, nil
}
