package usecase

import (
	"vision/internal/session"
	"vision/pkg/visionapi"
)

func toLoginRequest(in session.LoginInput) visionapi.LoginRequest {
	return visionapi.LoginRequest{Email: in.Email, Password: in.Password}
}

func toSignupRequest(in session.SignupInput) visionapi.SignupRequest {
	return visionapi.SignupRequest{Email: in.Email, Password: in.Password, Name: in.Name}
}

func fromAPIUser(u visionapi.User) session.User {
	return session.User{ID: u.ID, Email: u.Email, Name: u.Name}
}
