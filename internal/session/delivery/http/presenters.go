package http

import (
	"vision/internal/session"
	"vision/pkg/response"
)

type signInReq struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r signInReq) toInput() session.LoginInput {
	return session.LoginInput{Email: r.Email, Password: r.Password}
}

type updateUserReq struct {
	Email *string `json:"email" binding:"omitempty,email"`
	Name  *string `json:"name"  binding:"omitempty,max=200"`
}

func (r updateUserReq) toInput() session.UserUpdate {
	return session.UserUpdate{Email: r.Email, Name: r.Name}
}

type userResp struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type stateResp struct {
	User          *userResp          `json:"user"`
	Authenticated bool               `json:"authenticated"`
	LoginRequired bool               `json:"login_required"`
	LoginPath     string             `json:"login_path"`
	ExpiresAt     response.Timestamp `json:"expires_at"`
}

func (h *handler) newUserResp(u session.User) userResp {
	return userResp{ID: u.ID, Email: u.Email, Name: u.Name}
}

func (h *handler) newStateResp(st session.State) stateResp {
	resp := stateResp{
		Authenticated: st.Authenticated,
		LoginRequired: st.LoginRequired,
		LoginPath:     st.LoginPath,
		ExpiresAt:     response.Timestamp(st.ExpiresAt),
	}
	if st.User != nil {
		u := h.newUserResp(*st.User)
		resp.User = &u
	}
	return resp
}
