package http

import (
	"net/http"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
)

type profilePageData struct {
	Title    string
	Active   string
	UserName string

	Error string
	User  core.User
}

func (s *Server) handleProfilePage(w http.ResponseWriter, r *http.Request) {
	data := profilePageData{
		Title:    "Profile",
		Active:   "profile",
		UserName: s.session.User.Name,
		Error:    s.profileErr,
		User:     s.session.User,
	}
	s.render(w, r, "profile.html", data)
}
