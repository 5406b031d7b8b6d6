package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"minflow/internal/models"

	"github.com/stretchr/testify/suite"
)

type AdminViewTestSuite struct {
	suite.Suite
}

func TestAdminViewTestSuite(t *testing.T) {
	suite.Run(t, new(AdminViewTestSuite))
}

func (s *AdminViewTestSuite) TestDeleteUser_DeclinedIssuesNoRequest() {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	app, out := newTestApp(server.URL, "no\n")

	deleted := app.deleteUser(context.Background(), 3)

	s.False(deleted)
	s.Zero(requests)
	s.Contains(out.String(), "Cancelled.")
}

func (s *AdminViewTestSuite) TestDeleteUser_ConfirmedIssuesSingleDelete() {
	var requests int
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		method = r.Method
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	app, out := newTestApp(server.URL, "yes\n")

	deleted := app.deleteUser(context.Background(), 3)

	s.True(deleted)
	s.Equal(1, requests)
	s.Equal(http.MethodDelete, method)
	s.Equal("/users/3", path)
	s.Contains(out.String(), "User deleted.")
}

func (s *AdminViewTestSuite) TestRemoveUser_FiltersById() {
	users := []models.User{{ID: 1}, {ID: 2}}

	filtered := removeUser(users, 1)

	s.Len(filtered, 1)
	s.Equal(uint(2), filtered[0].ID)
}
