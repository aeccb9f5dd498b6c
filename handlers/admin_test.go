package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	userRepo "stayhub/database/repository/user"
	"stayhub/models"

	"github.com/gin-gonic/gin"
)

type fakeUserRepo struct {
	users map[string]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return userRepo.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func TestListUsersHandler(t *testing.T) {
	h := NewAdminHandler(newFakeUserRepo(
		models.User{ID: "u-1", Username: "ada", Email: "ada@example.com", PasswordHash: "hash-ada"},
		models.User{ID: "u-2", Username: "bob", Email: "bob@example.com", PasswordHash: "hash-bob"},
	))

	c, w := testContext(t)
	h.ListUsersHandler(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var list []models.User
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 users, got %+v", list)
	}
	// Password hashes never leave the server.
	if strings.Contains(w.Body.String(), "hash-") {
		t.Errorf("response leaks password material: %s", w.Body.String())
	}
}

func TestDeleteUserHandler(t *testing.T) {
	repo := newFakeUserRepo(models.User{ID: "u-1", Username: "ada"})
	h := NewAdminHandler(repo)

	c, w := testContext(t)
	c.Request = c.Request.Clone(c.Request.Context())
	c.Request.Method = http.MethodDelete
	c.Params = gin.Params{{Key: "id", Value: "u-1"}}
	h.DeleteUserHandler(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if _, err := repo.GetByID(context.Background(), "u-1"); err != userRepo.ErrNotFound {
		t.Errorf("user not deleted: %v", err)
	}
}

func TestDeleteUserHandlerNotFound(t *testing.T) {
	h := NewAdminHandler(newFakeUserRepo())

	c, w := testContext(t)
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}
	h.DeleteUserHandler(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
