package user

import (
	"errors"
	"testing"

	userRepo "hormelys/database/repository/user"
	"hormelys/models"
	"hormelys/utils"

	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users []models.User
}

func (f *fakeUserRepo) Create(u *models.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return userRepo.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = "user-1"
	}
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := &DefaultUserService{Repo: repo}

	token, err := svc.Register("nathalia", " Nathalia@Hormelys.COM ", "s3cret")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected one stored user, got %d", len(repo.users))
	}
	stored := repo.users[0]
	if stored.Email != "nathalia@hormelys.com" {
		t.Fatalf("expected normalized email, got %q", stored.Email)
	}
	if stored.Role != models.RoleEditor {
		t.Fatalf("expected editor role, got %q", stored.Role)
	}
	if stored.PasswordHash == "s3cret" {
		t.Fatal("password must not be stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match the password: %v", err)
	}

	sub, err := utils.ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("token failed validation: %v", err)
	}
	if sub != stored.ID {
		t.Fatalf("expected token subject %s, got %s", stored.ID, sub)
	}

	authToken, err := svc.Authenticate("nathalia@hormelys.com", "s3cret")
	if err != nil {
		t.Fatalf("authentication failed: %v", err)
	}
	if authToken == "" {
		t.Fatal("expected a token")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := &DefaultUserService{Repo: repo}

	if _, err := svc.Register("nathalia", "nathalia@hormelys.com", "s3cret"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := svc.Register("nathalia2", "nathalia@hormelys.com", "other")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := &DefaultUserService{Repo: &fakeUserRepo{}}

	if _, err := svc.Register("", "nathalia@hormelys.com", "s3cret"); err == nil {
		t.Fatal("expected an error for missing username")
	}
	if _, err := svc.Register("nathalia", "nathalia@hormelys.com", ""); err == nil {
		t.Fatal("expected an error for missing password")
	}
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := &DefaultUserService{Repo: repo}

	if _, err := svc.Register("nathalia", "nathalia@hormelys.com", "s3cret"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, err := svc.Authenticate("nathalia@hormelys.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("unknown@hormelys.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
