package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/arrivaldo/code-challenge-backend/models"
	"github.com/arrivaldo/code-challenge-backend/repository"
	"github.com/arrivaldo/code-challenge-backend/utils"
)

// Fixed defaults applied to every omitted optional field at registration.
const (
	defaultBalance  = "$1,000.00"
	defaultPicture  = "http://placehold.it/32x32"
	defaultAge      = 25
	defaultEyeColor = "brown"
	defaultCompany  = "Freelance"
	defaultPhone    = "+1 (000) 000-0000"
	defaultAddress  = "123 Main Street, Anytown, USA"
)

// saveRetries bounds how many times a mutation re-runs its
// load-modify-save sequence after a stale save was rejected.
const saveRetries = 3

// BlobDeleter is the slice of the blob-storage collaborator the account
// service needs: best-effort cleanup of picture objects.
type BlobDeleter interface {
	Delete(ctx context.Context, key string) error
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Balance  string
	Picture  string
	Age      int
	EyeColor string
	Company  string
	Phone    string
	Address  string
	IsActive *bool
}

// ProfileUpdate carries a partial set of profile fields; nil means the
// field was not given. The merge is shallow: a given Name replaces the
// whole name object.
type ProfileUpdate struct {
	Balance    *string
	Picture    *string
	PictureKey *string
	Age        *int
	EyeColor   *string
	Name       *models.UserName
	Company    *string
	Phone      *string
	Address    *string
	IsActive   *bool
}

func (p ProfileUpdate) Empty() bool {
	return p.Balance == nil && p.Picture == nil && p.PictureKey == nil &&
		p.Age == nil && p.EyeColor == nil && p.Name == nil &&
		p.Company == nil && p.Phone == nil && p.Address == nil &&
		p.IsActive == nil
}

// AuthResult is the outcome of a successful Authenticate: exactly one of
// User/Admin is set, already redacted.
type AuthResult struct {
	IsAdmin bool
	User    *models.User
	Admin   *models.Admin
}

// AccountService implements the user record lifecycle against a record
// store, delegating credential hashing and media cleanup to its
// collaborators.
type AccountService struct {
	store  repository.RecordStore
	hasher PasswordHasher
	blobs  BlobDeleter
	ids    utils.IDGenerator
}

// NewAccountService wires the service; blobs may be nil when no media
// host is configured.
func NewAccountService(store repository.RecordStore, hasher PasswordHasher, blobs BlobDeleter, ids utils.IDGenerator) *AccountService {
	return &AccountService{store: store, hasher: hasher, blobs: blobs, ids: ids}
}

// mutate runs a load-modify-save sequence, retrying the whole sequence a
// bounded number of times when the save lost a version race.
func (s *AccountService) mutate(ctx context.Context, apply func(doc *models.Document) error) error {
	var err error
	for attempt := 0; attempt < saveRetries; attempt++ {
		var doc *models.Document
		doc, err = s.store.Load(ctx)
		if err != nil {
			return err
		}
		if err = apply(doc); err != nil {
			return err
		}
		err = s.store.Save(ctx, doc)
		if err == nil || !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
	}
	return err
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	var created models.User
	err = s.mutate(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.Email == in.Email {
				return ErrConflict
			}
		}

		now := models.ISONow()
		created = models.User{
			ID:        s.ids.NewID(),
			GUID:      s.ids.NewGUID(),
			IsActive:  true,
			Balance:   orDefault(in.Balance, defaultBalance),
			Picture:   orDefault(in.Picture, defaultPicture),
			Age:       in.Age,
			EyeColor:  orDefault(in.EyeColor, defaultEyeColor),
			Name:      splitName(in.Name),
			Company:   orDefault(in.Company, defaultCompany),
			Phone:     orDefault(in.Phone, defaultPhone),
			Address:   orDefault(in.Address, defaultAddress),
			Email:     in.Email,
			Password:  hashed,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if created.Age == 0 {
			created.Age = defaultAge
		}
		if in.IsActive != nil {
			created.IsActive = *in.IsActive
		}

		doc.Users = append(doc.Users, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	redacted := created.Redacted()
	return &redacted, nil
}

// Authenticate checks the admin collection first, then the users. An
// admin email match whose password check fails still falls through to the
// user lookup; that leniency is long-standing observed behavior and is
// kept on purpose. Unknown email and wrong password produce the same
// error.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range doc.Admins {
		if a.Email == email && s.hasher.Verify(password, a.Password) {
			admin := a.Redacted()
			return &AuthResult{IsAdmin: true, Admin: &admin}, nil
		}
	}
	for _, u := range doc.Users {
		if u.Email == email && s.hasher.Verify(password, u.Password) {
			user := u.Redacted()
			return &AuthResult{User: &user}, nil
		}
	}
	return nil, ErrUnauthorized
}

func (s *AccountService) GetProfile(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range doc.Users {
		if u.Email == email {
			user := u.Redacted()
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *AccountService) UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if update.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	var updated models.User
	err := s.mutate(ctx, func(doc *models.Document) error {
		for i := range doc.Users {
			if doc.Users[i].Email != email {
				continue
			}
			u := &doc.Users[i]
			if update.Balance != nil {
				u.Balance = *update.Balance
			}
			if update.Picture != nil {
				u.Picture = *update.Picture
			}
			if update.PictureKey != nil {
				u.PictureKey = *update.PictureKey
			}
			if update.Age != nil {
				u.Age = *update.Age
			}
			if update.EyeColor != nil {
				u.EyeColor = *update.EyeColor
			}
			if update.Name != nil {
				u.Name = *update.Name
			}
			if update.Company != nil {
				u.Company = *update.Company
			}
			if update.Phone != nil {
				u.Phone = *update.Phone
			}
			if update.Address != nil {
				u.Address = *update.Address
			}
			if update.IsActive != nil {
				u.IsActive = *update.IsActive
			}
			u.UpdatedAt = models.ISONow()
			updated = *u
			return nil
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	redacted := updated.Redacted()
	return &redacted, nil
}

// ListUsers returns all user records, redacted, in insertion order.
func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(doc.Users))
	for _, u := range doc.Users {
		users = append(users, u.Redacted())
	}
	return users, nil
}

// SetUserActive sets the active flag; nil inverts the current value.
func (s *AccountService) SetUserActive(ctx context.Context, id string, isActive *bool) (*models.User, error) {
	var updated models.User
	err := s.mutate(ctx, func(doc *models.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID != id {
				continue
			}
			u := &doc.Users[i]
			if isActive != nil {
				u.IsActive = *isActive
			} else {
				u.IsActive = !u.IsActive
			}
			u.UpdatedAt = models.ISONow()
			updated = *u
			return nil
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	redacted := updated.Redacted()
	return &redacted, nil
}

// DeleteUser removes the record, then makes one best-effort attempt to
// release the stored picture object. A failed cleanup is logged and never
// undoes the delete.
func (s *AccountService) DeleteUser(ctx context.Context, id string) error {
	var removed models.User
	err := s.mutate(ctx, func(doc *models.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				removed = doc.Users[i]
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return err
	}

	if removed.PictureKey != "" && s.blobs != nil {
		if err := s.blobs.Delete(ctx, removed.PictureKey); err != nil {
			log.Printf("failed to delete picture %s for user %s: %v", removed.PictureKey, id, err)
		}
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// splitName turns a free-text name into first/last on the first space;
// a missing name falls back to "User"/"Anonymous".
func splitName(full string) models.UserName {
	full = strings.TrimSpace(full)
	if full == "" {
		return models.UserName{First: "User", Last: "Anonymous"}
	}
	first, last, found := strings.Cut(full, " ")
	if !found || last == "" {
		return models.UserName{First: first, Last: "Anonymous"}
	}
	return models.UserName{First: first, Last: last}
}
