package services_test

import (
	"database/sql"
	"testing"

	"github.com/isdelr/classmate-be/internal/database"
	"github.com/isdelr/classmate-be/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	// A pooled connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func newUserService(t *testing.T) *services.UserService {
	t.Helper()
	db := newTestDB(t)
	return services.NewUserService(db, services.NewEventService(db))
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		dob      string
		setup    func(s *services.UserService)
		wantErr  error
		wantVerr bool
	}{
		{
			name:     "successful registration",
			userName: "Ada",
			email:    "ada@example.com",
			password: "secret123",
			dob:      "1990-12-10",
		},
		{
			name:     "email without at sign",
			userName: "Ada",
			email:    "ada.example.com",
			password: "secret123",
			wantVerr: true,
		},
		{
			name:     "password too short",
			userName: "Ada",
			email:    "ada@example.com",
			password: "short",
			wantVerr: true,
		},
		{
			name:     "duplicate email",
			userName: "Ada",
			email:    "ada@example.com",
			password: "secret123",
			setup: func(s *services.UserService) {
				_, err := s.Register("Ada", "ada@example.com", "secret123", "")
				require.NoError(t, err)
			},
			wantErr: services.ErrEmailTaken,
		},
		{
			name:     "duplicate email differing only in case",
			userName: "Ada",
			email:    "ADA@Example.COM",
			password: "secret123",
			setup: func(s *services.UserService) {
				_, err := s.Register("Ada", "ada@example.com", "secret123", "")
				require.NoError(t, err)
			},
			wantErr: services.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newUserService(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			user, err := svc.Register(tt.userName, tt.email, tt.password, tt.dob)

			if tt.wantVerr {
				var verr *services.ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, tt.userName, user.Name)
			assert.Equal(t, "ada@example.com", user.Email) // normalized
			assert.Equal(t, tt.dob, user.DOB)
			assert.Empty(t, user.PasswordHash)
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	svc := newUserService(t)

	registered, err := svc.Register("Ada", "ada@example.com", "correctpassword", "1990-12-10")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "successful login",
			email:    "ada@example.com",
			password: "correctpassword",
		},
		{
			name:     "email case does not matter",
			email:    "Ada@Example.com",
			password: "correctpassword",
		},
		{
			name:     "wrong password",
			email:    "ada@example.com",
			password: "wrongpassword",
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:     "non-existent user",
			email:    "nobody@example.com",
			password: "correctpassword",
			wantErr:  services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)
			assert.Empty(t, user.PasswordHash)
		})
	}
}

func TestUserService_GetUserByID(t *testing.T) {
	svc := newUserService(t)

	registered, err := svc.Register("Ada", "ada@example.com", "secret123", "1990-12-10")
	require.NoError(t, err)

	user, err := svc.GetUserByID(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())

	_, err = svc.GetUserByID("no-such-id")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUserService_AuditEvents(t *testing.T) {
	db := newTestDB(t)
	events := services.NewEventService(db)
	svc := services.NewUserService(db, events)

	user, err := svc.Register("Ada", "ada@example.com", "secret123", "")
	require.NoError(t, err)
	_, err = svc.Authenticate("ada@example.com", "secret123")
	require.NoError(t, err)

	recent, err := events.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	types := []string{recent[0].Type, recent[1].Type}
	assert.Contains(t, types, "user.register")
	assert.Contains(t, types, "user.login")
	for _, e := range recent {
		require.NotNil(t, e.UserID)
		assert.Equal(t, user.ID, *e.UserID)
	}
}
