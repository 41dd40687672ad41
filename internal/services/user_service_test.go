package services

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/basriibrahim1/h2padel-backend/internal/dto"
	"github.com/basriibrahim1/h2padel-backend/internal/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeIdentity struct {
	createID  uuid.UUID
	createErr error
	deleteErr error

	created []identity.CreateUserParams
	updated []identity.UpdateUserParams
	deleted []uuid.UUID
}

func (f *fakeIdentity) CreateUser(p identity.CreateUserParams) (uuid.UUID, error) {
	f.created = append(f.created, p)
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	return f.createID, nil
}

func (f *fakeIdentity) UpdateUser(id uuid.UUID, p identity.UpdateUserParams) error {
	f.updated = append(f.updated, p)
	return nil
}

func (f *fakeIdentity) DeleteUser(id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeIdentity) VerifyPassword(email, password string) (uuid.UUID, error) {
	return uuid.Nil, identity.ErrInvalidCredentials
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func newUserService(t *testing.T, ids identity.Service) (*UserService, sqlmock.Sqlmock) {
	gdb, mock := newMockDB(t)
	return NewUserService(gdb, ids, NewCatalogService(gdb, nil)), mock
}

const provisionQuery = "SELECT create_user_profile_and_role($1, $2, $3, $4, $5, $6)"

func coachRequest() *dto.CreateUserRequest {
	return &dto.CreateUserRequest{
		Email:    "rina@example.com",
		Password: "secret123",
		FullName: "Rina Wijaya",
		Phone:    "0812222",
		Role:     "coach",
		FixedFee: 150000,
	}
}

func TestProvisionUser(t *testing.T) {
	authID := uuid.New()
	ids := &fakeIdentity{createID: authID}
	svc, mock := newUserService(t, ids)

	mock.ExpectQuery(regexp.QuoteMeta(provisionQuery)).
		WithArgs(authID.String(), "coach", "Rina Wijaya", "0812222", "rina@example.com", 150000.0).
		WillReturnRows(sqlmock.NewRows([]string{"create_user_profile_and_role"}).AddRow(int64(42)))

	resp, err := svc.ProvisionUser(coachRequest())
	require.NoError(t, err)
	require.Equal(t, authID, resp.UserID)
	require.Equal(t, int64(42), resp.LocalRoleID)

	require.Len(t, ids.created, 1)
	require.True(t, ids.created[0].EmailConfirmed)
	require.Equal(t, "Rina Wijaya", ids.created[0].Metadata.FullName)
	require.Equal(t, "coach", ids.created[0].Metadata.Role)
	require.Empty(t, ids.deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionUserValidation(t *testing.T) {
	ids := &fakeIdentity{createID: uuid.New()}
	svc, _ := newUserService(t, ids)

	req := coachRequest()
	req.Email = ""
	_, err := svc.ProvisionUser(req)
	require.ErrorIs(t, err, ErrMissingUserFields)

	req = coachRequest()
	req.Role = "janitor"
	_, err = svc.ProvisionUser(req)
	require.ErrorIs(t, err, ErrInvalidRole)

	// Validation failures never reach the identity service.
	require.Empty(t, ids.created)
}

func TestProvisionUserIdentityFailure(t *testing.T) {
	ids := &fakeIdentity{createErr: identity.ErrEmailTaken}
	svc, mock := newUserService(t, ids)

	_, err := svc.ProvisionUser(coachRequest())

	// The identity error comes back verbatim and nothing is rolled back
	// because nothing was created.
	require.ErrorIs(t, err, identity.ErrEmailTaken)
	require.Empty(t, ids.deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionUserProfileFailureRollsBack(t *testing.T) {
	authID := uuid.New()
	ids := &fakeIdentity{createID: authID}
	svc, mock := newUserService(t, ids)

	mock.ExpectQuery(regexp.QuoteMeta(provisionQuery)).
		WillReturnError(errors.New("duplicate key value violates unique constraint \"profiles_email_key\""))

	_, err := svc.ProvisionUser(coachRequest())
	require.Error(t, err)
	require.Contains(t, err.Error(), "rolled back")

	require.Len(t, ids.deleted, 1)
	require.Equal(t, authID, ids.deleted[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionUserRollbackFailure(t *testing.T) {
	authID := uuid.New()
	ids := &fakeIdentity{createID: authID, deleteErr: errors.New("identity service unreachable")}
	svc, mock := newUserService(t, ids)

	mock.ExpectQuery(regexp.QuoteMeta(provisionQuery)).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := svc.ProvisionUser(coachRequest())
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection reset by peer")

	// The rollback did not happen, so the error must not claim it did.
	require.NotContains(t, err.Error(), "rolled back")
	require.Len(t, ids.deleted, 1)
}

func TestUpdateUserNotFound(t *testing.T) {
	ids := &fakeIdentity{}
	svc, mock := newUserService(t, ids)

	mock.ExpectExec(`UPDATE "profiles"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.UpdateUser(uuid.New(), &dto.UpdateUserRequest{
		FullName: "Budi Santoso",
		Role:     "client",
	})
	require.ErrorIs(t, err, ErrUserNotFound)

	// No credentials in the request, so the identity service is untouched.
	require.Empty(t, ids.updated)
}

func TestUpdateUserSkipsIdentityWithoutCredentials(t *testing.T) {
	ids := &fakeIdentity{}
	svc, mock := newUserService(t, ids)

	mock.ExpectExec(`UPDATE "profiles"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.UpdateUser(uuid.New(), &dto.UpdateUserRequest{
		FullName: "Budi Santoso",
		Role:     "client",
	})
	require.NoError(t, err)
	require.Empty(t, ids.updated)
}

func TestUpdateUserCoachFee(t *testing.T) {
	ids := &fakeIdentity{}
	svc, mock := newUserService(t, ids)

	mock.ExpectExec(`UPDATE "profiles"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "coaches"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	fee := 175000.0
	err := svc.UpdateUser(uuid.New(), &dto.UpdateUserRequest{
		FullName: "Rina Wijaya",
		Role:     "coach",
		FixedFee: &fee,
		Email:    "rina.new@example.com",
		Password: "newsecret",
	})
	require.NoError(t, err)

	// Credentials present, so the identity service got exactly one update.
	require.Len(t, ids.updated, 1)
	require.Equal(t, "rina.new@example.com", ids.updated[0].Email)
	require.NoError(t, mock.ExpectationsWereMet())
}
