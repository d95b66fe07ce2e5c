package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig(logger.Discard))
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func assertExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

var (
	updateUserSQL     = `UPDATE "users" SET .* WHERE id = \$\d+`
	upsertProviderSQL = `INSERT INTO "provider_profiles" .* ON CONFLICT \("user_id"\) DO UPDATE SET`
	upsertClientSQL   = `INSERT INTO "client_profiles" .* ON CONFLICT \("user_id"\) DO UPDATE SET`
)

func fullPlan() domain.ProfilePlan {
	return domain.ProfilePlan{
		User:     &domain.UserChanges{Phone: strPtr("11999990000")},
		Provider: &domain.ProviderChanges{City: strPtr("São Paulo")},
		Client:   &domain.ClientChanges{EventType: strPtr("Casamento")},
	}
}

func TestProfileRepository_CommitsAllWrites(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(updateUserSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsertProviderSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsertClientSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := NewProfileRepository(db).ApplyProfileUpdate(context.Background(), "user-1", fullPlan()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertExpectations(t, mock)
}

func TestProfileRepository_FailedUpsertRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	upsertErr := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec(updateUserSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsertProviderSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsertClientSQL).WillReturnError(upsertErr)
	mock.ExpectRollback()

	err := NewProfileRepository(db).ApplyProfileUpdate(context.Background(), "user-1", fullPlan())
	if !errors.Is(err, upsertErr) {
		t.Fatalf("expected wrapped upsert error, got %v", err)
	}
	assertExpectations(t, mock)
}

func TestProfileRepository_MissingUserRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(updateUserSQL).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := NewProfileRepository(db).ApplyProfileUpdate(context.Background(), "ghost", fullPlan())
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	assertExpectations(t, mock)
}

func TestProfileRepository_ProviderOnly(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(upsertProviderSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	plan := domain.ProfilePlan{Provider: &domain.ProviderChanges{Category: strPtr("DJ")}}
	if err := NewProfileRepository(db).ApplyProfileUpdate(context.Background(), "user-1", plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertExpectations(t, mock)
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "inserted"},
		{name: "duplicate email", execErr: &pgconn.PgError{Code: "23505"}, wantErr: domain.ErrEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectBegin()
			exec := mock.ExpectExec(`INSERT INTO "users"`)
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
				mock.ExpectRollback()
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			}

			now := time.Now().UTC()
			got, err := NewUserRepository(db).Create(context.Background(), &domain.User{
				Name:         "Ana",
				Email:        "ana@example.com",
				PasswordHash: "hash",
				Role:         domain.RoleProvider,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && (got == nil || got.ID == "" || got.Email != "ana@example.com") {
				t.Fatalf("unexpected user %+v", got)
			}
			assertExpectations(t, mock)
		})
	}
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("ghost@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	if _, err := NewUserRepository(db).FindByEmail(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	assertExpectations(t, mock)
}

func TestProviderRepository_List_FiltersAndOrder(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "provider_profiles" WHERE \(?city ILIKE \$1\)? AND \(?category ILIKE \$2\)? ORDER BY created_at DESC`).
		WithArgs(`%paulo%`, `%100\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "bio", "city", "base_price", "created_at", "updated_at"}).
			AddRow("p-1", "u-1", "DJ 100%", nil, "São Paulo", 150.0, created, created))
	mock.ExpectQuery(`SELECT .*"avatar_url" FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "avatar_url"}).
			AddRow("u-1", "Ana", "https://cdn.example.com/ana.png"))

	got, err := NewProviderRepository(db).List(context.Background(), ports.ProviderFilter{City: "paulo", Category: "100%"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one listing, got %d", len(got))
	}
	l := got[0]
	if l.ID != "p-1" || l.Category != "DJ 100%" || l.BasePrice == nil || *l.BasePrice != 150 {
		t.Fatalf("unexpected profile %+v", l.ProviderProfile)
	}
	if l.User.Name != "Ana" || l.User.AvatarURL == nil || *l.User.AvatarURL != "https://cdn.example.com/ana.png" {
		t.Fatalf("unexpected owner %+v", l.User)
	}
	assertExpectations(t, mock)
}

func TestProviderRepository_List_NoFilters(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "provider_profiles" ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category"}))

	got, err := NewProviderRepository(db).List(context.Background(), ports.ProviderFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	assertExpectations(t, mock)
}
