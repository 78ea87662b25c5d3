package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"envy/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMemoryStateRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStateRepository()

	if _, err := repo.Load(ctx); !errors.Is(err, store.ErrNoState) {
		t.Fatalf("expected ErrNoState, got %v", err)
	}
	payload := []byte(`{"properties":[]}`)
	if err := repo.Save(ctx, payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload[0] = 'x'
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"properties":[]}` {
		t.Fatalf("stored payload aliased caller buffer: %s", got)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := repo.Load(ctx); !errors.Is(err, store.ErrNoState) {
		t.Fatalf("expected ErrNoState after clear, got %v", err)
	}
}

func TestFileStateRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "state")
	repo, err := NewFileStateRepository(dir, "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if repo.Path() != filepath.Join(dir, "envy-estate-db.json") {
		t.Fatalf("unexpected path %s", repo.Path())
	}
	if _, err := repo.Load(ctx); !errors.Is(err, store.ErrNoState) {
		t.Fatalf("expected ErrNoState, got %v", err)
	}

	if err := repo.Save(ctx, []byte(`{"heroMode":"image"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, []byte(`{"heroMode":"video"}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"heroMode":"video"}` {
		t.Fatalf("unexpected payload %s", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clearing twice should not fail: %v", err)
	}
	if _, err := repo.Load(ctx); !errors.Is(err, store.ErrNoState) {
		t.Fatalf("expected ErrNoState after clear, got %v", err)
	}
}

func TestFileStateRepositoryRequiresDir(t *testing.T) {
	if _, err := NewFileStateRepository("", "k"); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestFileStateRepositoryBacksStore(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileStateRepository(t.TempDir(), "envy-test")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s, err := store.New(ctx, repo)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	s.DeleteProperty("clifton-001")

	reloaded, err := store.New(ctx, repo)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := reloaded.Property("clifton-001"); ok {
		t.Fatalf("deleted property came back after reload")
	}
	if len(reloaded.Properties()) != 5 {
		t.Fatalf("expected 5 properties, got %d", len(reloaded.Properties()))
	}
}

func TestMySQLStateRepositoryLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := NewMySQLStateRepository(db, "")
	mock.ExpectQuery("SELECT payload FROM app_state WHERE storage_key = \\?").
		WithArgs("envy-estate-db").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`{"heroMode":"image"}`))
	mock.ExpectQuery("SELECT payload FROM app_state").
		WithArgs("envy-estate-db").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"heroMode":"image"}` {
		t.Fatalf("unexpected payload %s", got)
	}
	if _, err := repo.Load(context.Background()); !errors.Is(err, store.ErrNoState) {
		t.Fatalf("expected ErrNoState for missing row, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLStateRepositorySaveAndClear(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := NewMySQLStateRepository(db, "k1")
	mock.ExpectExec("INSERT INTO app_state .* ON DUPLICATE KEY UPDATE").
		WithArgs("k1", `{"a":1}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM app_state WHERE storage_key = \\?").
		WithArgs("k1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Save(context.Background(), []byte(`{"a":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLStateRepositorySaveError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO app_state").WillReturnError(errors.New("disk full"))
	repo := NewMySQLStateRepository(db, "k1")
	if err := repo.Save(context.Background(), []byte(`{}`)); err == nil {
		t.Fatalf("expected save error")
	}
}

func TestMySQLStateRepositoryEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// fresh database: table is created, column already there
	mock.ExpectQuery("information_schema\\.tables").WithArgs("app_state").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS app_state").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("app_state", "updated_at").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("updated_at"))

	// older table without updated_at
	mock.ExpectQuery("information_schema\\.tables").WithArgs("app_state").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("app_state"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("app_state", "updated_at").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectExec("ALTER TABLE app_state ADD COLUMN updated_at").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMySQLStateRepository(db, "")
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLStateRepositoryWithoutHandle(t *testing.T) {
	repo := MySQLStateRepository{}
	if _, err := repo.Load(context.Background()); err == nil || errors.Is(err, store.ErrNoState) {
		t.Fatalf("expected handle error, got %v", err)
	}
}

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return gdb, mock
}

func TestGormStateRepositoryLoad(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := NewGormStateRepository(gdb, "")

	mock.ExpectQuery(`SELECT \* FROM "app_states" WHERE storage_key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"storage_key", "payload", "updated_at"}).
			AddRow("envy-estate-db", `{"heroMode":"image"}`, time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "app_states"`).
		WillReturnRows(sqlmock.NewRows([]string{"storage_key", "payload", "updated_at"}))

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"heroMode":"image"}` {
		t.Fatalf("unexpected payload %s", got)
	}
	if _, err := repo.Load(context.Background()); !errors.Is(err, store.ErrNoState) {
		t.Fatalf("expected ErrNoState, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormStateRepositorySaveAndClear(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := NewGormStateRepository(gdb, "k1")

	mock.ExpectExec(`INSERT INTO "app_states" .* ON CONFLICT \("storage_key"\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "app_states" WHERE storage_key = \$1`).
		WithArgs("k1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Save(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRedisStateRepositoryUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	repo := NewRedisStateRepository(client, "")
	if repo.Key != "envy-estate-db" {
		t.Fatalf("unexpected default key %q", repo.Key)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := repo.Load(ctx)
	if err == nil || errors.Is(err, store.ErrNoState) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if err := repo.Save(ctx, []byte(`{}`)); err == nil {
		t.Fatalf("expected save to fail without a server")
	}
}

func TestRedisStateRepositoryWithoutClient(t *testing.T) {
	repo := RedisStateRepository{}
	if err := repo.Save(context.Background(), nil); err == nil {
		t.Fatalf("expected error without client")
	}
}
