package repository

import (
	"context"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"layout-planner/internal/common/apperrors"
	"layout-planner/internal/planner/models"
)

func openRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "planner.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return repo
}

func TestInitSeedsDefaults(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != len(DefaultMaterials) {
		t.Fatalf("expected %d materials, got %d", len(DefaultMaterials), len(list))
	}

	// a second Init keeps the catalog as is
	if err := repo.Init(ctx); err != nil {
		t.Fatal(err)
	}
	list, _ = repo.List(ctx)
	if len(list) != len(DefaultMaterials) {
		t.Fatalf("re-init duplicated the seed: %d materials", len(list))
	}
	if err := repo.Ping(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestGetByID(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	m, err := repo.GetByID(ctx, "oak")
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "Oak" || m.Image != "oak.jpg" || m.CreatedAt == "" {
		t.Fatalf("unexpected material %+v", m)
	}

	_, err = repo.GetByID(ctx, "unobtainium")
	if apperrors.CodeOf(err) != apperrors.CodeMaterialNotFound {
		t.Fatalf("expected material-not-found, got %v", err)
	}
}

func TestSaveUpdatesExisting(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, models.Material{ID: "oak", Name: "Smoked Oak", Category: "wood", Image: "oak-smoked.jpg"}); err != nil {
		t.Fatal(err)
	}
	m, err := repo.GetByID(ctx, "oak")
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "Smoked Oak" || m.Image != "oak-smoked.jpg" {
		t.Fatalf("unexpected material %+v", m)
	}
}
