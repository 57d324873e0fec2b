package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"layout-planner/internal/common/apperrors"
	"layout-planner/internal/planner/models"
	"layout-planner/internal/planner/repository/migrations"
)

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет встроенные миграции и заполняет каталог по умолчанию.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return r.ensureDefaults(ctx)
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) List(ctx context.Context) ([]models.Material, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, product_name, category, image, created_at
        FROM materials
        ORDER BY category, name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Material
	for rows.Next() {
		var m models.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.ProductName, &m.Category, &m.Image, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Material, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, product_name, category, image, created_at
        FROM materials
        WHERE id = ?
    `, id)

	var m models.Material
	if err := row.Scan(&m.ID, &m.Name, &m.ProductName, &m.Category, &m.Image, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.CodeMaterialNotFound, "material %q not found", id)
		}
		return nil, err
	}
	return &m, nil
}

// Save вставляет или заменяет запись каталога.
func (r *Repository) Save(ctx context.Context, m models.Material) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO materials (id, name, product_name, category, image)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            product_name = excluded.product_name,
            category = excluded.category,
            image = excluded.image
    `, m.ID, m.Name, m.ProductName, m.Category, m.Image)
	if err != nil {
		return fmt.Errorf("save material %s: %w", m.ID, err)
	}
	return nil
}

// ============================================================
// Migrations & Seeding
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	names, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	for _, name := range names {
		data, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// DefaultMaterials заполняют пустой каталог.
var DefaultMaterials = []models.Material{
	{ID: "granite-black", Name: "Black Granite", ProductName: "Absolute Black", Category: "stone", Image: "granite-black.png"},
	{ID: "marble-white", Name: "White Marble", ProductName: "Carrara Bianco", Category: "stone", Image: "marble-white.jpg"},
	{ID: "quartz-grey", Name: "Grey Quartz", ProductName: "Concrete Grey", Category: "quartz", Image: "quartz-grey.webp"},
	{ID: "oak", Name: "Oak", ProductName: "Solid Oak Worktop", Category: "wood", Image: "oak.jpg"},
}

func (r *Repository) ensureDefaults(ctx context.Context) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM materials`).Scan(&n); err != nil {
		return fmt.Errorf("count materials: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, m := range DefaultMaterials {
		if err := r.Save(ctx, m); err != nil {
			return fmt.Errorf("seed materials: %w", err)
		}
	}
	return nil
}

// OpenSQLite открывает базу sqlite по пути dbPath, создавая директорию.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
