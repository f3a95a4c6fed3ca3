package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/source"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML seed format:
//
//	records:
//	  vip-asian:
//	    - name: Example
//	      slug: example
//	      category: drama
//	      postDate: 2024-01-02T00:00:00Z
type Fixture struct {
	Records map[domain.ContentType][]FixtureRecord `yaml:"records"`
}

type FixtureRecord struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Slug      string     `yaml:"slug"`
	Category  string     `yaml:"category"`
	PostDate  *time.Time `yaml:"postDate"`
	CreatedAt time.Time  `yaml:"createdAt"`
	UpdatedAt time.Time  `yaml:"updatedAt"`
}

func LoadFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &f, nil
}

// Validate checks every content type against the registry and that names are set.
func (f *Fixture) Validate(reg *source.Registry) error {
	for ct, recs := range f.Records {
		if _, ok := reg.Get(ct); !ok {
			return fmt.Errorf("fixture references unknown content type %q", ct)
		}
		for i, r := range recs {
			if r.Name == "" {
				return fmt.Errorf("fixture %s[%d]: name is required", ct, i)
			}
		}
	}
	return nil
}

// ToRecords converts fixture rows, assigning sequential ids where missing.
func (f *Fixture) ToRecords(ct domain.ContentType, now time.Time) []domain.ContentRecord {
	recs := f.Records[ct]
	out := make([]domain.ContentRecord, 0, len(recs))
	for i, r := range recs {
		id := r.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		out = append(out, domain.ContentRecord{
			ID:        id,
			Name:      r.Name,
			Slug:      r.Slug,
			Category:  r.Category,
			PostDate:  r.PostDate,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	Stamp(out, now)
	return out
}

// SeedFixture creates every registry table and writes the fixture rows into them.
func SeedFixture(ctx context.Context, seeder Seeder, reg *source.Registry, f *Fixture) error {
	if err := f.Validate(reg); err != nil {
		return err
	}

	if err := seeder.EnsureTables(ctx, reg.Tables()); err != nil {
		return fmt.Errorf("failed to ensure tables: %w", err)
	}

	now := time.Now()
	for _, s := range reg.All() {
		recs := f.ToRecords(s.Key, now)
		if len(recs) == 0 {
			continue
		}
		if err := seeder.Seed(ctx, s.Table, recs); err != nil {
			return fmt.Errorf("failed to seed %s: %w", s.Key, err)
		}
		slog.Info("Seeded source", "source", s.Key, "table", s.Table, "rows", len(recs))
	}
	return nil
}
