package seeder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/flowHater/menu-seeder/pkg/record"
)

//go:generate mockgen -destination=../mock_seeder/mock_seeder.go -package=mock_seeder github.com/flowHater/menu-seeder/pkg/seeder Store

const (
	CategoriesCollection = "categories"
	FoodItemsCollection  = "foodItems"
)

// Store describes the document store the Seeder writes into
type Store interface {
	// Set creates or overwrites the document id in collection
	Set(ctx context.Context, collection, id string, doc record.Record) error
	Exists(ctx context.Context, collection, id string) (bool, error)
}

// Phase is the position of a Seeder in its run
type Phase int

const (
	PhaseStart Phase = iota
	PhaseUploadingCategories
	PhaseUploadingFoodItems
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseUploadingCategories:
		return "uploading-categories"
	case PhaseUploadingFoodItems:
		return "uploading-food-items"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	}

	return fmt.Sprintf("phase(%d)", int(p))
}

// Summary counts the documents written by a successful run
type Summary struct {
	Categories int
	FoodItems  int
}

// Seeder writes categories then food items into a Store, one acknowledged write at a time
type Seeder struct {
	store Store
	log   *slog.Logger
	phase Phase
}

// OptionF describes a func that will be called from the New func
type OptionF func(*Seeder)

// WithStore sets the Store documents are written into
func WithStore(s Store) OptionF {
	return func(sd *Seeder) {
		sd.store = s
	}
}

// WithLogger sets the logger progress lines are written to
func WithLogger(l *slog.Logger) OptionF {
	return func(sd *Seeder) {
		sd.log = l
	}
}

// New creates a new Seeder
func New(opts ...OptionF) *Seeder {
	s := &Seeder{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

// Phase returns where the last run stopped
func (s *Seeder) Phase() Phase {
	return s.phase
}

// Seed uploads categories then foodItems. The first failure aborts the run.
func (s *Seeder) Seed(ctx context.Context, categories, foodItems []record.Record) (Summary, error) {
	sum := Summary{}
	s.phase = PhaseStart
	s.log.Info("starting data upload", "categories", len(categories), "food_items", len(foodItems))

	s.phase = PhaseUploadingCategories
	s.log.Info("uploading categories")
	n, err := s.upload(ctx, CategoriesCollection, "category", categories)
	sum.Categories = n
	if err != nil {
		s.phase = PhaseFailed
		return sum, err
	}

	s.phase = PhaseUploadingFoodItems
	s.log.Info("uploading food items")
	n, err = s.upload(ctx, FoodItemsCollection, "food item", foodItems)
	sum.FoodItems = n
	if err != nil {
		s.phase = PhaseFailed
		return sum, err
	}

	s.phase = PhaseDone
	s.log.Info("data upload completed successfully", "categories", sum.Categories, "food_items", sum.FoodItems)

	return sum, nil
}

func (s *Seeder) upload(ctx context.Context, collection, kind string, rs []record.Record) (int, error) {
	for i, r := range rs {
		id, err := r.ID()
		if err == nil {
			err = ctx.Err()
		}
		if err == nil {
			err = s.store.Set(ctx, collection, id, r)
		}
		if err != nil {
			return i, &WriteError{Phase: s.phase, Collection: collection, ID: id, Index: i, Err: err}
		}

		s.log.Info("uploaded "+kind, "collection", collection, "id", id, "name", r.Name())
	}

	return len(rs), nil
}

// Verify checks that every record has a document in its collection
func (s *Seeder) Verify(ctx context.Context, categories, foodItems []record.Record) error {
	missing := []string{}

	check := func(collection string, rs []record.Record) error {
		for _, r := range rs {
			id, err := r.ID()
			if err != nil {
				return fmt.Errorf("Error during verifying %s: %w", collection, err)
			}

			ok, err := s.store.Exists(ctx, collection, id)
			if err != nil {
				return fmt.Errorf("Error during verifying %s.%s: %w", collection, id, err)
			}
			if !ok {
				missing = append(missing, collection+"."+id)
			}
		}
		return nil
	}

	if err := check(CategoriesCollection, categories); err != nil {
		return err
	}
	if err := check(FoodItemsCollection, foodItems); err != nil {
		return err
	}

	if len(missing) > 0 {
		return fmt.Errorf("Error during verifying: %d documents missing after upload: %s", len(missing), strings.Join(missing, ", "))
	}

	s.log.Info("verified upload", "documents", len(categories)+len(foodItems))

	return nil
}
