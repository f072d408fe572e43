// Package firebase stores seed documents in Cloud Firestore.
package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/flowHater/menu-seeder/pkg/record"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Store wraps a Firestore client authenticated with a service-account file
type Store struct {
	client *firestore.Client
}

// Connect builds a client from credentialsFile. An empty projectID is read from the credentials.
func Connect(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	c, err := firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("Error during firestore client's initialization: %w", err)
	}

	return &Store{client: c}, nil
}

// Set writes doc to collection/id, overwriting any existing document
func (s *Store) Set(ctx context.Context, collection, id string, doc record.Record) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, map[string]interface{}(doc)); err != nil {
		return fmt.Errorf("Error during setting %s/%s: %w", collection, id, err)
	}

	return nil
}

// Exists reports whether collection/id holds a document
func (s *Store) Exists(ctx context.Context, collection, id string) (bool, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("Error during fetching %s/%s: %w", collection, id, err)
	}

	return snap.Exists(), nil
}

// Close releases the client
func (s *Store) Close(ctx context.Context) error {
	return s.client.Close()
}
