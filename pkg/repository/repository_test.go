package repository

import (
	"reflect"
	"testing"

	"github.com/flowHater/menu-seeder/pkg/record"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDocument(t *testing.T) {
	tests := []struct {
		name string
		id   string
		doc  record.Record
		want primitive.M
	}{
		{
			name: "nominal case",
			id:   "c1",
			doc:  record.Record{"id": "c1", "name": "Drinks"},
			want: primitive.M{"_id": "c1", "id": "c1", "name": "Drinks"},
		}, {
			name: "record _id is replaced by the identifier",
			id:   "f1",
			doc:  record.Record{"id": "f1", "_id": "stale", "price": 8.5},
			want: primitive.M{"_id": "f1", "id": "f1", "price": 8.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.doc.Clone()
			got := Document(tt.id, tt.doc)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Document() = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(tt.doc, before) {
				t.Errorf("Document() mutated its input: %v", tt.doc)
			}
		})
	}
}
