package record

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		field   string
		want    []Record
		wantErr bool
	}{
		{
			name:  "nominal case",
			input: `{"categories":[{"id":"c1","name":"Drinks"}]}`,
			field: "categories",
			want:  []Record{{"id": "c1", "name": "Drinks"}},
		}, {
			name:  "empty array",
			input: `{"categories":[]}`,
			field: "categories",
			want:  []Record{},
		}, {
			name:  "numbers keep integers apart from floats",
			input: `{"foodItems":[{"id":"f1","name":"Burger","price":8.5,"stock":12,"nutrition":{"kcal":540},"sizes":[1,2.5]}]}`,
			field: "foodItems",
			want: []Record{{
				"id":        "f1",
				"name":      "Burger",
				"price":     8.5,
				"stock":     int64(12),
				"nutrition": map[string]interface{}{"kcal": int64(540)},
				"sizes":     []interface{}{int64(1), 2.5},
			}},
		}, {
			name:  "other fields are ignored",
			input: `{"version":2,"foodItems":[{"id":"f1"}]}`,
			field: "foodItems",
			want:  []Record{{"id": "f1"}},
		}, {
			name:    "missing field",
			input:   `{"categories":[]}`,
			field:   "foodItems",
			wantErr: true,
		}, {
			name:    "field is not an array",
			input:   `{"categories":{"id":"c1"}}`,
			field:   "categories",
			wantErr: true,
		}, {
			name:    "field is null",
			input:   `{"categories":null}`,
			field:   "categories",
			wantErr: true,
		}, {
			name:    "second document after the envelope",
			input:   `{"categories":[]} {"categories":[{"id":"x"}]}`,
			field:   "categories",
			wantErr: true,
		}, {
			name:  "trailing whitespace",
			input: "{\"categories\":[{\"id\":\"c1\"}]}\n\n",
			field: "categories",
			want:  []Record{{"id": "c1"}},
		}, {
			name:    "element is not an object",
			input:   `{"categories":[{"id":"c1"},"c2"]}`,
			field:   "categories",
			wantErr: true,
		}, {
			name:    "null element",
			input:   `{"categories":[null]}`,
			field:   "categories",
			wantErr: true,
		}, {
			name:    "not json",
			input:   `categories: []`,
			field:   "categories",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(strings.NewReader(tt.input), tt.field)
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Load() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRecord_ID(t *testing.T) {
	tests := []struct {
		name    string
		r       Record
		want    string
		wantErr error
	}{
		{name: "string id", r: Record{"id": "c1"}, want: "c1"},
		{name: "no id", r: Record{"name": "Drinks"}, wantErr: ErrMissingID},
		{name: "empty id", r: Record{"id": ""}, wantErr: ErrMissingID},
		{name: "numeric id", r: Record{"id": int64(3)}, wantErr: ErrMissingID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.r.ID()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Record.ID() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Record.ID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecord_Name(t *testing.T) {
	if got := (Record{"id": "c1", "name": "Drinks"}).Name(); got != "Drinks" {
		t.Errorf("Name() = %q, want Drinks", got)
	}
	if got := (Record{"id": "c1"}).Name(); got != "c1" {
		t.Errorf("Name() = %q, want the id", got)
	}
}

func TestRecord_Clone(t *testing.T) {
	r := Record{"id": "c1", "tags": []interface{}{"a"}, "meta": map[string]interface{}{"k": "v"}}
	c := r.Clone()

	if !reflect.DeepEqual(r, c) {
		t.Fatalf("Clone() = %v, want %v", c, r)
	}

	c["tags"].([]interface{})[0] = "b"
	c["meta"].(map[string]interface{})["k"] = "w"

	if r["tags"].([]interface{})[0] != "a" || r["meta"].(map[string]interface{})["k"] != "v" {
		t.Errorf("mutating the clone changed the original: %v", r)
	}
}
