package trello

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecordOrder(t *testing.T) {
	r := NewRecord()
	r.Set("name", "Demo")
	r.Set("id", "b1")
	r.Set("closed", false)
	r.Set("name", "Renamed")

	want := []string{"name", "id", "closed"}
	if got := r.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
	if r.GetString("name") != "Renamed" {
		t.Errorf("expected overwritten value, got %q", r.GetString("name"))
	}

	r.Remove("id")
	r.Remove("missing")
	if got := r.Keys(); !reflect.DeepEqual(got, []string{"name", "closed"}) {
		t.Errorf("unexpected keys after remove: %v", got)
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 keys, got %d", r.Len())
	}
}

func TestRecordHas(t *testing.T) {
	r := RecordOf("desc", nil, "name", "x", "closed", false)

	if r.Has("desc") {
		t.Error("expected nil value to count as absent")
	}
	if _, ok := r.Lookup("desc"); !ok {
		t.Error("expected desc key to be present")
	}
	if !r.Has("closed") {
		t.Error("expected false value to count as present")
	}
	if r.Has("missing") {
		t.Error("expected missing key to be absent")
	}
}

func TestNilRecordReads(t *testing.T) {
	var r *Record

	if r.Len() != 0 || r.Keys() != nil || r.Get("x") != nil || r.Has("x") {
		t.Error("expected nil record to read as empty")
	}
	if len(r.ToMap()) != 0 {
		t.Error("expected empty map from nil record")
	}
}

func TestRecordGetString(t *testing.T) {
	r := RecordOf("s", "text", "f", 16384.0, "frac", 0.5, "b", true, "n", nil)

	tests := map[string]string{
		"s":       "text",
		"f":       "16384",
		"frac":    "0.5",
		"b":       "true",
		"n":       "",
		"missing": "",
	}
	for key, want := range tests {
		if got := r.GetString(key); got != want {
			t.Errorf("GetString(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestRecordOfPanics(t *testing.T) {
	for name, args := range map[string][]any{
		"odd":        {"a"},
		"non-string": {1, "a"},
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			RecordOf(args...)
		})
	}
}

func TestRecordJSON(t *testing.T) {
	input := `{"zeta":1,"alpha":{"b":true,"a":null},"list":[{"id":"x"},"y",2.5]}`

	var r Record
	if err := json.Unmarshal([]byte(input), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := r.Keys(); !reflect.DeepEqual(got, []string{"zeta", "alpha", "list"}) {
		t.Errorf("expected document order, got %v", got)
	}
	nested, ok := r.Get("alpha").(*Record)
	if !ok {
		t.Fatalf("expected nested *Record, got %T", r.Get("alpha"))
	}
	if got := nested.Keys(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("expected nested order, got %v", got)
	}
	list, ok := r.Get("list").([]any)
	if !ok || len(list) != 3 {
		t.Fatalf("expected 3 item list, got %v", r.Get("list"))
	}
	if item, ok := list[0].(*Record); !ok || item.GetString("id") != "x" {
		t.Errorf("expected record item, got %v", list[0])
	}

	out, err := json.Marshal(&r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != input {
		t.Errorf("expected %s, got %s", input, out)
	}
}

func TestRecordUnmarshalRejectsNonObject(t *testing.T) {
	for _, input := range []string{`[1,2]`, `"x"`, `3`, `{`} {
		var r Record
		if err := json.Unmarshal([]byte(input), &r); err == nil {
			t.Errorf("expected error for %s", input)
		}
	}
}

func TestRecordClone(t *testing.T) {
	orig := RecordOf("prefs", RecordOf("color", "blue"), "labels", []any{"red"})
	dup := orig.Clone()

	dup.Get("prefs").(*Record).Set("color", "green")
	dup.Get("labels").([]any)[0] = "green"
	dup.Set("name", "new")

	if orig.Get("prefs").(*Record).GetString("color") != "blue" {
		t.Error("expected nested record to be copied")
	}
	if orig.Get("labels").([]any)[0] != "red" {
		t.Error("expected list to be copied")
	}
	if orig.Has("name") {
		t.Error("expected new key only on the clone")
	}
}

func TestRecordDecode(t *testing.T) {
	var r Record
	input := `{"id":"c1","name":"Task","closed":false,"pos":65535,"idLabels":["l1","l2"],"badges":{"votes":3}}`
	if err := json.Unmarshal([]byte(input), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var card struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Closed   bool     `json:"closed"`
		Pos      float64  `json:"pos"`
		IDLabels []string `json:"idLabels"`
		Badges   struct {
			Votes int `json:"votes"`
		} `json:"badges"`
	}
	if err := r.Decode(&card); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if card.ID != "c1" || card.Name != "Task" || card.Closed {
		t.Errorf("unexpected scalar fields: %+v", card)
	}
	if card.Pos != 65535 {
		t.Errorf("expected pos 65535, got %v", card.Pos)
	}
	if !reflect.DeepEqual(card.IDLabels, []string{"l1", "l2"}) {
		t.Errorf("unexpected labels %v", card.IDLabels)
	}
	if card.Badges.Votes != 3 {
		t.Errorf("expected 3 votes, got %d", card.Badges.Votes)
	}
}
