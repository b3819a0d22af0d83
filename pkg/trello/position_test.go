package trello

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    any
		wantErr bool
	}{
		{name: "top", input: "top", want: "top"},
		{name: "bottom", input: "bottom", want: "bottom"},
		{name: "padded top", input: " top ", want: "top"},
		{name: "float", input: 16384.5, want: 16384.5},
		{name: "int", input: 3, want: 3.0},
		{name: "int64", input: int64(7), want: 7.0},
		{name: "numeric string", input: "42", want: 42.0},
		{name: "json number", input: json.Number("1.5"), want: 1.5},
		{name: "position value", input: PositionTop, want: "top"},
		{name: "zero", input: 0, wantErr: true},
		{name: "zero float", input: 0.0, wantErr: true},
		{name: "negative", input: -1, wantErr: true},
		{name: "negative string", input: "-3", wantErr: true},
		{name: "unknown word", input: "middle", wantErr: true},
		{name: "misspelled bottom", input: "bototm", wantErr: true},
		{name: "NaN", input: math.NaN(), wantErr: true},
		{name: "infinity", input: math.Inf(1), wantErr: true},
		{name: "bool", input: true, wantErr: true},
		{name: "zero position", input: Position{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePosition(tt.input)
			if tt.wantErr {
				if !IsArgumentError(err) {
					t.Fatalf("expected argument error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Value() != tt.want {
				t.Errorf("expected %v (%T), got %v (%T)", tt.want, tt.want, got.Value(), got.Value())
			}
		})
	}
}

func TestPositionAt(t *testing.T) {
	p, err := PositionAt(2.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsNumeric() || p.String() != "2.5" {
		t.Errorf("unexpected position %v", p)
	}
	if PositionTop.IsNumeric() || PositionBottom.String() != "bottom" {
		t.Error("unexpected symbolic positions")
	}

	_, err = PositionAt(0)
	if err == nil {
		t.Fatal("expected error for zero")
	}
	want := "Invalid pos value 0. Valid Values: A position. top, bottom, or a positive number"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestNormalizePosition(t *testing.T) {
	tests := []struct {
		name    string
		pos     any
		set     bool
		want    any
		wantErr bool
	}{
		{name: "unset", want: "bottom"},
		{name: "nil", pos: nil, set: true, want: "bottom"},
		{name: "blank", pos: "  ", set: true, want: "bottom"},
		{name: "top", pos: "top", set: true, want: "top"},
		{name: "numeric string", pos: "10", set: true, want: 10.0},
		{name: "zero", pos: 0, set: true, wantErr: true},
		{name: "negative", pos: -5.0, set: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord()
			if tt.set {
				r.Set("pos", tt.pos)
			}
			err := normalizePosition(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Get("pos") != tt.want {
				t.Errorf("expected pos %v, got %v", tt.want, r.Get("pos"))
			}
		})
	}
}
