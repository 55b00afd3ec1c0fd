package dto

import (
	"testing"
	"time"
)

func TestParsePatchBodyArray(t *testing.T) {
	body := []byte(`[{"propName":"name","value":"Jane"},{"propName":"postal","value":9700}]`)

	ops, err := ParsePatchBody(body)
	if err != nil {
		t.Fatalf("ParsePatchBody returned error: %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(ops))
	}
	if ops[0].PropName != "name" || ops[0].Value != "Jane" {
		t.Errorf("unexpected first op %+v", ops[0])
	}
	if ops[1].PropName != "postal" {
		t.Errorf("unexpected second op %+v", ops[1])
	}
}

func TestParsePatchBodyObject(t *testing.T) {
	body := []byte(`{"name":"Jane","city":"Assen"}`)

	ops, err := ParsePatchBody(body)
	if err != nil {
		t.Fatalf("ParsePatchBody returned error: %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(ops))
	}

	byName := map[string]any{}
	for _, op := range ops {
		byName[op.PropName] = op.Value
	}
	if byName["name"] != "Jane" || byName["city"] != "Assen" {
		t.Errorf("unexpected ops %v", byName)
	}
}

func TestParsePatchBodyInvalid(t *testing.T) {
	for _, body := range []string{"", "not json", `"just a string"`, "42"} {
		if _, err := ParsePatchBody([]byte(body)); err == nil {
			t.Errorf("ParsePatchBody(%q) should fail", body)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"plain date", "1950-03-14", time.Date(1950, 3, 14, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "1950-03-14T10:30:00Z", time.Date(1950, 3, 14, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value)
			if err != nil {
				t.Fatalf("ParseDate returned error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%s) = %s, expected %s", tt.value, got, tt.want)
			}
		})
	}

	if _, err := ParseDate("14/03/1950"); err == nil {
		t.Error("unsupported date layout should fail")
	}
}
