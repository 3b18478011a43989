package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRatingUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Rating
	}{
		{"number", `4.5`, NewRating(4.5)},
		{"integer", `3`, NewRating(3)},
		{"numeric string", `"5"`, NewRating(5)},
		{"padded numeric string", `" 2.0 "`, NewRating(2)},
		{"null degrades", `null`, Rating{}},
		{"word degrades", `"five stars"`, Rating{}},
		{"object degrades", `{"stars": 4}`, Rating{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Rating
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRatingMarshal(t *testing.T) {
	b, err := json.Marshal(NewRating(4))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "4" {
		t.Errorf("valid rating = %s, want 4", b)
	}

	b, err = json.Marshal(Rating{})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Errorf("invalid rating = %s, want null", b)
	}
}

func TestRatingOr(t *testing.T) {
	if got := NewRating(5).Or(NeutralRating); got != 5 {
		t.Errorf("valid Or = %v, want 5", got)
	}
	if got := (Rating{}).Or(NeutralRating); got != NeutralRating {
		t.Errorf("invalid Or = %v, want %v", got, NeutralRating)
	}
}

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantTime  time.Time
	}{
		{"rfc3339", `"2024-03-15T10:30:00Z"`, true, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"date only", `"2024-03-15"`, true, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"datetime", `"2024-03-15 10:30:00"`, true, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"long form", `"March 15, 2024"`, true, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"null degrades", `null`, false, time.Time{}},
		{"garbage degrades", `"last tuesday"`, false, time.Time{}},
		{"number degrades", `1710498600`, false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Date
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
			}
			if got.Valid != tt.wantValid {
				t.Fatalf("Unmarshal(%s) valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if got.Valid && !got.Time.Equal(tt.wantTime) {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, got.Time, tt.wantTime)
			}
		})
	}
}

func TestDateMarshal(t *testing.T) {
	d := NewDate(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2024-03-15T10:30:00Z"` {
		t.Errorf("valid date = %s, want RFC 3339", b)
	}

	b, err = json.Marshal(Date{})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Errorf("invalid date = %s, want null", b)
	}
}

func TestReviewRecordUnmarshal_DegradedFields(t *testing.T) {
	// A record with a malformed rating and date still decodes; the bad
	// fields carry as invalid.
	input := `{
		"product_id": "p1",
		"product_name": "Widget",
		"rating": "n/a",
		"content": "fine",
		"review_date": "sometime in spring"
	}`

	var rec ReviewRecord
	if err := json.Unmarshal([]byte(input), &rec); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if rec.ProductID != "p1" || rec.Content != "fine" {
		t.Errorf("record = %+v, want intact well-formed fields", rec)
	}
	if rec.Rating.Valid {
		t.Error("malformed rating decoded as valid")
	}
	if rec.ReviewDate.Valid {
		t.Error("malformed date decoded as valid")
	}
}

func TestMetricJSON(t *testing.T) {
	b, err := json.Marshal(Num(3.25))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "3.25" {
		t.Errorf("applicable metric = %s, want 3.25", b)
	}

	b, err = json.Marshal(NA())
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"N/A"` {
		t.Errorf("not-applicable metric = %s, want \"N/A\"", b)
	}

	var m Metric
	if err := json.Unmarshal([]byte(`3.25`), &m); err != nil {
		t.Fatal(err)
	}
	if m != Num(3.25) {
		t.Errorf("number read back as %+v", m)
	}
	if err := json.Unmarshal([]byte(`"N/A"`), &m); err != nil {
		t.Fatal(err)
	}
	if m.Valid {
		t.Error("sentinel read back as applicable")
	}
}
