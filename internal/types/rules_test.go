package types

import (
	"errors"
	"testing"
)

func TestConditionsValidate(t *testing.T) {
	tests := []struct {
		name       string
		conditions Conditions
		wantErr    error
	}{
		{
			name:       "empty matches unconditionally and is valid",
			conditions: Conditions{},
			wantErr:    nil,
		},
		{
			name:       "scalar expectations",
			conditions: Conditions{"combat": Bool(true), "team_money": String("low"), "team_alive": Number(4)},
			wantErr:    nil,
		},
		{
			name:       "nested of scalars",
			conditions: Conditions{"abilities": Nested(map[string]Value{"Q": Bool(true)})},
			wantErr:    nil,
		},
		{
			name:       "list expectation rejected",
			conditions: Conditions{"player_position": List([]Value{Number(1), Number(2)})},
			wantErr:    ErrBadConditionValue,
		},
		{
			name:       "null expectation rejected",
			conditions: Conditions{"site_control": Null()},
			wantErr:    ErrBadConditionValue,
		},
		{
			name:       "nested of nested rejected",
			conditions: Conditions{"abilities": Nested(map[string]Value{"Q": Nested(map[string]Value{"deep": Bool(true)})})},
			wantErr:    ErrBadConditionValue,
		},
		{
			name:       "nested containing list rejected",
			conditions: Conditions{"abilities": Nested(map[string]Value{"Q": List(nil)})},
			wantErr:    ErrBadConditionValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conditions.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConditionsValidate_Limits(t *testing.T) {
	tooMany := make(Conditions, MaxConditionKeys+1)
	for i := 0; i <= MaxConditionKeys; i++ {
		tooMany[string(rune('a'+i%26))+string(rune('a'+i/26))] = Bool(true)
	}
	if err := tooMany.Validate(); !errors.Is(err, ErrBadConditionValue) {
		t.Errorf("Validate() error = %v, want ErrBadConditionValue", err)
	}

	sub := make(map[string]Value, MaxNestedKeys+1)
	for i := 0; i <= MaxNestedKeys; i++ {
		sub[string(rune('a'+i%26))+string(rune('a'+i/26))] = Bool(true)
	}
	nested := Conditions{"abilities": Nested(sub)}
	if err := nested.Validate(); !errors.Is(err, ErrBadConditionValue) {
		t.Errorf("Validate() error = %v, want ErrBadConditionValue", err)
	}
}

func TestRuleSuggestion(t *testing.T) {
	r := Rule{ID: "exposed_warning", Text: "You are exposed! Find cover quickly", Priority: 2}
	s := r.Suggestion()
	if s.ID != r.ID || s.Text != r.Text || s.Priority != r.Priority {
		t.Errorf("Suggestion() = %+v, want projection of %+v", s, r)
	}
}

func TestPassID(t *testing.T) {
	id := NewPassID()
	parsed, err := ParsePassID(string(id))
	if err != nil {
		t.Fatalf("ParsePassID() error = %v, want nil", err)
	}
	if parsed != id {
		t.Errorf("ParsePassID() = %v, want %v", parsed, id)
	}

	if _, err := ParsePassID("not-a-uuid"); err == nil {
		t.Error("ParsePassID(malformed) error = nil, want error")
	}

	if PassIDTime(id).IsZero() {
		t.Error("PassIDTime() = zero, want embedded UUIDv7 timestamp")
	}
	if !PassIDTime(PassID("garbage")).IsZero() {
		t.Error("PassIDTime(garbage) != zero, want zero time")
	}
}
