package grammar

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestUnmarshalPreservesOrder(t *testing.T) {
	// Key order deliberately non-alphabetical to catch map-based decoding.
	data := []byte(`{"q2": ["b"], "q0": ["a", "aq1"], "q1": ["&"]}`)

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := []Production{
		{State: "q2", RHS: []string{"b"}},
		{State: "q0", RHS: []string{"a", "aq1"}},
		{State: "q1", RHS: []string{"&"}},
	}
	if !reflect.DeepEqual(res.Productions, want) {
		t.Errorf("Productions = %+v, want %+v", res.Productions, want)
	}
}

func TestUnmarshalRejectsNonObject(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"array", `["q0"]`},
		{"string", `"q0"`},
		{"rhs not a list", `{"q0": "a"}`},
		{"truncated", `{"q0": ["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res Result
			if err := json.Unmarshal([]byte(tt.data), &res); err == nil {
				t.Errorf("Unmarshal(%s) = nil error, want failure", tt.data)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	var res Result
	res.Add("q0", "a", "aq1")
	res.Add("q1", "b")
	res.Add("empty")

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back Result
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(back.Productions) != 3 {
		t.Fatalf("productions = %d, want 3", len(back.Productions))
	}
	for i, p := range res.Productions {
		if back.Productions[i].State != p.State {
			t.Errorf("production %d state = %q, want %q", i, back.Productions[i].State, p.State)
		}
	}
	// The empty production survives as an empty list, not null.
	if got := len(back.Productions[2].RHS); got != 0 {
		t.Errorf("empty production RHS has %d entries, want 0", got)
	}
}

func TestAddExtendsExistingState(t *testing.T) {
	var res Result
	res.Add("q0", "a")
	res.Add("q1", "b")
	res.Add("q0", "ab")

	if len(res.Productions) != 2 {
		t.Fatalf("productions = %d, want 2", len(res.Productions))
	}
	if want := []string{"a", "ab"}; !reflect.DeepEqual(res.Productions[0].RHS, want) {
		t.Errorf("q0 RHS = %v, want %v", res.Productions[0].RHS, want)
	}
}

func TestRules(t *testing.T) {
	tests := []struct {
		name  string
		build func() Result
		want  []Rule
	}{
		{
			name: "flattening preserves both orders",
			build: func() Result {
				var r Result
				r.Add("q0", "a", "aq1")
				r.Add("q1", "b")
				return r
			},
			want: []Rule{
				{LHS: "q0", RHS: "a"},
				{LHS: "q0", RHS: "aq1"},
				{LHS: "q1", RHS: "b"},
			},
		},
		{
			name: "state with no right-hand sides renders nothing",
			build: func() Result {
				var r Result
				r.Add("q0", "a")
				r.Add("dead")
				r.Add("q1", "b")
				return r
			},
			want: []Rule{
				{LHS: "q0", RHS: "a"},
				{LHS: "q1", RHS: "b"},
			},
		},
		{
			name:  "empty grammar",
			build: func() Result { return Result{} },
			want:  []Rule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rules(tt.build())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Rules() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderText(t *testing.T) {
	var res Result
	res.Add("q0", "a", "aq1")
	res.Add("q1", "b")

	want := "q0 -> a\nq0 -> aq1\nq1 -> b\n"
	if got := RenderText(res); got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}

	if got := RenderText(Result{}); got != "" {
		t.Errorf("RenderText(empty) = %q, want empty string", got)
	}
}

func TestRuleString(t *testing.T) {
	r := Rule{LHS: "q0", RHS: "aq1"}
	if got := r.String(); got != "q0 -> aq1" {
		t.Errorf("String() = %q, want %q", got, "q0 -> aq1")
	}
}

func TestRuleCountAndEmpty(t *testing.T) {
	var res Result
	if !res.Empty() {
		t.Error("zero Result should be empty")
	}

	res.Add("q0", "a", "b")
	res.Add("q1", "c")

	if res.Empty() {
		t.Error("populated Result should not be empty")
	}
	if got := res.RuleCount(); got != 3 {
		t.Errorf("RuleCount() = %d, want 3", got)
	}
}
