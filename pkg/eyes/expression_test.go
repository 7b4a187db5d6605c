package eyes

import "testing"

func TestExpressionString(t *testing.T) {
	tests := []struct {
		expr Expression
		want string
	}{
		{Idle, "idle"},
		{Happy, "happy"},
		{Sad, "sad"},
		{Angry, "angry"},
		{Surprised, "surprised"},
		{Blink, "blink"},
		{LookLeft, "look_left"},
		{LookRight, "look_right"},
		{Confused, "confused"},
		{Bored, "bored"},
		{Scared, "scared"},
		{Sleepy, "sleepy"},
		{Asleep, "asleep"},
		{Wakeup, "wakeup"},
		{Expression(14), "unknown"},
		{Expression(255), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.expr.String(); got != tt.want {
			t.Errorf("Expression(%d).String() = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

func TestExpressionCodes(t *testing.T) {
	// The wire codes are a compatibility contract; pin them all.
	codes := map[Expression]int{
		Idle: 0, Happy: 1, Sad: 2, Angry: 3, Surprised: 4, Blink: 5,
		LookLeft: 6, LookRight: 7, Confused: 8, Bored: 9, Scared: 10,
		Sleepy: 11, Asleep: 12, Wakeup: 13,
	}
	if len(codes) != ExpressionCount {
		t.Fatalf("expected %d codes, table has %d", ExpressionCount, len(codes))
	}
	for expr, code := range codes {
		if int(expr) != code {
			t.Errorf("%s has code %d, want %d", expr, int(expr), code)
		}
	}
}

func TestFromCode(t *testing.T) {
	tests := []struct {
		code   int
		want   Expression
		wantOK bool
	}{
		{0, Idle, true},
		{5, Blink, true},
		{13, Wakeup, true},
		{-1, Idle, false},
		{14, Idle, false},
		{999, Idle, false},
	}

	for _, tt := range tests {
		got, ok := FromCode(tt.code)
		if ok != tt.wantOK {
			t.Errorf("FromCode(%d) ok = %v, want %v", tt.code, ok, tt.wantOK)
		}
		if got != tt.want {
			t.Errorf("FromCode(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	for e := Expression(0); e < ExpressionCount; e++ {
		if !e.Valid() {
			t.Errorf("Expression(%d) should be valid", e)
		}
	}
	if Expression(ExpressionCount).Valid() {
		t.Error("Expression(ExpressionCount) should not be valid")
	}
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		in     string
		want   Expression
		wantOK bool
	}{
		{"happy", Happy, true},
		{"HAPPY", Happy, true},
		{" look_left ", LookLeft, true},
		{"asleep", Asleep, true},
		{"7", LookRight, true},
		{"0", Idle, true},
		{"13", Wakeup, true},
		{"14", Idle, false},
		{"-1", Idle, false},
		{"grumpy", Idle, false},
		{"", Idle, false},
	}

	for _, tt := range tests {
		got, ok := ParseExpression(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseExpression(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseExpression(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != ExpressionCount {
		t.Fatalf("All() returned %d expressions, want %d", len(all), ExpressionCount)
	}
	for i, e := range all {
		if int(e) != i {
			t.Errorf("All()[%d] = %v, want code %d", i, e, i)
		}
		if !e.Valid() {
			t.Errorf("All()[%d] = %v is not valid", i, e)
		}
	}
}
