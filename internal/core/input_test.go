package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionConfirm) {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionConfirm)
	f.Type('4', '2')
	if !f.Has(ActionConfirm) || f.Has(ActionCashOut) {
		t.Error("Has should report only the set action")
	}
	if string(f.Text) != "42" || f.Empty() {
		t.Errorf("Text = %q", string(f.Text))
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("after Clear frame = %+v, expected empty", f)
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:         "None",
		ActionConfirm:      "Confirm",
		ActionCashOut:      "CashOut",
		ActionResetBalance: "ResetBalance",
		Action(99):         "Unknown",
	}
	for a, want := range tests {
		if a.String() != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), a.String(), want)
		}
	}
}
