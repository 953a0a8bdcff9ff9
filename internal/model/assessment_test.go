package model

import "testing"

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("%s 应为合法状态", s)
		}
	}
	for _, s := range []Status{"", "DONE", "completed"} {
		if s.Valid() {
			t.Errorf("%q 不应为合法状态", s)
		}
	}
}
