package main

import "testing"

func TestSafeInitTableRejectsZero(t *testing.T) {
	if _, ok := safeInitTable(0); ok {
		t.Errorf("safeInitTable(0) = ok, want a reported failure")
	}
}

func TestSafeInitTableAccepts(t *testing.T) {
	tbl, ok := safeInitTable(1000)
	if !ok {
		t.Fatalf("safeInitTable(1000) reported failure")
	}
	if tbl.X != 1000 {
		t.Errorf("safeInitTable(1000).X = %d, want 1000", tbl.X)
	}
}
