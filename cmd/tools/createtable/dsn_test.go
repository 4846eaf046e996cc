package main

import (
	"strings"
	"testing"
)

func TestMySQLDSNWithMultiStatements(t *testing.T) {
	out, err := mysqlDSNWithMultiStatements("user:pw@tcp(localhost:3306)/shop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "multiStatements=true") || !strings.Contains(out, "parseTime=true") {
		t.Fatalf("expected multiStatements and parseTime in %q", out)
	}
	if _, err := mysqlDSNWithMultiStatements("not a dsn"); err == nil {
		t.Fatalf("expected error for invalid dsn")
	}
}
