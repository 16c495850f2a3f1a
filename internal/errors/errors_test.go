package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestGetCode(t *testing.T) {
	err := New(CodeCorruptKeyFile, "keypair file is corrupt")
	if got := GetCode(err); got != CodeCorruptKeyFile {
		t.Fatalf("expected %s, got %s", CodeCorruptKeyFile, got)
	}
}

func TestGetCodeWrapped(t *testing.T) {
	inner := Wrap(CodeIOError, "create keys directory", fs.ErrPermission)
	outer := fmt.Errorf("get or create: %w", inner)
	if got := GetCode(outer); got != CodeIOError {
		t.Fatalf("expected %s, got %s", CodeIOError, got)
	}
	if !errors.Is(outer, fs.ErrPermission) {
		t.Fatal("expected cause to survive wrapping")
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != CodeUnknown {
		t.Fatalf("expected %s, got %s", CodeUnknown, got)
	}
	if got := GetCode(nil); got != CodeUnknown {
		t.Fatalf("expected %s for nil, got %s", CodeUnknown, got)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap(CodeValidation, "amount must be positive", nil)
	if !errors.Is(err, New(CodeValidation, "")) {
		t.Fatal("expected Is to match by code")
	}
	if errors.Is(err, New(CodeIOError, "")) {
		t.Fatal("expected Is to reject a different code")
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeInsufficientFunds, "not enough SOL")
	if !IsCode(err, CodeInsufficientFunds) {
		t.Fatal("expected IsCode to match")
	}
	if IsCode(err, CodeNetworkQueryFailed) {
		t.Fatal("expected IsCode to reject a different code")
	}
}
