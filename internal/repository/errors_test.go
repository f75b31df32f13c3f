package repository

import (
	"errors"
	"testing"
)

func TestIsDuplicateKey(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{errors.New("Error 1062 (23000): Duplicate entry '3-5' for key 'follows.PRIMARY'"), true},
		{errors.New("error 1062: duplicate entry"), true},
		{errors.New("Error 1452 (23000): foreign key constraint fails"), false},
		{errors.New("connection refused"), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := isDuplicateKey(tc.err); got != tc.want {
			t.Errorf("isDuplicateKey(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
