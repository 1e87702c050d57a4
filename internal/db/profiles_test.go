package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

func TestClassifyProfileError(t *testing.T) {
	cases := []struct {
		err  error
		want model.ProfileStatus
	}{
		{nil, model.ProfileSuccess},
		{sql.ErrNoRows, model.ProfileMissing},
		{fmt.Errorf("%w: boom", ErrPolicy), model.ProfilePolicyError},
		{errors.New(`infinite recursion detected in policy for relation "profiles"`), model.ProfilePolicyError},
		{errors.New("new row violates row-level security Policy"), model.ProfilePolicyError},
		{errors.New("connection refused"), model.ProfileError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyProfileError(tc.err), "%v", tc.err)
	}
}
