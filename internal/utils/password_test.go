package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dpmarinov/personal_budget_app/internal/utils"
)

func TestHashPasswordWithCost(t *testing.T) {
	hash, err := utils.HashPasswordWithCost("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, utils.CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, utils.CheckPasswordHash("wrong-password", hash))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHashPasswordWithCost_OutOfRangeFallsBack(t *testing.T) {
	hash, err := utils.HashPasswordWithCost("s3cret-pass", bcrypt.MaxCost+1)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, utils.DefaultHashCost, cost)
}
