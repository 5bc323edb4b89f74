package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okendra/retailops-api/pkg/jwt"
)

func TestGenerateAndParse(t *testing.T) {
	actor := jwt.Actor{UserID: "u1", DisplayName: "Asha", LocationID: "loc-outlet"}
	token, err := jwt.Generate("secret", actor, "retailops", 5)
	require.NoError(t, err)

	got, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestParse_RejectsBadInput(t *testing.T) {
	token, err := jwt.Generate("secret", jwt.Actor{UserID: "u1"}, "retailops", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("other-secret", token)
	assert.Error(t, err, "wrong secret")

	_, err = jwt.Parse("secret", "not.a.token")
	assert.Error(t, err)

	_, err = jwt.Parse("", token)
	assert.Error(t, err, "empty secret")
}

func TestGenerate_RequiresSecret(t *testing.T) {
	_, err := jwt.Generate("", jwt.Actor{UserID: "u1"}, "retailops", 5)
	assert.Error(t, err)
}
