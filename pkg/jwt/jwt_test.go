package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", jwt.RoleBodeguero, "stock-api", time.Hour)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, "stock-api", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, jwt.RoleBodeguero, claims.Role)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", jwt.RoleAdmin, "stock-api", time.Hour)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", "stock-api", tok)
	assert.Error(t, err, "firma incorrecta")

	_, err = jwt.Parse(secret, "otro-emisor", tok)
	assert.Error(t, err, "emisor distinto")

	expired, err := jwt.Generate(secret, "user-1", jwt.RoleAdmin, "stock-api", -time.Minute)
	require.NoError(t, err)
	_, err = jwt.Parse(secret, "stock-api", expired)
	assert.Error(t, err, "token expirado")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", jwt.RoleAdmin, "", time.Hour)
	assert.Error(t, err)
}
