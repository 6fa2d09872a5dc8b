package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupAuthConfig() {
	viper.Set("argon2.salt_length", 16)
	viper.Set("argon2.time", 1)
	viper.Set("argon2.memory", 64*1024)
	viper.Set("argon2.threads", 4)
	viper.Set("argon2.key_length", 32)
	viper.Set("jwt.secret_key", "test-secret")
	viper.Set("jwt.expiry_hours", 24)
}

func TestAuthService_Register(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	setupAuthConfig()
	service := NewAuthService(db, nil, zap.NewNop())

	t.Run("successful registration opens a funded wallet", func(t *testing.T) {
		req := RegisterRequest{
			Email:    "player@example.com",
			Username: "player1",
			Password: "password123",
		}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").
			WithArgs(sqlmock.AnyArg(), req.Email, req.Username, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO accounts").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), startingBalance).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		body, _ := json.Marshal(req)
		r := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Register(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response AuthResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, req.Email, response.User.Email)
		assert.True(t, response.Balance.Equal(startingBalance))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid request body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBufferString("not json"))
		w := httptest.NewRecorder()

		service.Register(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		body, _ := json.Marshal(RegisterRequest{
			Email:    "not-an-email",
			Username: "p",
			Password: "123",
		})
		r := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Register(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Details)
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := RegisterRequest{
			Email:    "player@example.com",
			Username: "player1",
			Password: "password123",
		}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		body, _ := json.Marshal(req)
		r := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Register(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuthService_Login(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	setupAuthConfig()
	service := NewAuthService(db, nil, zap.NewNop())

	t.Run("successful login", func(t *testing.T) {
		hashedPassword, err := hashPassword("password123")
		assert.NoError(t, err)

		mock.ExpectQuery("SELECT id, email, username, password_hash FROM users").
			WithArgs("player@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "password_hash"}).
				AddRow("user-1", "player@example.com", "player1", hashedPassword))
		mock.ExpectExec("UPDATE users SET last_login").
			WithArgs("user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT balance FROM accounts").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("850.00"))

		body, _ := json.Marshal(LoginRequest{Email: "player@example.com", Password: "password123"})
		r := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var response AuthResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Token)
		assert.Empty(t, response.User.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong password", func(t *testing.T) {
		hashedPassword, err := hashPassword("password123")
		assert.NoError(t, err)

		mock.ExpectQuery("SELECT id, email, username, password_hash FROM users").
			WithArgs("player@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "password_hash"}).
				AddRow("user-1", "player@example.com", "player1", hashedPassword))

		body, _ := json.Marshal(LoginRequest{Email: "player@example.com", Password: "wrong"})
		r := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown email", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, username, password_hash FROM users").
			WithArgs("ghost@example.com").
			WillReturnError(assert.AnError)

		body, _ := json.Marshal(LoginRequest{Email: "ghost@example.com", Password: "password123"})
		r := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPasswordHashing(t *testing.T) {
	setupAuthConfig()

	hash, err := hashPassword("secret-password")
	assert.NoError(t, err)
	assert.NotContains(t, hash, "secret-password")

	assert.True(t, verifyPassword("secret-password", hash))
	assert.False(t, verifyPassword("wrong-password", hash))
	assert.False(t, verifyPassword("secret-password", "malformed"))
}
