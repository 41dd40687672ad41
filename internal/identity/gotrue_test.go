package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGoTrueCreateUser(t *testing.T) {
	id := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/users", r.URL.Path)
		require.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		require.Equal(t, "service-key", r.Header.Get("apikey"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "rina@example.com", body["email"])
		require.Equal(t, true, body["email_confirm"])

		meta, ok := body["user_metadata"].(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, "Rina Wijaya", meta["full_name"])
		require.Equal(t, "coach", meta["user_role"])

		json.NewEncoder(w).Encode(map[string]string{"id": id.String()})
	}))
	defer srv.Close()

	client := NewGoTrueClient(srv.URL, "service-key")
	got, err := client.CreateUser(CreateUserParams{
		Email:          "rina@example.com",
		Password:       "secret123",
		EmailConfirmed: true,
		Metadata:       Metadata{FullName: "Rina Wijaya", Role: "coach"},
	})
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestGoTrueCreateUserDuplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{
			"msg": "A user with this email address has already been registered",
		})
	}))
	defer srv.Close()

	client := NewGoTrueClient(srv.URL, "service-key")
	_, err := client.CreateUser(CreateUserParams{Email: "dup@example.com", Password: "x"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestGoTrueDeleteUser(t *testing.T) {
	id := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/admin/users/"+id.String(), r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewGoTrueClient(srv.URL, "service-key")
	require.NoError(t, client.DeleteUser(id))
}

func TestGoTrueDeleteUserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"msg": "User not found"})
	}))
	defer srv.Close()

	client := NewGoTrueClient(srv.URL, "service-key")
	err := client.DeleteUser(uuid.New())
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGoTrueUpdateUserNoChanges(t *testing.T) {
	// No server: an empty update must not make a request at all.
	client := NewGoTrueClient("http://127.0.0.1:1", "service-key")
	require.NoError(t, client.UpdateUser(uuid.New(), UpdateUserParams{}))
}

func TestGoTrueVerifyPassword(t *testing.T) {
	id := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		require.Equal(t, "password", r.URL.Query().Get("grant_type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret123" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "token",
			"user":         map[string]string{"id": id.String()},
		})
	}))
	defer srv.Close()

	client := NewGoTrueClient(srv.URL, "service-key")

	got, err := client.VerifyPassword("rina@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, id, got)

	_, err = client.VerifyPassword("rina@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
