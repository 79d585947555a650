package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gutenberg-app/gutenberg/internal/entities"
)

func TestUsersController_GetUser(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	t.Run("returns the profile without credentials", func(t *testing.T) {
		w := server.do("GET", fmt.Sprintf("/user/%d", server.userID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp userResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Ada", resp.FirstName)
		assert.Equal(t, "Lovelace", resp.LastName)
		assert.Equal(t, "ada@example.com", resp.Email)
		assert.NotContains(t, w.Body.String(), "password")
		assert.NotContains(t, w.Body.String(), "hash")
	})

	t.Run("unknown user", func(t *testing.T) {
		w := server.do("GET", "/user/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"user not found"}`, w.Body.String())
	})
}

func TestUsersController_UpdateUser(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	path := fmt.Sprintf("/user/%d", server.userID)

	t.Run("updates the supplied fields", func(t *testing.T) {
		w := server.do("PUT", path, gin.H{"firstName": "Augusta"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp userResponse
		get := server.do("GET", path, nil)
		require.NoError(t, json.Unmarshal(get.Body.Bytes(), &resp))
		assert.Equal(t, "Augusta", resp.FirstName)
		assert.Equal(t, "Lovelace", resp.LastName)
	})

	t.Run("requires at least one field", func(t *testing.T) {
		w := server.do("PUT", path, gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("password change takes effect on login", func(t *testing.T) {
		w := server.do("PUT", path, gin.H{"password": "new-secret"})
		require.Equal(t, http.StatusOK, w.Code)

		login := func(password string) int {
			return server.do("POST", "/login", gin.H{"email": "ada@example.com", "password": password}).Code
		}
		assert.Equal(t, http.StatusOK, login("new-secret"))
		assert.Equal(t, http.StatusUnauthorized, login("secret"))
	})

	t.Run("omitted password leaves the hash alone", func(t *testing.T) {
		w := server.do("PUT", path, gin.H{"lastName": "Byron"})
		require.Equal(t, http.StatusOK, w.Code)

		login := server.do("POST", "/login", gin.H{"email": "ada@example.com", "password": "new-secret"})
		assert.Equal(t, http.StatusOK, login.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := server.do("PUT", "/user/999", gin.H{"firstName": "Ghost"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUsersController_DeleteUser(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	path := fmt.Sprintf("/user/%d", server.userID)

	t.Run("requires the password", func(t *testing.T) {
		w := server.do("DELETE", path, gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		w := server.do("DELETE", path, gin.H{"password": "not-it"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid password"}`, w.Body.String())
	})

	t.Run("deletes with the right password", func(t *testing.T) {
		w := server.do("DELETE", path, gin.H{"password": "secret"})
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, http.StatusNotFound, server.do("GET", path, nil).Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := server.do("DELETE", "/user/999", gin.H{"password": "secret"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUsersController_GetReadingLists(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	server.createList(t, "First")
	server.createList(t, "Second")

	w := server.do("GET", fmt.Sprintf("/user/%d/readingLists", server.userID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ReadingLists []entities.ReadingList `json:"readingLists"`
		Count        int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.ReadingLists, 2)

	t.Run("unknown user", func(t *testing.T) {
		w := server.do("GET", "/user/999/readingLists", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
