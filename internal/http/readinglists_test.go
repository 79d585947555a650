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

func TestReadingListsController_CreateReadingList(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	t.Run("creates and returns the id", func(t *testing.T) {
		w := server.do("POST", "/readingList", gin.H{"userId": server.userID, "title": "Summer Reading"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp IDResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotZero(t, resp.ID)
	})

	t.Run("unknown owner", func(t *testing.T) {
		w := server.do("POST", "/readingList", gin.H{"userId": 999, "title": "Orphan"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"user not found"}`, w.Body.String())
	})

	t.Run("missing title", func(t *testing.T) {
		w := server.do("POST", "/readingList", gin.H{"userId": server.userID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReadingListsController_GetUpdateDelete(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	id := server.createList(t, "Summer Reading")
	path := fmt.Sprintf("/readingList/%d", id)

	t.Run("get", func(t *testing.T) {
		w := server.do("GET", path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var list entities.ReadingList
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Equal(t, "Summer Reading", list.Title)
		assert.Equal(t, server.userID, list.UserID)
	})

	t.Run("rename", func(t *testing.T) {
		w := server.do("PUT", path, gin.H{"title": "Winter Reading"})
		require.Equal(t, http.StatusOK, w.Code)

		var list entities.ReadingList
		get := server.do("GET", path, nil)
		require.NoError(t, json.Unmarshal(get.Body.Bytes(), &list))
		assert.Equal(t, "Winter Reading", list.Title)
	})

	t.Run("delete", func(t *testing.T) {
		require.Equal(t, http.StatusOK, server.do("DELETE", path, nil).Code)
		assert.Equal(t, http.StatusNotFound, server.do("GET", path, nil).Code)
		assert.Equal(t, http.StatusNotFound, server.do("DELETE", path, nil).Code)
	})

	t.Run("unknown list", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, server.do("GET", "/readingList/999", nil).Code)
		assert.Equal(t, http.StatusNotFound, server.do("PUT", "/readingList/999", gin.H{"title": "x"}).Code)
	})
}

func TestReadingListsController_AddBook(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	listID := server.createList(t, "Matrix")
	bookID := server.createBook(t, goBook())
	toRead := server.statusID(t, "to-read")
	addPath := fmt.Sprintf("/readingList/%d/book", listID)

	t.Run("adds the pairing", func(t *testing.T) {
		w := server.do("POST", addPath, gin.H{"bookId": bookID, "statusId": toRead})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp IDResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotZero(t, resp.ID)
	})

	t.Run("duplicate pairing", func(t *testing.T) {
		w := server.do("POST", addPath, gin.H{"bookId": bookID, "statusId": toRead})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error":"book already in reading list"}`, w.Body.String())
	})

	t.Run("unknown status", func(t *testing.T) {
		other := server.createBook(t, gin.H{
			"isbn13": "9780132350884",
			"title":  "Clean Code",
			"author": "Robert Martin",
		})
		w := server.do("POST", addPath, gin.H{"bookId": other, "statusId": 999})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown book", func(t *testing.T) {
		w := server.do("POST", addPath, gin.H{"bookId": 999, "statusId": toRead})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"book not found"}`, w.Body.String())
	})

	t.Run("unknown list", func(t *testing.T) {
		w := server.do("POST", "/readingList/999/book", gin.H{"bookId": bookID, "statusId": toRead})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"reading list not found"}`, w.Body.String())
	})
}

func TestReadingListsController_UpdateStatusAndRemove(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	listID := server.createList(t, "Matrix")
	bookID := server.createBook(t, goBook())
	toRead := server.statusID(t, "to-read")
	finished := server.statusID(t, "finished")
	entryPath := fmt.Sprintf("/readingList/%d/book/%d", listID, bookID)

	w := server.do("POST", fmt.Sprintf("/readingList/%d/book", listID), gin.H{"bookId": bookID, "statusId": toRead})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("update status", func(t *testing.T) {
		w := server.do("PUT", entryPath, gin.H{"statusId": finished})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("update with invalid status", func(t *testing.T) {
		w := server.do("PUT", entryPath, gin.H{"statusId": 999})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update a book not in the list", func(t *testing.T) {
		other := server.createBook(t, gin.H{
			"isbn13": "9780132350884",
			"title":  "Clean Code",
			"author": "Robert Martin",
		})
		w := server.do("PUT", fmt.Sprintf("/readingList/%d/book/%d", listID, other), gin.H{"statusId": finished})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("remove", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, server.do("DELETE", entryPath, nil).Code)
		// Removing again reports the missing pairing.
		w := server.do("DELETE", entryPath, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"book in reading list not found"}`, w.Body.String())
	})
}

func TestReadingListsController_ListBooks(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	listID := server.createList(t, "Matrix")
	toRead := server.statusID(t, "to-read")
	reading := server.statusID(t, "reading")

	first := server.createBook(t, gin.H{
		"isbn13": "9780306406157",
		"title":  "The Go Programming Language",
		"author": "Alan Donovan",
	})
	second := server.createBook(t, gin.H{
		"isbn13": "9780132350884",
		"title":  "Clean Code",
		"author": "Robert Martin",
	})

	addPath := fmt.Sprintf("/readingList/%d/book", listID)
	require.Equal(t, http.StatusOK, server.do("POST", addPath, gin.H{"bookId": first, "statusId": toRead}).Code)
	require.Equal(t, http.StatusOK, server.do("POST", addPath, gin.H{"bookId": second, "statusId": reading}).Code)

	listBooks := func(t *testing.T, query string) []entities.Book {
		t.Helper()
		w := server.do("GET", fmt.Sprintf("/readingList/%d/books%s", listID, query), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Books []entities.Book `json:"books"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Books
	}

	t.Run("whole list", func(t *testing.T) {
		assert.Len(t, listBooks(t, ""), 2)
	})

	t.Run("status filter", func(t *testing.T) {
		result := listBooks(t, fmt.Sprintf("?statusId=%d", reading))
		require.Len(t, result, 1)
		assert.Equal(t, "Clean Code", result[0].Title)
	})

	t.Run("catalog filter applies inside the list", func(t *testing.T) {
		result := listBooks(t, "?author=donovan")
		require.Len(t, result, 1)
		assert.Equal(t, "The Go Programming Language", result[0].Title)
	})

	t.Run("unknown list", func(t *testing.T) {
		w := server.do("GET", "/readingList/999/books", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
