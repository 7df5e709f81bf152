package repository

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

func TestUniqueViolationsBecomeConflicts(t *testing.T) {
	plain := errors.New("connection reset")

	t.Run("postgres", func(t *testing.T) {
		err := conflictOr("customer", &pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(fmt.Errorf("insert: %w", err)))
		assert.EqualError(t, err, "customer already exists")
		assert.Same(t, plain, conflictOr("customer", plain))
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(conflictOr("customer", &pq.Error{Code: "23503"})))
	})

	t.Run("mongo", func(t *testing.T) {
		dup := mongodriver.WriteException{WriteErrors: []mongodriver.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}

		assert.EqualError(t, duplicateOr("user", dup), "user already exists")
		assert.Same(t, plain, duplicateOr("user", plain))
	})
}
