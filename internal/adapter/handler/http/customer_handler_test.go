package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	handlers "github.com/flexdb/flexdb-server/internal/adapter/handler/http"
	"github.com/flexdb/flexdb-server/internal/domain/model"
	"github.com/flexdb/flexdb-server/internal/usecase"
)

func newCustomerHandler(customers *fakeCustomerRepo, fields *fakeFieldRepo) *handlers.CustomerHandler {
	logger := zap.NewNop()
	records := usecase.NewRecordService(customers, fields, logger)
	return handlers.NewCustomerHandler(records, logger)
}

func TestCustomerHandler_ListCustomers(t *testing.T) {
	fields := &fakeFieldRepo{fields: []model.FieldDefinition{
		{ID: primitive.NewObjectID(), Name: "name", Type: model.FieldTypeText, Order: 0},
		{ID: primitive.NewObjectID(), Name: "city", Type: model.FieldTypeText, Order: 1},
	}}
	customers := &fakeCustomerRepo{records: []model.CustomerRecord{
		{ID: primitive.NewObjectID(), Attributes: model.Attributes{"name": "Ada", "city": "Boston"}},
		{ID: primitive.NewObjectID(), Attributes: model.Attributes{"name": "Grace"}},
	}}
	handler := newCustomerHandler(customers, fields)

	t.Run("returns projected records", func(t *testing.T) {
		c, rec := newTestContext(http.MethodGet, "/customers", "")
		require.NoError(t, handler.ListCustomers(c))

		assert.Equal(t, http.StatusOK, rec.Code)

		var result []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		require.Len(t, result, 2)

		// The second record never held a city; projection reads it as null.
		city, ok := result[1]["city"]
		assert.True(t, ok)
		assert.Nil(t, city)
	})

	t.Run("filters by the search query", func(t *testing.T) {
		c, rec := newTestContext(http.MethodGet, "/customers?search=bos", "")
		require.NoError(t, handler.ListCustomers(c))

		assert.Equal(t, http.StatusOK, rec.Code)

		var result []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		require.Len(t, result, 1)
		assert.Equal(t, "Boston", result[0]["city"])
	})
}

func TestCustomerHandler_CreateCustomer(t *testing.T) {
	fields := &fakeFieldRepo{fields: []model.FieldDefinition{
		{ID: primitive.NewObjectID(), Name: "name", Type: model.FieldTypeText, Order: 0},
		{ID: primitive.NewObjectID(), Name: "status", Type: model.FieldTypeSelect, Options: []string{"A", "B"}, Order: 1},
	}}

	t.Run("stores a valid record", func(t *testing.T) {
		customers := &fakeCustomerRepo{}
		handler := newCustomerHandler(customers, fields)

		c, rec := newTestContext(http.MethodPost, "/customers",
			`{"name":"Ada","status":"A"}`)
		require.NoError(t, handler.CreateCustomer(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "Customer added successfully")
		require.Len(t, customers.records, 1)
		assert.Equal(t, "A", customers.records[0].Attributes["status"])
	})

	t.Run("rejects an unlisted select value", func(t *testing.T) {
		customers := &fakeCustomerRepo{}
		handler := newCustomerHandler(customers, fields)

		c, rec := newTestContext(http.MethodPost, "/customers",
			`{"name":"Ada","status":"C"}`)
		require.NoError(t, handler.CreateCustomer(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, customers.records)
	})

	t.Run("strips a client-supplied id", func(t *testing.T) {
		customers := &fakeCustomerRepo{}
		handler := newCustomerHandler(customers, fields)

		c, rec := newTestContext(http.MethodPost, "/customers",
			`{"_id":"deadbeef","name":"Ada"}`)
		require.NoError(t, handler.CreateCustomer(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		_, ok := customers.records[0].Attributes["_id"]
		assert.False(t, ok)
	})
}

func TestCustomerHandler_UpdateCustomer(t *testing.T) {
	fields := &fakeFieldRepo{fields: []model.FieldDefinition{
		{ID: primitive.NewObjectID(), Name: "name", Type: model.FieldTypeText, Order: 0},
	}}

	t.Run("applies the update", func(t *testing.T) {
		id := primitive.NewObjectID()
		customers := &fakeCustomerRepo{records: []model.CustomerRecord{
			{ID: id, Attributes: model.Attributes{"name": "Ada"}},
		}}
		handler := newCustomerHandler(customers, fields)

		c, rec := newTestContext(http.MethodPut, "/customers",
			fmt.Sprintf(`{"id":%q,"name":"Grace"}`, id.Hex()))
		require.NoError(t, handler.UpdateCustomer(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Customer updated successfully")
		assert.Equal(t, "Grace", customers.records[0].Attributes["name"])
	})

	t.Run("requires an id", func(t *testing.T) {
		handler := newCustomerHandler(&fakeCustomerRepo{}, fields)

		c, rec := newTestContext(http.MethodPut, "/customers", `{"name":"Grace"}`)
		require.NoError(t, handler.UpdateCustomer(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing customer ID")
	})

	t.Run("returns 404 for an unknown id", func(t *testing.T) {
		handler := newCustomerHandler(&fakeCustomerRepo{}, fields)

		c, rec := newTestContext(http.MethodPut, "/customers",
			fmt.Sprintf(`{"id":%q,"name":"Grace"}`, primitive.NewObjectID().Hex()))
		require.NoError(t, handler.UpdateCustomer(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Customer not found")
	})
}

func TestCustomerHandler_DeleteCustomer(t *testing.T) {
	fields := &fakeFieldRepo{}

	t.Run("deletes the record", func(t *testing.T) {
		id := primitive.NewObjectID()
		customers := &fakeCustomerRepo{records: []model.CustomerRecord{
			{ID: id, Attributes: model.Attributes{"name": "Ada"}},
		}}
		handler := newCustomerHandler(customers, fields)

		c, rec := newTestContext(http.MethodDelete, "/customers",
			fmt.Sprintf(`{"id":%q}`, id.Hex()))
		require.NoError(t, handler.DeleteCustomer(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Customer deleted successfully")
		assert.Empty(t, customers.records)
	})

	t.Run("rejects a missing id", func(t *testing.T) {
		handler := newCustomerHandler(&fakeCustomerRepo{}, fields)

		c, rec := newTestContext(http.MethodDelete, "/customers", `{}`)
		require.NoError(t, handler.DeleteCustomer(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing customer ID")
	})
}
