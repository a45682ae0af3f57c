package http_test

import (
	"context"
	"net/http/httptest"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flexdb/flexdb-server/internal/domain/model"
)

type testValidator struct {
	validate *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validate.Struct(i)
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// fakeFieldRepo is an in-memory stand-in for the fields collection.
type fakeFieldRepo struct {
	fields  []model.FieldDefinition
	listErr error
}

func (r *fakeFieldRepo) List(_ context.Context) ([]model.FieldDefinition, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]model.FieldDefinition, len(r.fields))
	copy(out, r.fields)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeFieldRepo) GetByID(_ context.Context, id string) (*model.FieldDefinition, error) {
	for i := range r.fields {
		if r.fields[i].ID.Hex() == id {
			field := r.fields[i]
			return &field, nil
		}
	}
	return nil, nil
}

func (r *fakeFieldRepo) GetByName(_ context.Context, name string) (*model.FieldDefinition, error) {
	for i := range r.fields {
		if r.fields[i].Name == name {
			field := r.fields[i]
			return &field, nil
		}
	}
	return nil, nil
}

func (r *fakeFieldRepo) Insert(_ context.Context, field *model.FieldDefinition) error {
	field.ID = primitive.NewObjectID()
	r.fields = append(r.fields, *field)
	return nil
}

func (r *fakeFieldRepo) Update(_ context.Context, field *model.FieldDefinition) error {
	for i := range r.fields {
		if r.fields[i].ID == field.ID {
			r.fields[i] = *field
			return nil
		}
	}
	return nil
}

func (r *fakeFieldRepo) Delete(_ context.Context, id string) error {
	for i := range r.fields {
		if r.fields[i].ID.Hex() == id {
			r.fields = append(r.fields[:i], r.fields[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeFieldRepo) SetOrder(_ context.Context, id string, order int) error {
	for i := range r.fields {
		if r.fields[i].ID.Hex() == id {
			r.fields[i].Order = order
			return nil
		}
	}
	return nil
}

func (r *fakeFieldRepo) MaxOrder(_ context.Context) (int, error) {
	max := 0
	for i := range r.fields {
		if r.fields[i].Order > max {
			max = r.fields[i].Order
		}
	}
	return max, nil
}

// fakeCustomerRepo is an in-memory stand-in for the customers collection.
type fakeCustomerRepo struct {
	records []model.CustomerRecord
}

func (r *fakeCustomerRepo) List(_ context.Context) ([]model.CustomerRecord, error) {
	out := make([]model.CustomerRecord, len(r.records))
	for i := range r.records {
		out[i] = model.CustomerRecord{ID: r.records[i].ID, Attributes: r.records[i].Attributes.Clone()}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Insert(_ context.Context, attrs model.Attributes) (*model.CustomerRecord, error) {
	record := model.CustomerRecord{ID: primitive.NewObjectID(), Attributes: attrs.Clone()}
	r.records = append(r.records, record)
	return &record, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, id string, attrs model.Attributes) (bool, error) {
	for i := range r.records {
		if r.records[i].ID.Hex() == id {
			for k, v := range attrs {
				r.records[i].Attributes[k] = v
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) (bool, error) {
	for i := range r.records {
		if r.records[i].ID.Hex() == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCustomerRepo) SetAttributeAll(_ context.Context, name string, value any) error {
	for i := range r.records {
		r.records[i].Attributes[name] = value
	}
	return nil
}

func (r *fakeCustomerRepo) UnsetAttributeAll(_ context.Context, name string) error {
	for i := range r.records {
		delete(r.records[i].Attributes, name)
	}
	return nil
}

// fakeEmailRepo is an in-memory stand-in for the allow-list collection.
type fakeEmailRepo struct {
	emails []string
}

func (r *fakeEmailRepo) List(_ context.Context) ([]string, error) {
	out := make([]string, len(r.emails))
	copy(out, r.emails)
	return out, nil
}

func (r *fakeEmailRepo) Exists(_ context.Context, email string) (bool, error) {
	for _, e := range r.emails {
		if e == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEmailRepo) Add(_ context.Context, email string) error {
	r.emails = append(r.emails, email)
	return nil
}

func (r *fakeEmailRepo) Remove(_ context.Context, email string) error {
	for i, e := range r.emails {
		if e == email {
			r.emails = append(r.emails[:i], r.emails[i+1:]...)
			return nil
		}
	}
	return nil
}
