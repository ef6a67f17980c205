package dto_test

import (
	"hotel/internal/domains/contact/model"
	"hotel/internal/domains/contact/model/dto"
	"hotel/shared/validator"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContactRequest_Normalize(t *testing.T) {
	blank := "   "
	phone := " +62 812 "

	tests := []struct {
		name       string
		req        dto.CreateContactRequest
		wantEmail  string
		wantNumber *string
	}{
		{
			name:      "trims and lowercases",
			req:       dto.CreateContactRequest{Email: " Ada@Example.COM ", FullName: " Ada ", Message: " hi "},
			wantEmail: "ada@example.com",
		},
		{
			name:      "blank number is dropped",
			req:       dto.CreateContactRequest{Email: "ada@example.com", FullName: "Ada", Message: "hi", Number: &blank},
			wantEmail: "ada@example.com",
		},
		{
			name:       "number is trimmed",
			req:        dto.CreateContactRequest{Email: "ada@example.com", FullName: "Ada", Message: "hi", Number: &phone},
			wantEmail:  "ada@example.com",
			wantNumber: func() *string { v := "+62 812"; return &v }(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize()

			assert.Equal(t, tt.wantEmail, tt.req.Email)
			assert.Equal(t, "Ada", tt.req.FullName)
			assert.Equal(t, "hi", tt.req.Message)
			assert.Equal(t, tt.wantNumber, tt.req.Number)
		})
	}
}

func TestCreateContactRequest_Validation(t *testing.T) {
	req := dto.CreateContactRequest{Email: "ada@example.com", FullName: "Ada", Message: "Do you allow pets?"}
	require.NoError(t, validator.ValidateStruct(&req))

	req.Message = ""
	assert.Error(t, validator.ValidateStruct(&req))

	req = dto.CreateContactRequest{Email: "not-an-email", FullName: "Ada", Message: "hi"}
	assert.Error(t, validator.ValidateStruct(&req))
}

func TestGetContactsResponse_FromModels(t *testing.T) {
	var res dto.GetContactsResponse
	res.FromModels([]model.Contact{{ID: "c-1", FullName: "Ada"}}, 1, 10)

	assert.Equal(t, 1, res.TotalPage)
	require.Len(t, res.Contacts, 1)
	assert.Equal(t, "Ada", res.Contacts[0].FullName)
}
